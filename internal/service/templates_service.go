package service

import (
	"context"
	"errors"
	"log"

	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/entity"
)

type TemplatesService struct {
	repo repository.TemplatesRepositoryI
}

func NewTemplatesService(templatesRepo repository.TemplatesRepositoryI) *TemplatesService {
	if templatesRepo == nil {
		log.Fatal("provided nil templatesRepo")
	}
	return &TemplatesService{
		repo: templatesRepo,
	}
}

func (ts *TemplatesService) List(ctx context.Context) ([]*entity.Template, error) {
	templates, err := ts.repo.List(ctx)
	if err != nil {
		return nil, errors.New("templates repository error: " + err.Error())
	}
	return templates, nil
}
