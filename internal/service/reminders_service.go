package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
)

type RemindersService struct {
	repo repository.RemindersRepositoryI
}

func NewRemindersService(remindersRepo repository.RemindersRepositoryI) *RemindersService {
	if remindersRepo == nil {
		log.Fatal("provided nil remindersRepo")
	}
	return &RemindersService{
		repo: remindersRepo,
	}
}

func (rs *RemindersService) List(ctx context.Context, uid uuid.UUID) ([]*entity.Reminder, error) {
	reminders, err := rs.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	return reminders, nil
}

func (rs *RemindersService) Create(ctx context.Context, uid uuid.UUID, req *CreateReminderRequest) (*entity.Reminder, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	reminderType := req.Type
	if reminderType == "" {
		reminderType = "custom"
	}
	// EntryID is kept as given: the link is informational and may point at
	// an entry that was deleted later
	reminder := &entity.Reminder{
		UserID:      uid,
		EntryID:     req.EntryID,
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
		Active:      true,
		Type:        reminderType,
	}
	id, err := rs.repo.Create(ctx, reminder)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	created, err := rs.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	return created, nil
}

func (rs *RemindersService) get(ctx context.Context, id, uid uuid.UUID) (*entity.Reminder, error) {
	reminder, err := rs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return nil, err
		}
		return nil, errors.New("reminders repository error: " + err.Error())
	}
	if reminder.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return reminder, nil
}

func (rs *RemindersService) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateReminderRequest) error {
	if err := validateStruct(*req); err != nil {
		return err
	}
	reminder, err := rs.get(ctx, id, uid)
	if err != nil {
		return err
	}
	reminder.Title = req.Title
	reminder.Description = req.Description
	reminder.RemindAt = req.RemindAt
	reminder.Active = req.Active
	if req.Type != "" {
		reminder.Type = req.Type
	}
	if err = rs.repo.Update(ctx, reminder); err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return err
		}
		return errors.New("reminders repository error: " + err.Error())
	}
	return nil
}

func (rs *RemindersService) Delete(ctx context.Context, id, uid uuid.UUID) error {
	if _, err := rs.get(ctx, id, uid); err != nil {
		return err
	}
	if err := rs.repo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, errorvalues.ErrReminderNotFound) {
			return err
		}
		return errors.New("reminders repository error: " + err.Error())
	}
	return nil
}
