package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"strings"
	"time"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
)

const (
	entryImageFolder = "daybook/entries"

	defaultMood     = "Happy"
	defaultCategory = "Personal"
)

type EntriesService struct {
	repo      repository.EntriesRepositoryI
	templates repository.TemplatesRepositoryI
	images    ImageStoreI
}

func NewEntriesService(entriesRepo repository.EntriesRepositoryI, templatesRepo repository.TemplatesRepositoryI, images ImageStoreI) *EntriesService {
	if entriesRepo == nil || templatesRepo == nil {
		log.Fatal("provided nil repos to entries service")
	}
	return &EntriesService{
		repo:      entriesRepo,
		templates: templatesRepo,
		images:    images,
	}
}

func (es *EntriesService) List(ctx context.Context, uid uuid.UUID, filters repository.EntryFilters, opts PaginationOpts) ([]*entity.Entry, entity.Pagination, error) {
	if opts.Page < 1 || opts.PageSize < 1 {
		return nil, entity.Pagination{}, errorvalues.ErrInvalidPage
	}
	total, err := es.repo.Count(ctx, uid, filters)
	if err != nil {
		return nil, entity.Pagination{}, errors.New("entries repository error: " + err.Error())
	}
	offset := (opts.Page - 1) * opts.PageSize
	entries := make([]*entity.Entry, 0)
	if offset < total {
		entries, err = es.repo.List(ctx, uid, filters, opts.PageSize, offset)
		if err != nil {
			return nil, entity.Pagination{}, errors.New("entries repository error: " + err.Error())
		}
	}
	return entries, entity.Pagination{
		CurrentPage: opts.Page,
		TotalPages:  (total + opts.PageSize - 1) / opts.PageSize,
		TotalCount:  total,
		PerPage:     opts.PageSize,
	}, nil
}

func (es *EntriesService) Create(ctx context.Context, uid uuid.UUID, req *CreateEntryRequest) (*entity.Entry, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	entry := &entity.Entry{
		UserID:     uid,
		Title:      req.Title,
		Content:    req.Content,
		Mood:       req.Mood,
		Category:   req.Category,
		QuickNote:  req.QuickNote,
		TemplateID: req.TemplateID,
	}
	if entry.Mood == "" {
		entry.Mood = defaultMood
	}
	if entry.Category == "" {
		entry.Category = defaultCategory
	}
	if req.Image != nil {
		url, err := es.images.Upload(ctx, req.Image, entryImageFolder)
		if err != nil {
			return nil, errors.New("uploading entry image error: " + err.Error())
		}
		entry.ImageURL = url
	}
	return es.insert(ctx, entry)
}

func (es *EntriesService) insert(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	id, err := es.repo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	created, err := es.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return created, nil
}

func (es *EntriesService) Get(ctx context.Context, id, uid uuid.UUID) (*entity.Entry, error) {
	entry, err := es.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return nil, err
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	if entry.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return entry, nil
}

func (es *EntriesService) Update(ctx context.Context, id, uid uuid.UUID, req *UpdateEntryRequest) error {
	if err := validateStruct(*req); err != nil {
		return err
	}
	entry, err := es.Get(ctx, id, uid)
	if err != nil {
		return err
	}
	entry.Title = req.Title
	entry.Content = req.Content
	entry.Mood = req.Mood
	entry.Category = req.Category
	if err = es.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("entries repository error: " + err.Error())
	}
	return nil
}

func (es *EntriesService) Delete(ctx context.Context, id, uid uuid.UUID) error {
	if _, err := es.Get(ctx, id, uid); err != nil {
		return err
	}
	imageURL, err := es.repo.Delete(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("entries repository error: " + err.Error())
	}
	// A stranded asset is acceptable, a failed delete is not
	if imageURL != "" && es.images != nil {
		if err := es.images.Delete(ctx, imageURL); err != nil {
			slog.Warn("deleting entry image failed", slog.String("url", imageURL), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (es *EntriesService) ListQuickNotes(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error) {
	notes, err := es.repo.ListQuickNotes(ctx, uid)
	if err != nil {
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return notes, nil
}

func (es *EntriesService) CreateQuickNote(ctx context.Context, uid uuid.UUID, req *QuickNoteRequest) (*entity.Entry, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	title := req.Title
	if title == "" {
		title = "Quick Note"
	}
	mood := req.Mood
	if mood == "" {
		mood = defaultMood
	}
	return es.insert(ctx, &entity.Entry{
		UserID:    uid,
		Title:     title,
		Content:   req.Content,
		Mood:      mood,
		Category:  defaultCategory,
		QuickNote: true,
	})
}

func (es *EntriesService) CreateFromTemplate(ctx context.Context, uid, templateID uuid.UUID, mood string) (*entity.Entry, error) {
	tmpl, err := es.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTemplateNotFound) {
			return nil, err
		}
		return nil, errors.New("templates repository error: " + err.Error())
	}
	if mood == "" {
		mood = defaultMood
	}
	content := strings.ReplaceAll(tmpl.Content, "${date}", dates.Of(time.Now()).String())
	content = strings.ReplaceAll(content, "${mood}", mood)
	return es.insert(ctx, &entity.Entry{
		UserID:     uid,
		Title:      tmpl.Name,
		Content:    content,
		Mood:       mood,
		Category:   tmpl.Category,
		TemplateID: &tmpl.ID,
	})
}
