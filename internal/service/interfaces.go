package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/foshmed/daybook/internal/repository"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	Name string `validate:"required,min=1,max=100"`
	// Empty password means "keep the current one"
	Password string `validate:"omitempty,min=8,max=72"`
}

type CreateEntryRequest struct {
	Title      string `validate:"required,max=255"`
	Content    string `validate:"required"`
	Mood       string `validate:"max=50"`
	Category   string `validate:"max=50"`
	QuickNote  bool
	TemplateID *uuid.UUID
	// Optional attachment, uploaded before the row is written
	Image multipart.File
}

type UpdateEntryRequest struct {
	Title    string `validate:"required,max=255"`
	Content  string `validate:"required"`
	Mood     string `validate:"max=50"`
	Category string `validate:"max=50"`
}

type QuickNoteRequest struct {
	Title   string `validate:"max=255"`
	Content string `validate:"required"`
	Mood    string `validate:"max=50"`
}

type CreateReminderRequest struct {
	Title       string `validate:"required,max=255"`
	Description string
	RemindAt    time.Time `validate:"required"`
	Type        string    `validate:"max=50"`
	EntryID     *uuid.UUID
}

type UpdateReminderRequest struct {
	Title       string `validate:"required,max=255"`
	Description string
	RemindAt    time.Time `validate:"required"`
	Active      bool
	Type        string `validate:"max=50"`
}

type CreateEventRequest struct {
	Title       string `validate:"required,max=255"`
	Description string
	Date        dates.Date `validate:"required"`
	Time        string     `validate:"omitempty,hhmm"`
	Type        string     `validate:"max=50"`
}

type PaginationOpts struct {
	Page     int
	PageSize int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) error
	// Uploads a new profile image and stores its URL on the user row
	SetProfileImage(ctx context.Context, id uuid.UUID, image multipart.File) (string, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type EntriesServiceI interface {
	// Lists one page of the user's entries plus pagination metadata.
	// An out-of-range page yields an empty list with accurate totals.
	List(ctx context.Context, uid uuid.UUID, filters repository.EntryFilters, opts PaginationOpts) ([]*entity.Entry, entity.Pagination, error)
	Create(ctx context.Context, uid uuid.UUID, req *CreateEntryRequest) (*entity.Entry, error)
	Get(ctx context.Context, id, uid uuid.UUID) (*entity.Entry, error)
	Update(ctx context.Context, id, uid uuid.UUID, req *UpdateEntryRequest) error
	// Deletes entry with its statistics counter; the stored image is removed
	// best effort and never fails the delete
	Delete(ctx context.Context, id, uid uuid.UUID) error
	ListQuickNotes(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error)
	CreateQuickNote(ctx context.Context, uid uuid.UUID, req *QuickNoteRequest) (*entity.Entry, error)
	// Seeds a new entry from a template, substituting ${date} and ${mood}
	CreateFromTemplate(ctx context.Context, uid, templateID uuid.UUID, mood string) (*entity.Entry, error)
}

type RemindersServiceI interface {
	List(ctx context.Context, uid uuid.UUID) ([]*entity.Reminder, error)
	Create(ctx context.Context, uid uuid.UUID, req *CreateReminderRequest) (*entity.Reminder, error)
	Update(ctx context.Context, id, uid uuid.UUID, req *UpdateReminderRequest) error
	Delete(ctx context.Context, id, uid uuid.UUID) error
}

type CalendarServiceI interface {
	// Merges entries, active reminders and custom events within [from, to]
	// into one feed sorted by date, then time
	GetCalendar(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]entity.CalendarItem, error)
	CreateEvent(ctx context.Context, uid uuid.UUID, req *CreateEventRequest) (*entity.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id, uid uuid.UUID) error
}

type StatsServiceI interface {
	// Recomputes the snapshot from entry and reminder rows; now is injected
	// so streak anchoring is deterministic under test
	GetStatistics(ctx context.Context, uid uuid.UUID, now time.Time) (*entity.UserStatistics, error)
}

type TemplatesServiceI interface {
	List(ctx context.Context) ([]*entity.Template, error)
}

// ImageStoreI is what services need from pkg/imagestore.
type ImageStoreI interface {
	Upload(ctx context.Context, file multipart.File, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}
