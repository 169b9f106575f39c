package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Updates name, password hash and profile image of user
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

// EntryFilters are optional conjunctive list filters. Empty values are left
// out of the WHERE clause entirely.
type EntryFilters struct {
	Category string
	Mood     string
	// Case-insensitive substring matched against title or content
	Search string
}

// EntryStatRow is the per-entry projection the statistics builder consumes.
type EntryStatRow struct {
	Mood      string
	Category  string
	CreatedAt time.Time
}

type EntriesRepositoryI interface {
	// Inserts entry and bumps the user_statistics counter row in one transaction
	Create(ctx context.Context, entry *entity.Entry) (uuid.UUID, error)
	// Searches entry with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	// Lists entries of user matching filters, newest first
	List(ctx context.Context, uid uuid.UUID, filters EntryFilters, limit, offset int) ([]*entity.Entry, error)
	// Counts entries of user matching the same filters List uses
	Count(ctx context.Context, uid uuid.UUID, filters EntryFilters) (int, error)
	// Updates title, content, mood and category of entry
	Update(ctx context.Context, entry *entity.Entry) error
	// Deletes entry and decrements the counter row in one transaction.
	// Returns the image URL the entry held, empty when it had none
	Delete(ctx context.Context, id, uid uuid.UUID) (string, error)
	// Lists quick-note entries of user, newest first
	ListQuickNotes(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error)
	// Lists entries of user created within [from, to] calendar days
	InRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.Entry, error)
	// Streams mood/category/created_at of every entry of user, oldest first
	StatRows(ctx context.Context, uid uuid.UUID) ([]EntryStatRow, error)
	// Counts quick-note entries of user
	CountQuickNotes(ctx context.Context, uid uuid.UUID) (int, error)
}

type RemindersRepositoryI interface {
	Create(ctx context.Context, reminder *entity.Reminder) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error)
	// Lists reminders of user ordered by remind datetime ascending
	ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.Reminder, error)
	// Updates title, description, remind datetime, active flag and type
	Update(ctx context.Context, reminder *entity.Reminder) error
	Delete(ctx context.Context, id, uid uuid.UUID) error
	// Counts reminders of user with the active flag set
	CountActive(ctx context.Context, uid uuid.UUID) (int, error)
	// Lists active reminders of user falling on [from, to] calendar days
	ActiveInRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.Reminder, error)
}

type CalendarEventsRepositoryI interface {
	Create(ctx context.Context, event *entity.CalendarEvent) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error)
	// Lists events of user within [from, to], ordered by date then time
	InRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.CalendarEvent, error)
	Delete(ctx context.Context, id, uid uuid.UUID) error
}

type TemplatesRepositoryI interface {
	// Lists all templates ordered by category, then name
	List(ctx context.Context) ([]*entity.Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Template, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
