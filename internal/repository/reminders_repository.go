package repository

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/pkg/cleanup"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reminderColumns = `id, user_id, entry_id, title, description, remind_at, is_active, reminder_type, created_at`

type RemindersRepository struct {
	conn PgConnection
}

func NewRemindersRepo(cfg DBConfig) *RemindersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for remindersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for remindersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RemindersRepository{
		conn: pool,
	}
}

func NewRemindersRepoWithConn(conn PgConnection) *RemindersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for remindersRepo: " + err.Error())
	}
	return &RemindersRepository{
		conn: conn,
	}
}

func scanReminder(row pgx.Row) (*entity.Reminder, error) {
	var rem entity.Reminder
	err := row.Scan(&rem.ID, &rem.UserID, &rem.EntryID, &rem.Title, &rem.Description,
		&rem.RemindAt, &rem.Active, &rem.Type, &rem.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (rr *RemindersRepository) Create(ctx context.Context, reminder *entity.Reminder) (uuid.UUID, error) {
	var id uuid.UUID
	// entry_id is informational linkage only, it is stored without a FK
	row := rr.conn.QueryRow(ctx, `INSERT INTO reminders (user_id, entry_id, title, description, remind_at, is_active, reminder_type) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		reminder.UserID,
		reminder.EntryID,
		reminder.Title,
		reminder.Description,
		reminder.RemindAt,
		reminder.Active,
		reminder.Type,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.Nil, errorvalues.ErrUserNotFound
			}
		}
		return uuid.Nil, errors.New("creating reminder db error: " + err.Error())
	}
	return id, nil
}

func (rr *RemindersRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error) {
	row := rr.conn.QueryRow(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1;`, id)
	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrReminderNotFound
		}
		return nil, errors.New("getting reminder by id error: " + err.Error())
	}
	return reminder, nil
}

func (rr *RemindersRepository) ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.Reminder, error) {
	rows, err := rr.conn.Query(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 ORDER BY remind_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("listing reminders error: " + err.Error())
	}
	defer rows.Close()
	reminders := make([]*entity.Reminder, 0)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, errors.New("unmarshalling reminder error: " + err.Error())
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return reminders, nil
}

func (rr *RemindersRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE reminders SET title = $1, description = $2, remind_at = $3, is_active = $4, reminder_type = $5, updated_at = NOW() WHERE id = $6 AND user_id = $7;`,
		reminder.Title,
		reminder.Description,
		reminder.RemindAt,
		reminder.Active,
		reminder.Type,
		reminder.ID,
		reminder.UserID,
	)
	if err != nil {
		return errors.New("updating reminder error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) Delete(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting reminder error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrReminderNotFound
	}
	return nil
}

func (rr *RemindersRepository) CountActive(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := rr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM reminders WHERE user_id = $1 AND is_active = TRUE;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("counting active reminders error: " + err.Error())
	}
	return count, nil
}

func (rr *RemindersRepository) ActiveInRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.Reminder, error) {
	rows, err := rr.conn.Query(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 AND is_active = TRUE AND remind_at >= $2 AND remind_at < $3 ORDER BY remind_at ASC;`,
		uid,
		from.Time(),
		to.AddDays(1).Time(),
	)
	if err != nil {
		return nil, errors.New("listing active reminders in range error: " + err.Error())
	}
	defer rows.Close()
	reminders := make([]*entity.Reminder, 0)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, errors.New("unmarshalling reminder error: " + err.Error())
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return reminders, nil
}
