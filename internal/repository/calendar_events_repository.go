package repository

import (
	"context"
	"errors"
	"log"
	"time"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/pkg/cleanup"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, user_id, title, description, event_date, COALESCE(event_time, '') AS event_time, event_type, created_at`

type CalendarEventsRepository struct {
	conn PgConnection
}

func NewCalendarEventsRepo(cfg DBConfig) *CalendarEventsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for eventsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CalendarEventsRepository{
		conn: pool,
	}
}

func NewCalendarEventsRepoWithConn(conn PgConnection) *CalendarEventsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	return &CalendarEventsRepository{
		conn: conn,
	}
}

func scanEvent(row pgx.Row) (*entity.CalendarEvent, error) {
	var (
		ev  entity.CalendarEvent
		day time.Time
	)
	err := row.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Description, &day, &ev.Time, &ev.Type, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	ev.Date = dates.Of(day)
	return &ev, nil
}

func (cr *CalendarEventsRepository) Create(ctx context.Context, event *entity.CalendarEvent) (uuid.UUID, error) {
	var id uuid.UUID
	row := cr.conn.QueryRow(ctx, `INSERT INTO calendar_events (user_id, title, description, event_date, event_time, event_type) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6) RETURNING id;`,
		event.UserID,
		event.Title,
		event.Description,
		event.Date.Time(),
		event.Time,
		event.Type,
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
		return uuid.Nil, errors.New("creating calendar event db error: " + err.Error())
	}
	return id, nil
}

func (cr *CalendarEventsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CalendarEvent, error) {
	row := cr.conn.QueryRow(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE id = $1;`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEventNotFound
		}
		return nil, errors.New("getting calendar event by id error: " + err.Error())
	}
	return event, nil
}

func (cr *CalendarEventsRepository) InRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.CalendarEvent, error) {
	rows, err := cr.conn.Query(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE user_id = $1 AND event_date >= $2 AND event_date <= $3 ORDER BY event_date ASC, event_time ASC;`,
		uid,
		from.Time(),
		to.Time(),
	)
	if err != nil {
		return nil, errors.New("listing calendar events in range error: " + err.Error())
	}
	defer rows.Close()
	events := make([]*entity.CalendarEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, errors.New("unmarshalling calendar event error: " + err.Error())
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return events, nil
}

func (cr *CalendarEventsRepository) Delete(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := cr.conn.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting calendar event error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEventNotFound
	}
	return nil
}
