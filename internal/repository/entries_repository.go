package repository

import (
	"context"
	"errors"
	"log"

	sq "github.com/Masterminds/squirrel"
	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/pkg/cleanup"
	"github.com/foshmed/daybook/pkg/dates"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const entryColumns = `id, user_id, title, content, mood, category, COALESCE(image_url, '') AS image_url, is_quick_note, template_id, created_at, updated_at`

type EntriesRepository struct {
	conn PgConnection
}

func NewEntriesRepo(cfg DBConfig) *EntriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for entriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EntriesRepository{
		conn: pool,
	}
}

func NewEntriesRepoWithConn(conn PgConnection) *EntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	return &EntriesRepository{
		conn: conn,
	}
}

// entryConditions builds the conjunctive WHERE set. Empty filter values are
// omitted, not matched against the empty string.
func entryConditions(uid uuid.UUID, filters EntryFilters) sq.And {
	conds := sq.And{sq.Eq{"user_id": uid}}
	if filters.Category != "" {
		conds = append(conds, sq.Eq{"category": filters.Category})
	}
	if filters.Mood != "" {
		conds = append(conds, sq.Eq{"mood": filters.Mood})
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		conds = append(conds, sq.Or{sq.ILike{"title": pattern}, sq.ILike{"content": pattern}})
	}
	return conds
}

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.Category,
		&e.ImageURL, &e.QuickNote, &e.TemplateID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (er *EntriesRepository) Create(ctx context.Context, entry *entity.Entry) (uuid.UUID, error) {
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return uuid.Nil, errors.New("starting entry create tx error: " + err.Error())
	}
	var id uuid.UUID
	row := tx.QueryRow(ctx, `INSERT INTO entries (user_id, title, content, mood, category, image_url, is_quick_note, template_id) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8) RETURNING id;`,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.Category,
		entry.ImageURL,
		entry.QuickNote,
		entry.TemplateID,
	)
	if err = row.Scan(&id); err != nil {
		tx.Rollback(ctx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.Nil, errorvalues.ErrUserNotFound
			}
		}
		return uuid.Nil, errors.New("creating entry db error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO user_statistics (user_id, total_entries, last_entry_date) VALUES ($1, 1, CURRENT_DATE) ON CONFLICT (user_id) DO UPDATE SET total_entries = user_statistics.total_entries + 1, last_entry_date = CURRENT_DATE;`,
		entry.UserID,
	)
	if err != nil {
		tx.Rollback(ctx)
		return uuid.Nil, errors.New("bumping statistics counter error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return uuid.Nil, errors.New("committing entry create error: " + err.Error())
	}
	return id, nil
}

func (er *EntriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	row := er.conn.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1;`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEntryNotFound
		}
		return nil, errors.New("getting entry by id error: " + err.Error())
	}
	return entry, nil
}

func (er *EntriesRepository) List(ctx context.Context, uid uuid.UUID, filters EntryFilters, limit, offset int) ([]*entity.Entry, error) {
	query, args, err := psql.Select(entryColumns).
		From("entries").
		Where(entryConditions(uid, filters)).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, errors.New("building entries list query error: " + err.Error())
	}
	rows, err := er.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("listing entries error: " + err.Error())
	}
	defer rows.Close()
	entries := make([]*entity.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.New("unmarshalling entry error: " + err.Error())
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return entries, nil
}

func (er *EntriesRepository) Count(ctx context.Context, uid uuid.UUID, filters EntryFilters) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("entries").
		Where(entryConditions(uid, filters)).
		ToSql()
	if err != nil {
		return 0, errors.New("building entries count query error: " + err.Error())
	}
	var count int
	if err := er.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.New("counting entries error: " + err.Error())
	}
	return count, nil
}

func (er *EntriesRepository) Update(ctx context.Context, entry *entity.Entry) error {
	ct, err := er.conn.Exec(ctx, `UPDATE entries SET title = $1, content = $2, mood = $3, category = $4, updated_at = NOW() WHERE id = $5 AND user_id = $6;`,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.Category,
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return errors.New("updating entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}

func (er *EntriesRepository) Delete(ctx context.Context, id, uid uuid.UUID) (string, error) {
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return "", errors.New("starting entry delete tx error: " + err.Error())
	}
	var imageURL string
	row := tx.QueryRow(ctx, `SELECT COALESCE(image_url, '') FROM entries WHERE id = $1 AND user_id = $2;`, id, uid)
	if err = row.Scan(&imageURL); err != nil {
		tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorvalues.ErrEntryNotFound
		}
		return "", errors.New("fetching entry for deletion error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2;`, id, uid); err != nil {
		tx.Rollback(ctx)
		return "", errors.New("deleting entry error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, `UPDATE user_statistics SET total_entries = GREATEST(total_entries - 1, 0) WHERE user_id = $1;`, uid); err != nil {
		tx.Rollback(ctx)
		return "", errors.New("decrementing statistics counter error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return "", errors.New("committing entry delete error: " + err.Error())
	}
	return imageURL, nil
}

func (er *EntriesRepository) ListQuickNotes(ctx context.Context, uid uuid.UUID) ([]*entity.Entry, error) {
	rows, err := er.conn.Query(ctx, `SELECT `+entryColumns+` FROM entries WHERE user_id = $1 AND is_quick_note = TRUE ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("listing quick notes error: " + err.Error())
	}
	defer rows.Close()
	notes := make([]*entity.Entry, 0)
	for rows.Next() {
		note, err := scanEntry(rows)
		if err != nil {
			return nil, errors.New("unmarshalling quick note error: " + err.Error())
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return notes, nil
}

func (er *EntriesRepository) InRange(ctx context.Context, uid uuid.UUID, from, to dates.Date) ([]*entity.Entry, error) {
	rows, err := er.conn.Query(ctx, `SELECT `+entryColumns+` FROM entries WHERE user_id = $1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at ASC;`,
		uid,
		from.Time(),
		to.AddDays(1).Time(),
	)
	if err != nil {
		return nil, errors.New("listing entries in range error: " + err.Error())
	}
	defer rows.Close()
	entries := make([]*entity.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.New("unmarshalling entry error: " + err.Error())
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return entries, nil
}

// StatRows is ordered oldest first so label first-seen order is stable for
// the distribution tie-break.
func (er *EntriesRepository) StatRows(ctx context.Context, uid uuid.UUID) ([]EntryStatRow, error) {
	rows, err := er.conn.Query(ctx, `SELECT mood, category, created_at FROM entries WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting entry stat rows error: " + err.Error())
	}
	defer rows.Close()
	result := make([]EntryStatRow, 0)
	for rows.Next() {
		var row EntryStatRow
		if err := rows.Scan(&row.Mood, &row.Category, &row.CreatedAt); err != nil {
			return nil, errors.New("unmarshalling stat row error: " + err.Error())
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return result, nil
}

func (er *EntriesRepository) CountQuickNotes(ctx context.Context, uid uuid.UUID) (int, error) {
	var count int
	row := er.conn.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE user_id = $1 AND is_quick_note = TRUE;`, uid)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("counting quick notes error: " + err.Error())
	}
	return count, nil
}
