package repository

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/foshmed/daybook/internal/error_values"
	"github.com/foshmed/daybook/pkg/cleanup"
	"github.com/foshmed/daybook/pkg/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const templateColumns = `id, name, content, category, COALESCE(icon, '') AS icon, description, is_default`

// Templates are shared across users, there is no owner column.
type TemplatesRepository struct {
	conn PgConnection
}

func NewTemplatesRepo(cfg DBConfig) *TemplatesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for templatesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for templatesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TemplatesRepository{
		conn: pool,
	}
}

func NewTemplatesRepoWithConn(conn PgConnection) *TemplatesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for templatesRepo: " + err.Error())
	}
	return &TemplatesRepository{
		conn: conn,
	}
}

func (tr *TemplatesRepository) List(ctx context.Context) ([]*entity.Template, error) {
	rows, err := tr.conn.Query(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY category, name;`)
	if err != nil {
		return nil, errors.New("listing templates error: " + err.Error())
	}
	defer rows.Close()
	templates := make([]*entity.Template, 0)
	for rows.Next() {
		var t entity.Template
		err = rows.Scan(&t.ID, &t.Name, &t.Content, &t.Category, &t.Icon, &t.Description, &t.Default)
		if err != nil {
			return nil, errors.New("unmarshalling template error: " + err.Error())
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning: " + err.Error())
	}
	return templates, nil
}

func (tr *TemplatesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Template, error) {
	var t entity.Template
	row := tr.conn.QueryRow(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1;`, id)
	if err := row.Scan(&t.ID, &t.Name, &t.Content, &t.Category, &t.Icon, &t.Description, &t.Default); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTemplateNotFound
		}
		return nil, errors.New("getting template by id error: " + err.Error())
	}
	return &t, nil
}
