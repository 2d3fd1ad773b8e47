// Package postgres implements the project store on a single projects table.
// It is an opt-in alternative to the jsonfile store, selected with
// STORE_DRIVER=postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the projects table if it does not exist. seq records
// insertion order, which is independent of id once ids are recycled.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists projects (
    seq          bigserial primary key,
    id           integer not null unique,
    title        text not null,
    description  text not null,
    category     text not null,
    image        text not null,
    slug         text not null,
    overview     text not null,
    role         text not null,
    tasks        text[] not null,
    achievements text[] not null,
    challenges   text[] not null,
    solutions    text[] not null,
    technologies text[] not null,
    live_url     text not null,
    github_url   text not null,
    created_at   timestamptz not null,
    updated_at   timestamptz not null
);
`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure projects schema: %w", err)
	}
	return nil
}

const columns = `id, title, description, category, image, slug, overview, role,
tasks, achievements, challenges, solutions, technologies,
live_url, github_url, created_at, updated_at`

func (s *Store) List(ctx context.Context) ([]domain.Project, error) {
	q := fmt.Sprintf(`select %s from projects order by seq;`, columns)
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int) (domain.Project, error) {
	q := fmt.Sprintf(`select %s from projects where id = $1;`, columns)
	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Project{}, store.ErrNotFound
	}
	return p, err
}

func (s *Store) Append(ctx context.Context, p domain.Project) (domain.Project, error) {
	const q = `
insert into projects (id, title, description, category, image, slug, overview, role,
                      tasks, achievements, challenges, solutions, technologies,
                      live_url, github_url, created_at, updated_at)
values ((select coalesce(max(id), 0) + 1 from projects),
        $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
returning id;
`
	err := s.db.QueryRow(ctx, q,
		p.Title, p.Description, p.Category, p.Image, p.Slug, p.Overview, p.Role,
		p.Tasks, p.Achievements, p.Challenges, p.Solutions, p.Technologies,
		p.LiveURL, p.GithubURL, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("append project: %w", err)
	}
	return p, nil
}

func (s *Store) Replace(ctx context.Context, id int, p domain.Project) (domain.Project, error) {
	const q = `
update projects
set title = $2, description = $3, category = $4, image = $5, slug = $6,
    overview = $7, role = $8, tasks = $9, achievements = $10, challenges = $11,
    solutions = $12, technologies = $13, live_url = $14, github_url = $15,
    created_at = $16, updated_at = $17
where id = $1;
`
	tag, err := s.db.Exec(ctx, q, id,
		p.Title, p.Description, p.Category, p.Image, p.Slug, p.Overview, p.Role,
		p.Tasks, p.Achievements, p.Challenges, p.Solutions, p.Technologies,
		p.LiveURL, p.GithubURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, fmt.Errorf("replace project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Project{}, store.ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (s *Store) Remove(ctx context.Context, id int) (domain.Project, error) {
	q := fmt.Sprintf(`delete from projects where id = $1 returning %s;`, columns)
	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Project{}, store.ErrNotFound
	}
	return p, err
}

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.Slug,
		&p.Overview, &p.Role, &p.Tasks, &p.Achievements, &p.Challenges,
		&p.Solutions, &p.Technologies, &p.LiveURL, &p.GithubURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, pgx.ErrNoRows
		}
		return domain.Project{}, fmt.Errorf("scan project: %w", err)
	}
	return p, nil
}
