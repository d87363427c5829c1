package programrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/need-mission/site-api/internal/domain"
	"github.com/need-mission/site-api/internal/ports/out/programrepo"
)

// Repo is a Postgres implementation of programrepo.Repository.
//
// Replace runs DELETE + COPY inside one transaction. Readers run a single SELECT, which
// sees one committed snapshot, so they observe either the old or the new list.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) List(ctx context.Context) ([]programrepo.Entry, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, body, link, sort_order, created_at, updated_at
		FROM programs
		ORDER BY sort_order ASC, position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []programrepo.Entry
	for rows.Next() {
		var (
			e  programrepo.Entry
			id uuid.UUID
		)
		if err := rows.Scan(&id, &e.Title, &e.Body, &e.Link, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.ID = domain.ProgramID(id.String())
		e.CreatedAt = e.CreatedAt.UTC()
		e.UpdatedAt = e.UpdatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) Replace(ctx context.Context, entries []programrepo.Entry) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	rows := make([][]any, 0, len(entries))
	for i, e := range entries {
		id, err := uuid.Parse(string(e.ID))
		if err != nil {
			return fmt.Errorf("invalid program id: %w", err)
		}
		rows = append(rows, []any{id, e.Title, e.Body, e.Link, e.Order, i, e.CreatedAt.UTC(), e.UpdatedAt.UTC()})
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// Serialize writers; readers are not blocked.
		if _, err := tx.Exec(ctx, `LOCK TABLE programs IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM programs`); err != nil {
			return err
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"programs"},
			[]string{"id", "title", "body", "link", "sort_order", "position", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		)
		return err
	})
}
