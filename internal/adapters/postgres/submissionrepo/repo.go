package submissionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/need-mission/site-api/internal/adapters/postgres"
	"github.com/need-mission/site-api/internal/domain"
	"github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

// Repo is a Postgres implementation of submissionrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) CreateMembership(ctx context.Context, m submissionrepo.Membership) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := parseID(m.ID)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO memberships (
			id, name, email, membership_type, city, message, seed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		id,
		m.Name,
		m.Email,
		string(m.Type),
		m.City,
		m.Message,
		m.Seed,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	)
	return mapInsertErr(err)
}

func (r *Repo) CreateContact(ctx context.Context, c submissionrepo.Contact) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := parseID(c.ID)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO contact_messages (
			id, name, email, subject, message, seed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		id,
		c.Name,
		c.Email,
		c.Subject,
		c.Message,
		c.Seed,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	return mapInsertErr(err)
}

func (r *Repo) ListMemberships(ctx context.Context, limit int) ([]submissionrepo.Membership, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, membership_type, city, message, seed, created_at, updated_at
		FROM memberships
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, sqlLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []submissionrepo.Membership
	for rows.Next() {
		var (
			m     submissionrepo.Membership
			id    uuid.UUID
			mtype string
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &mtype, &m.City, &m.Message, &m.Seed, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.ID = domain.SubmissionID(id.String())
		m.Type = domain.MembershipType(mtype)
		m.CreatedAt = m.CreatedAt.UTC()
		m.UpdatedAt = m.UpdatedAt.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) ListContacts(ctx context.Context, limit int) ([]submissionrepo.Contact, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subject, message, seed, created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, sqlLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []submissionrepo.Contact
	for rows.Next() {
		var (
			c  submissionrepo.Contact
			id uuid.UUID
		)
		if err := rows.Scan(&id, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Seed, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.ID = domain.SubmissionID(id.String())
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteSeeded(ctx context.Context) (int64, int64, error) {
	if r.pool == nil {
		return 0, 0, errors.New("nil postgres pool")
	}
	var nm, nc int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `DELETE FROM memberships WHERE seed`)
		if err != nil {
			return err
		}
		nm = ct.RowsAffected()
		ct, err = tx.Exec(ctx, `DELETE FROM contact_messages WHERE seed`)
		if err != nil {
			return err
		}
		nc = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return nm, nc, nil
}

func parseID(id domain.SubmissionID) (uuid.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %v", submissionrepo.ErrInvalidID, err)
	}
	return u, nil
}

func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
		return submissionrepo.ErrAlreadyExists
	}
	return err
}

// sqlLimit maps "no limit" (<= 0) to NULL, which Postgres treats as LIMIT ALL.
func sqlLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
