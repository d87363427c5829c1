package submissionrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

// Repo is an in-memory implementation of submissionrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	memberships []submissionrepo.Membership
	contacts    []submissionrepo.Contact
	ids         map[string]struct{}
}

func NewRepo() *Repo {
	return &Repo{ids: make(map[string]struct{})}
}

func (r *Repo) CreateMembership(ctx context.Context, m submissionrepo.Membership) error {
	_ = ctx
	if m.ID == "" {
		return submissionrepo.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[string(m.ID)]; ok {
		return submissionrepo.ErrAlreadyExists
	}
	r.ids[string(m.ID)] = struct{}{}
	r.memberships = append(r.memberships, m)
	return nil
}

func (r *Repo) CreateContact(ctx context.Context, c submissionrepo.Contact) error {
	_ = ctx
	if c.ID == "" {
		return submissionrepo.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[string(c.ID)]; ok {
		return submissionrepo.ErrAlreadyExists
	}
	r.ids[string(c.ID)] = struct{}{}
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *Repo) ListMemberships(ctx context.Context, limit int) ([]submissionrepo.Membership, error) {
	_ = ctx
	r.mu.RLock()
	out := append([]submissionrepo.Membership(nil), r.memberships...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return clip(out, limit), nil
}

func (r *Repo) ListContacts(ctx context.Context, limit int) ([]submissionrepo.Contact, error) {
	_ = ctx
	r.mu.RLock()
	out := append([]submissionrepo.Contact(nil), r.contacts...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return clip(out, limit), nil
}

func (r *Repo) DeleteSeeded(ctx context.Context) (int64, int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	var nm, nc int64
	keptM := r.memberships[:0]
	for _, m := range r.memberships {
		if m.Seed {
			delete(r.ids, string(m.ID))
			nm++
			continue
		}
		keptM = append(keptM, m)
	}
	r.memberships = keptM

	keptC := r.contacts[:0]
	for _, c := range r.contacts {
		if c.Seed {
			delete(r.ids, string(c.ID))
			nc++
			continue
		}
		keptC = append(keptC, c)
	}
	r.contacts = keptC
	return nm, nc, nil
}

func clip[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
