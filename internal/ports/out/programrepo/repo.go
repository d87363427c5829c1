package programrepo

import (
	"context"
	"time"

	"github.com/need-mission/site-api/internal/domain"
)

// Entry is the persistence shape of a program entry.
type Entry struct {
	ID    domain.ProgramID
	Title string
	Body  string
	Link  string
	Order int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository stores the featured-programs list as one collection.
//
// Consistency expectations:
//   - List returns entries ordered by Order ascending; entries sharing an Order keep the
//     position they had in the slice passed to Replace.
//   - Replace swaps the whole collection atomically: a concurrent List observes either the
//     complete previous collection or the complete new one, never a mix.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Replace(ctx context.Context, entries []Entry) error
}
