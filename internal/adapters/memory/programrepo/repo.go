package programrepo

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/need-mission/site-api/internal/ports/out/programrepo"
)

// snapshot is an immutable published version of the program list.
type snapshot struct {
	version uint64
	entries []programrepo.Entry
}

// Repo is an in-memory implementation of programrepo.Repository.
//
// Readers load the current snapshot without locking; Replace builds a new sorted
// snapshot and publishes it with a single pointer swap.
type Repo struct {
	writeMu sync.Mutex
	current atomic.Pointer[snapshot]
}

func NewRepo() *Repo {
	r := &Repo{}
	r.current.Store(&snapshot{})
	return r
}

func (r *Repo) List(ctx context.Context) ([]programrepo.Entry, error) {
	_ = ctx
	s := r.current.Load()
	return append([]programrepo.Entry(nil), s.entries...), nil
}

func (r *Repo) Replace(ctx context.Context, entries []programrepo.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := append([]programrepo.Entry(nil), entries...)
	sort.SliceStable(next, func(i, j int) bool { return next[i].Order < next[j].Order })

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	prev := r.current.Load()
	r.current.Store(&snapshot{version: prev.version + 1, entries: next})
	return nil
}

// Version reports how many times the list has been replaced.
func (r *Repo) Version() uint64 {
	return r.current.Load().version
}
