package contracttest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/need-mission/site-api/internal/domain"
	programrepoport "github.com/need-mission/site-api/internal/ports/out/programrepo"
	submissionrepoport "github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

type CleanupFunc = func()

type SubmissionRepoFactory func(t *testing.T) (submissionrepoport.Repository, CleanupFunc)
type ProgramRepoFactory func(t *testing.T) (programrepoport.Repository, CleanupFunc)

func RunSubmissionRepo(t *testing.T, newRepo SubmissionRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	t0 := time.Unix(1000, 0).UTC()
	mID := domain.SubmissionID(uuid.NewString())
	if err := repo.CreateMembership(ctx, submissionrepoport.Membership{
		ID:        mID,
		Name:      "KCT Eco Club",
		Email:     "eco@kct.edu",
		Type:      domain.MembershipTypeInstitutional,
		City:      "Coimbatore",
		Message:   "Pilot campus audit",
		CreatedAt: t0,
		UpdatedAt: t0,
	}); err != nil {
		t.Fatalf("CreateMembership: %v", err)
	}

	// Duplicate IDs are rejected.
	if err := repo.CreateMembership(ctx, submissionrepoport.Membership{
		ID:        mID,
		Name:      "dup",
		Email:     "dup@example.com",
		Type:      domain.MembershipTypeIndividual,
		CreatedAt: t0,
		UpdatedAt: t0,
	}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	// Same content twice creates two records: no dedup.
	for i := 0; i < 2; i++ {
		if err := repo.CreateMembership(ctx, submissionrepoport.Membership{
			ID:        domain.SubmissionID(uuid.NewString()),
			Name:      "Riya Sharma",
			Email:     "riya@example.com",
			Type:      domain.MembershipTypeIndividual,
			Seed:      true,
			CreatedAt: t0.Add(time.Duration(i+1) * time.Minute),
			UpdatedAt: t0.Add(time.Duration(i+1) * time.Minute),
		}); err != nil {
			t.Fatalf("CreateMembership %d: %v", i, err)
		}
	}

	ms, err := repo.ListMemberships(ctx, 0)
	if err != nil {
		t.Fatalf("ListMemberships: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("memberships=%d want 3", len(ms))
	}
	// Newest first.
	if !ms[0].CreatedAt.Equal(t0.Add(2*time.Minute)) || ms[2].ID != mID {
		t.Fatalf("unexpected ordering: %+v", ms)
	}
	if ms[2].City != "Coimbatore" || ms[2].Type != domain.MembershipTypeInstitutional || ms[2].Seed {
		t.Fatalf("round-trip mismatch: %+v", ms[2])
	}

	limited, err := repo.ListMemberships(ctx, 1)
	if err != nil {
		t.Fatalf("ListMemberships limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit=1 returned %d", len(limited))
	}

	cID := domain.SubmissionID(uuid.NewString())
	if err := repo.CreateContact(ctx, submissionrepoport.Contact{
		ID:        cID,
		Name:      "Arun",
		Email:     "arun@example.com",
		Subject:   "Partnership",
		Message:   "Interested in partnering for schools program",
		CreatedAt: t0,
		UpdatedAt: t0,
	}); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if err := repo.CreateContact(ctx, submissionrepoport.Contact{
		ID:        domain.SubmissionID(uuid.NewString()),
		Name:      "Meera",
		Email:     "meera@example.com",
		Message:   "Can we get the teacher toolkit PDF?",
		Seed:      true,
		CreatedAt: t0.Add(time.Hour),
		UpdatedAt: t0.Add(time.Hour),
	}); err != nil {
		t.Fatalf("CreateContact seed: %v", err)
	}
	cs, err := repo.ListContacts(ctx, 10)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(cs) != 2 || cs[1].ID != cID || cs[1].Subject != "Partnership" || cs[0].Subject != "" {
		t.Fatalf("unexpected contacts: %+v", cs)
	}

	nm, nc, err := repo.DeleteSeeded(ctx)
	if err != nil {
		t.Fatalf("DeleteSeeded: %v", err)
	}
	if nm != 2 || nc != 1 {
		t.Fatalf("DeleteSeeded removed (%d,%d) want (2,1)", nm, nc)
	}
	ms, _ = repo.ListMemberships(ctx, 0)
	cs, _ = repo.ListContacts(ctx, 0)
	if len(ms) != 1 || ms[0].ID != mID || len(cs) != 1 || cs[0].ID != cID {
		t.Fatalf("non-seed records affected: memberships=%+v contacts=%+v", ms, cs)
	}
}

func RunProgramRepo(t *testing.T, newRepo ProgramRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}

	now := time.Unix(2000, 0).UTC()
	first := []programrepoport.Entry{
		programEntry("C", 2, now),
		programEntry("A", 0, now),
		programEntry("B1", 1, now),
		programEntry("B2", 1, now),
	}
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if titles(got) != "A,B1,B2,C" {
		t.Fatalf("ordering=%s want A,B1,B2,C", titles(got))
	}
	if got[0].Link != "#" || got[0].Body != "body A" {
		t.Fatalf("round-trip mismatch: %+v", got[0])
	}

	// Replace drops every previous entry.
	if err := repo.Replace(ctx, []programrepoport.Entry{programEntry("Only", 5, now)}); err != nil {
		t.Fatalf("Replace second: %v", err)
	}
	got, _ = repo.List(ctx)
	if titles(got) != "Only" {
		t.Fatalf("after replace=%s want Only", titles(got))
	}

	runProgramReplaceIsAtomic(t, repo)
}

// runProgramReplaceIsAtomic alternates between two lists while readers check that every
// observed list is entirely one or entirely the other.
func runProgramReplaceIsAtomic(t *testing.T, repo programrepoport.Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Unix(3000, 0).UTC()

	listA := []programrepoport.Entry{programEntry("A-0", 0, now), programEntry("A-1", 1, now), programEntry("A-2", 2, now)}
	listB := []programrepoport.Entry{programEntry("B-0", 0, now), programEntry("B-1", 1, now)}

	if err := repo.Replace(ctx, listA); err != nil {
		t.Fatalf("seed Replace: %v", err)
	}

	const writes = 20
	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				got, err := repo.List(ctx)
				if err != nil {
					errs <- err
					return
				}
				if err := checkHomogeneous(got); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	var writeErr error
	for i := 0; i < writes && writeErr == nil; i++ {
		next := listA
		if i%2 == 0 {
			next = listB
		}
		writeErr = repo.Replace(ctx, withFreshIDs(next))
	}
	close(done)
	wg.Wait()
	close(errs)

	if writeErr != nil {
		t.Fatalf("Replace during race: %v", writeErr)
	}
	for err := range errs {
		t.Fatalf("reader observed inconsistent state: %v", err)
	}
}

func checkHomogeneous(entries []programrepoport.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("empty list observed")
	}
	prefix := strings.SplitN(entries[0].Title, "-", 2)[0]
	want := map[string]int{"A": 3, "B": 2}[prefix]
	if len(entries) != want {
		return fmt.Errorf("list %s has %d entries, want %d", titles(entries), len(entries), want)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Title, prefix+"-") {
			return fmt.Errorf("mixed list observed: %s", titles(entries))
		}
	}
	return nil
}

func programEntry(title string, order int, at time.Time) programrepoport.Entry {
	return programrepoport.Entry{
		ID:        domain.ProgramID(uuid.NewString()),
		Title:     title,
		Body:      "body " + title,
		Link:      "#",
		Order:     order,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func withFreshIDs(in []programrepoport.Entry) []programrepoport.Entry {
	out := make([]programrepoport.Entry, len(in))
	for i, e := range in {
		e.ID = domain.ProgramID(uuid.NewString())
		out[i] = e
	}
	return out
}

func titles(entries []programrepoport.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Title)
	}
	return strings.Join(parts, ",")
}
