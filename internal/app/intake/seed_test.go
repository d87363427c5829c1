package intake

import (
	"context"
	"testing"
)

func TestService_ReseedSamples_KeepsRealSubmissions(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newService()
	if _, err := svc.SubmitMembership(context.Background(), MembershipInput{Name: "Real", Email: "real@example.com", Type: "Individual"}); err != nil {
		t.Fatalf("SubmitMembership: %v", err)
	}

	first, err := svc.ReseedSamples(context.Background())
	if err != nil {
		t.Fatalf("ReseedSamples: %v", err)
	}
	if first.Memberships != 3 || first.Contacts != 2 || first.RemovedMemberships != 0 || first.RemovedContacts != 0 {
		t.Fatalf("first=%+v", first)
	}

	second, err := svc.ReseedSamples(context.Background())
	if err != nil {
		t.Fatalf("ReseedSamples again: %v", err)
	}
	if second.RemovedMemberships != 3 || second.RemovedContacts != 2 {
		t.Fatalf("second=%+v", second)
	}

	ms, _ := repo.ListMemberships(context.Background(), 100)
	if len(ms) != 4 {
		t.Fatalf("memberships=%d want 4", len(ms))
	}
	genuine := 0
	for _, m := range ms {
		if !m.Seed {
			genuine++
		}
	}
	if genuine != 1 {
		t.Fatalf("real submissions=%d want 1", genuine)
	}
	cs, _ := repo.ListContacts(context.Background(), 100)
	if len(cs) != 2 {
		t.Fatalf("contacts=%d want 2", len(cs))
	}
}
