package intake

import (
	"context"
	"fmt"

	"github.com/need-mission/site-api/internal/domain"
	"github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

// SeedResult reports what ReseedSamples removed and wrote.
type SeedResult struct {
	RemovedMemberships int64
	RemovedContacts    int64
	Memberships        int
	Contacts           int
}

var sampleMemberships = []MembershipInput{
	{Name: "KCT Eco Club", Email: "eco@kct.edu", Type: "Institutional", City: "Coimbatore", Message: "Pilot campus audit"},
	{Name: "Riya Sharma", Email: "riya@example.com", Type: "Individual", City: "Delhi", Message: "Volunteer for waste drives"},
	{Name: "GreenCorp Pvt Ltd", Email: "sustainability@greencorp.com", Type: "Corporate", City: "Bengaluru", Message: "CSR collaboration"},
}

var sampleContacts = []ContactInput{
	{Name: "Arun", Email: "arun@example.com", Subject: "Partnership", Message: "Interested in partnering for schools program"},
	{Name: "Meera", Email: "meera@example.com", Subject: "Resources", Message: "Can we get the teacher toolkit PDF?"},
}

// ReseedSamples deletes previously seeded submissions and writes the sample set again,
// flagged as seed data. Real submissions are never touched.
func (s *Service) ReseedSamples(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	var err error
	res.RemovedMemberships, res.RemovedContacts, err = s.repo.DeleteSeeded(ctx)
	if err != nil {
		return res, fmt.Errorf("delete seeded: %w", err)
	}

	now := s.clk.Now().UTC()
	for _, in := range sampleMemberships {
		mt, _ := domain.ParseMembershipType(in.Type)
		err := s.repo.CreateMembership(ctx, submissionrepo.Membership{
			ID:        s.newID(),
			Name:      in.Name,
			Email:     domain.NormalizeEmail(in.Email),
			Type:      mt,
			City:      in.City,
			Message:   in.Message,
			Seed:      true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return res, fmt.Errorf("seed membership %q: %w", in.Name, err)
		}
		res.Memberships++
	}
	for _, in := range sampleContacts {
		err := s.repo.CreateContact(ctx, submissionrepo.Contact{
			ID:        s.newID(),
			Name:      in.Name,
			Email:     domain.NormalizeEmail(in.Email),
			Subject:   in.Subject,
			Message:   in.Message,
			Seed:      true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return res, fmt.Errorf("seed contact %q: %w", in.Name, err)
		}
		res.Contacts++
	}
	return res, nil
}
