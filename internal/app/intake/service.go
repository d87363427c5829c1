// Package intake accepts public membership and contact submissions.
package intake

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/domain"
	clockport "github.com/need-mission/site-api/internal/ports/out/clock"
	"github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgMembershipRequired = "name, email, and type are required"
	msgContactRequired    = "name, email, and message are required"
	msgInvalidEmail       = "Invalid email"
	msgInvalidType        = "Invalid membership type"
	msgInvalidCharacters  = "Fields must not contain NUL characters"
)

type Service struct {
	repo submissionrepo.Repository
	clk  clockport.Clock

	newID func() domain.SubmissionID
}

func NewService(repo submissionrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newID: func() domain.SubmissionID {
			return domain.SubmissionID(uuid.NewString())
		},
	}
}

func (s *Service) SubmitMembership(ctx context.Context, in MembershipInput) (domain.SubmissionID, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Type) == "" {
		return "", apperr.Validation(msgMembershipRequired, missingFields(map[string]string{
			"name": name, "email": email, "type": strings.TrimSpace(in.Type),
		}))
	}
	if domain.ContainsNUL(in.Name, in.Email, in.Type, in.City, in.Message) {
		return "", apperr.Validation(msgInvalidCharacters, nil)
	}
	if !emailPattern.MatchString(email) {
		return "", apperr.Validation(msgInvalidEmail, map[string]any{"email": "must be a valid email address"})
	}
	// The type must match exactly; surrounding whitespace is not forgiven.
	mt, ok := domain.ParseMembershipType(in.Type)
	if !ok {
		return "", apperr.Validation(msgInvalidType, map[string]any{
			"type": "must be one of Institutional, Individual, Corporate",
		})
	}

	now := s.clk.Now().UTC()
	rec := submissionrepo.Membership{
		ID:        s.newID(),
		Name:      name,
		Email:     domain.NormalizeEmail(email),
		Type:      mt,
		City:      strings.TrimSpace(in.City),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateMembership(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (domain.SubmissionID, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return "", apperr.Validation(msgContactRequired, missingFields(map[string]string{
			"name": name, "email": email, "message": message,
		}))
	}
	if domain.ContainsNUL(in.Name, in.Email, in.Subject, in.Message) {
		return "", apperr.Validation(msgInvalidCharacters, nil)
	}
	if !emailPattern.MatchString(email) {
		return "", apperr.Validation(msgInvalidEmail, map[string]any{"email": "must be a valid email address"})
	}

	now := s.clk.Now().UTC()
	rec := submissionrepo.Contact{
		ID:        s.newID(),
		Name:      name,
		Email:     domain.NormalizeEmail(email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateContact(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ListMemberships returns the newest membership submissions first.
func (s *Service) ListMemberships(ctx context.Context, grant adminauth.Grant, limit int) ([]domain.MembershipSubmission, error) {
	if err := adminauth.RequireGrant(grant); err != nil {
		return nil, err
	}
	recs, err := s.repo.ListMemberships(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]domain.MembershipSubmission, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.MembershipSubmission{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Type:      r.Type,
			City:      r.City,
			Message:   r.Message,
			Seed:      r.Seed,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

// ListContacts returns the newest contact submissions first.
func (s *Service) ListContacts(ctx context.Context, grant adminauth.Grant, limit int) ([]domain.ContactSubmission, error) {
	if err := adminauth.RequireGrant(grant); err != nil {
		return nil, err
	}
	recs, err := s.repo.ListContacts(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]domain.ContactSubmission, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.ContactSubmission{
			ID:        r.ID,
			Name:      r.Name,
			Email:     r.Email,
			Subject:   r.Subject,
			Message:   r.Message,
			Seed:      r.Seed,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

func missingFields(fields map[string]string) map[string]any {
	details := map[string]any{}
	for k, v := range fields {
		if v == "" {
			details[k] = "required"
		}
	}
	return details
}
