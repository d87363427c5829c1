package submissionrepo

import (
	"context"
	"time"

	"github.com/need-mission/site-api/internal/domain"
)

// Membership is the persistence shape of a membership submission.
type Membership struct {
	ID      domain.SubmissionID
	Name    string
	Email   string
	Type    domain.MembershipType
	City    string
	Message string
	Seed    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is the persistence shape of a contact submission.
type Contact struct {
	ID      domain.SubmissionID
	Name    string
	Email   string
	Subject string
	Message string
	Seed    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository stores create-only submissions.
//
// Result ordering expectations:
// - List methods return newest first (CreatedAt descending, ID descending on ties).
type Repository interface {
	CreateMembership(ctx context.Context, m Membership) error
	CreateContact(ctx context.Context, c Contact) error

	ListMemberships(ctx context.Context, limit int) ([]Membership, error)
	ListContacts(ctx context.Context, limit int) ([]Contact, error)

	// DeleteSeeded removes records written by the seed command and reports how many
	// memberships and contacts were removed.
	DeleteSeeded(ctx context.Context) (memberships int64, contacts int64, err error)
}
