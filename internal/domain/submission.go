package domain

import "time"

type MembershipType string

const (
	MembershipTypeInstitutional MembershipType = "Institutional"
	MembershipTypeIndividual    MembershipType = "Individual"
	MembershipTypeCorporate     MembershipType = "Corporate"
)

// ParseMembershipType matches s exactly (case-sensitive) against the known types.
func ParseMembershipType(s string) (MembershipType, bool) {
	switch t := MembershipType(s); t {
	case MembershipTypeInstitutional, MembershipTypeIndividual, MembershipTypeCorporate:
		return t, true
	default:
		return "", false
	}
}

// MembershipSubmission is a create-only record from the public membership form.
type MembershipSubmission struct {
	ID      SubmissionID
	Name    string
	Email   string
	Type    MembershipType
	City    string
	Message string

	// Seed marks sample records written by the operator seed command.
	Seed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactSubmission is a create-only record from the public contact form.
type ContactSubmission struct {
	ID      SubmissionID
	Name    string
	Email   string
	Subject string
	Message string

	Seed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
