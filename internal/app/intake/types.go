package intake

// MembershipInput is the raw membership form as received from the client.
type MembershipInput struct {
	Name    string
	Email   string
	Type    string
	City    string
	Message string
}

// ContactInput is the raw contact form as received from the client.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)
