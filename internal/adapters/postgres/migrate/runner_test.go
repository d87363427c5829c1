package migrate

import "testing"

func TestRun_RejectsMissingDSN(t *testing.T) {
	t.Parallel()

	if err := Run("", DirectionUp); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestRun_RejectsUnknownDirection(t *testing.T) {
	t.Parallel()

	if err := Run("postgres://localhost/none", "sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
