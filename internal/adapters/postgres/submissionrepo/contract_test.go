package submissionrepo

import (
	"testing"

	"github.com/need-mission/site-api/internal/adapters/contracttest"
	"github.com/need-mission/site-api/internal/adapters/postgres/testutil"
	submissionrepoport "github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

func TestContract_PostgresSubmissionRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunSubmissionRepo(t, func(t *testing.T) (submissionrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
