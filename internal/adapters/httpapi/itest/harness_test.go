package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/need-mission/site-api/internal/adapters/httpapi"
	memclock "github.com/need-mission/site-api/internal/adapters/memory/clock"
	memprogramrepo "github.com/need-mission/site-api/internal/adapters/memory/programrepo"
	memsubmissionrepo "github.com/need-mission/site-api/internal/adapters/memory/submissionrepo"
	pgprogramrepo "github.com/need-mission/site-api/internal/adapters/postgres/programrepo"
	pgsubmissionrepo "github.com/need-mission/site-api/internal/adapters/postgres/submissionrepo"
	postgres_testutil "github.com/need-mission/site-api/internal/adapters/postgres/testutil"
	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/intake"
	"github.com/need-mission/site-api/internal/app/programs"
	"github.com/need-mission/site-api/internal/platform/auth/admintoken"
	"github.com/need-mission/site-api/internal/platform/config"
	programrepoport "github.com/need-mission/site-api/internal/ports/out/programrepo"
	submissionrepoport "github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

const (
	adminEmail    = "admin@itest.example"
	adminPassword = "itest-password"
	signingSecret = "itest-secret"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	clock   *memclock.ManualClock
	codec   *admintoken.Codec
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var (
		submissions submissionrepoport.Repository
		programList programrepoport.Repository
	)

	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		submissions = pgsubmissionrepo.NewRepo(pool)
		programList = pgprogramrepo.NewRepo(pool)
	case backendMemory:
		submissions = memsubmissionrepo.NewRepo()
		programList = memprogramrepo.NewRepo()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	codec := admintoken.NewWithOptions(signingSecret, adminauth.TokenTTL, clk)
	authSvc := adminauth.NewService(config.AdminIdentity{Email: adminEmail, Password: adminPassword}, codec)
	api := httpapi.NewServer(
		intake.NewService(submissions, clk),
		authSvc,
		programs.NewService(programList, clk),
		nil,
	)
	handler := httpapi.NewRouter(api, httpapi.RouterOptions{
		Gate:           adminauth.NewGate(codec),
		AllowedOrigins: []string{"*"},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		clock:   clk,
		codec:   codec,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, token string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

// login performs the admin login over HTTP and returns the token.
func (s *testServer) login(t *testing.T) string {
	t.Helper()
	status, body, _ := s.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    adminEmail,
		"password": adminPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login status=%d body=%s", status, string(body))
	}
	got := mustUnmarshal[struct {
		Token string `json:"token"`
	}](t, body)
	if got.Token == "" {
		t.Fatalf("empty token: %s", string(body))
	}
	return got.Token
}

type messageResponse struct {
	Message string `json:"message"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireMessage(t *testing.T, status int, body []byte, wantStatus int, wantMessage string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[messageResponse](t, body)
	if got.Message != wantMessage {
		t.Fatalf("message=%q want=%q body=%s", got.Message, wantMessage, string(body))
	}
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}
