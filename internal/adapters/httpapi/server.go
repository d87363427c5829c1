package httpapi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/app/intake"
	"github.com/need-mission/site-api/internal/app/programs"
)

// Server holds the HTTP handlers of the site API.
type Server struct {
	Intake   *intake.Service
	Auth     *adminauth.Service
	Programs *programs.Service

	Log *zap.Logger
}

func NewServer(intakeSvc *intake.Service, authSvc *adminauth.Service, programsSvc *programs.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Intake:   intakeSvc,
		Auth:     authSvc,
		Programs: programsSvc,
		Log:      log,
	}
}

func (s *Server) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	id, err := s.Intake.SubmitMembership(r.Context(), intake.MembershipInput{
		Name:    req.Name,
		Email:   req.Email,
		Type:    req.Type,
		City:    optionalString(req.City),
		Message: optionalString(req.Message),
	})
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	uid, err := apiID(id)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Membership recorded", ID: uid})
}

func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	id, err := s.Intake.SubmitContact(r.Context(), intake.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: optionalString(req.Subject),
		Message: req.Message,
	})
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	uid, err := apiID(id)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{Message: "Message received", ID: uid})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	// Login only answers 200 or 401: an undecodable body is a failed login.
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		req = loginRequest{}
	}
	cred, err := s.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: cred.Token})
}

func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Programs.List(r.Context())
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	out := make([]programResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, programResponse{Title: p.Title, Body: p.Body, Link: p.Link, Order: p.Order})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) ReplacePrograms(w http.ResponseWriter, r *http.Request) {
	var req replaceProgramsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	n, err := s.Programs.Replace(r.Context(), GrantFromContext(r.Context()), programItems(req.Programs))
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	s.Log.Info("programs replaced", zap.Int("count", n))
	writeJSON(w, http.StatusOK, replaceProgramsResponse{Message: "Programs updated", Count: n})
}

func (s *Server) ListMemberships(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	ms, err := s.Intake.ListMemberships(r.Context(), GrantFromContext(r.Context()), limit)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	out := make([]membershipResponse, 0, len(ms))
	for _, m := range ms {
		uid, err := apiID(m.ID)
		if err != nil {
			writeError(w, r, s.Log, err)
			return
		}
		out = append(out, membershipResponse{
			ID:        uid,
			Name:      m.Name,
			Email:     m.Email,
			Type:      string(m.Type),
			City:      m.City,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	cs, err := s.Intake.ListContacts(r.Context(), GrantFromContext(r.Context()), limit)
	if err != nil {
		writeError(w, r, s.Log, err)
		return
	}
	out := make([]contactResponse, 0, len(cs))
	for _, c := range cs {
		uid, err := apiID(c.ID)
		if err != nil {
			writeError(w, r, s.Log, err)
			return
		}
		out = append(out, contactResponse{
			ID:        uid,
			Name:      c.Name,
			Email:     c.Email,
			Subject:   c.Subject,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// limitParam binds the optional ?limit= query parameter; 0 means "use the default".
func limitParam(r *http.Request) (int, error) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		return 0, apperr.Validation("Invalid limit", map[string]any{"limit": "must be an integer"})
	}
	if limit == nil {
		return 0, nil
	}
	if *limit < 1 {
		return 0, apperr.Validation("Invalid limit", map[string]any{"limit": "must be at least 1"})
	}
	return *limit, nil
}
