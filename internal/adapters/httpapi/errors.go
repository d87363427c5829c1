package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/need-mission/site-api/internal/app/apperr"
)

const msgServerError = "Server error"

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps application errors to their status and message. Anything else is
// logged in full and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if ae, ok := apperr.As(err); ok {
		writeMessage(w, ae.Status, ae.Message)
		return
	}
	log.Error("request failed",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeMessage(w, http.StatusInternalServerError, msgServerError)
}

func jsonNotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}

func jsonMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
