package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/need-mission/site-api/internal/app/adminauth"
)

// NewAdminMiddleware runs the admin gate on the Authorization header and stores the
// resulting Grant in request context. Requests that fail the gate never reach next.
func NewAdminMiddleware(gate *adminauth.Gate, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g, err := gate.Check(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithGrant(r.Context(), g)))
		})
	}
}
