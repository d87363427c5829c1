package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/app/programs"
	"github.com/need-mission/site-api/internal/domain"
)

type membershipRequest struct {
	Name    string                    `json:"name"`
	Email   string                    `json:"email"`
	Type    string                    `json:"type"`
	City    nullable.Nullable[string] `json:"city,omitempty"`
	Message nullable.Nullable[string] `json:"message,omitempty"`
}

type contactRequest struct {
	Name    string                    `json:"name"`
	Email   string                    `json:"email"`
	Subject nullable.Nullable[string] `json:"subject,omitempty"`
	Message string                    `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type replaceProgramsRequest struct {
	Programs json.RawMessage `json:"programs"`
}

type programItemRequest struct {
	Title string                    `json:"title"`
	Body  string                    `json:"body"`
	Link  nullable.Nullable[string] `json:"link,omitempty"`
	Order json.RawMessage           `json:"order,omitempty"`
}

type createdResponse struct {
	Message string             `json:"message"`
	ID      openapi_types.UUID `json:"id"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type programResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`
	Order int    `json:"order"`
}

type replaceProgramsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type membershipResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Type      string             `json:"type"`
	City      string             `json:"city"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"createdAt"`
}

type contactResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Subject   string             `json:"subject"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"createdAt"`
}

// decodeJSON decodes the request body into dst. An empty body leaves dst untouched so
// that missing fields surface as the operation's own validation message.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large", nil)
		}
		return apperr.Validation("Invalid JSON body", nil)
	}
}

func optionalString(n nullable.Nullable[string]) string {
	v, err := n.Get()
	if err != nil {
		return ""
	}
	return v
}

// programItems converts the raw programs value. A value that is not an array yields no
// items; an item that is not an object yields an empty item.
func programItems(raw json.RawMessage) []programs.ItemInput {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]programs.ItemInput, 0, len(elems))
	for _, e := range elems {
		var it programItemRequest
		if err := json.Unmarshal(e, &it); err != nil {
			out = append(out, programs.ItemInput{})
			continue
		}
		out = append(out, programs.ItemInput{
			Title: it.Title,
			Body:  it.Body,
			Link:  optionalString(it.Link),
			Order: numericOrder(it.Order),
		})
	}
	return out
}

func numericOrder(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func apiID(id domain.SubmissionID) (openapi_types.UUID, error) {
	return uuid.Parse(string(id))
}
