// Package programs serves and publishes the homepage's featured-programs list.
package programs

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/apperr"
	"github.com/need-mission/site-api/internal/domain"
	clockport "github.com/need-mission/site-api/internal/ports/out/clock"
	"github.com/need-mission/site-api/internal/ports/out/programrepo"
)

const msgNoPrograms = "No programs provided"

type Service struct {
	repo programrepo.Repository
	clk  clockport.Clock

	newID func() domain.ProgramID
}

func NewService(repo programrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newID: func() domain.ProgramID {
			return domain.ProgramID(uuid.NewString())
		},
	}
}

// List returns the published programs ordered by Order, or the built-in defaults when
// nothing has been published.
func (s *Service) List(ctx context.Context) ([]domain.Program, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return domain.DefaultPrograms(), nil
	}
	out := make([]domain.Program, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Program{
			Title:     e.Title,
			Body:      e.Body,
			Link:      e.Link,
			Order:     e.Order,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return out, nil
}

// Replace publishes items as the complete new list and returns how many were written.
// On any error the stored list is left as it was.
func (s *Service) Replace(ctx context.Context, grant adminauth.Grant, items []ItemInput) (int, error) {
	if err := adminauth.RequireGrant(grant); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, apperr.Validation(msgNoPrograms, map[string]any{"programs": "must be a non-empty list"})
	}

	now := s.clk.Now().UTC()
	entries := make([]programrepo.Entry, 0, len(items))
	for i, it := range items {
		if domain.ContainsNUL(it.Title, it.Body, it.Link) {
			return 0, apperr.Validation(
				fmt.Sprintf("Program %d must not contain NUL characters", i),
				map[string]any{"index": i},
			)
		}
		e := sanitize(i, it)
		if e.Title == "" || e.Body == "" {
			return 0, apperr.Validation(
				fmt.Sprintf("Program %d requires a title and body", i),
				map[string]any{"index": i},
			)
		}
		e.ID = s.newID()
		e.CreatedAt = now
		e.UpdatedAt = now
		entries = append(entries, e)
	}

	if err := s.repo.Replace(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func sanitize(index int, it ItemInput) programrepo.Entry {
	link := strings.TrimSpace(it.Link)
	if link == "" {
		link = domain.DefaultProgramLink
	}
	return programrepo.Entry{
		Title: cleanText(it.Title, domain.ProgramTitleMaxLen),
		Body:  cleanText(it.Body, domain.ProgramBodyMaxLen),
		Link:  link,
		Order: resolveOrder(index, it.Order),
	}
}

func cleanText(s string, max int) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(domain.TruncateRunes(s, max))
}

// resolveOrder truncates a finite order toward zero. Values outside the int32 range are
// clamped so they fit the store's integer column.
func resolveOrder(index int, order *float64) int {
	if order == nil || math.IsNaN(*order) || math.IsInf(*order, 0) {
		return index
	}
	v := math.Trunc(*order)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}
