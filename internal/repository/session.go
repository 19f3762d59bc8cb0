// Package repository persists calculation sessions between HTTP requests.
package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/itax/internal/domain"
)

// DefaultSessionTTL is how long a session is kept after it was last written.
const DefaultSessionTTL = 24 * time.Hour

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is a stored calculation that later requests can summarize or
// narrow down to one regime.
type Session struct {
	ID              string                      `json:"session_id"`
	Record          domain.FinancialRecord      `json:"financial_data"`
	Details         domain.CalculationDetails   `json:"calculation"`
	Recommendations domain.RecommendationReport `json:"recommendations"`
	SelectedRegime  domain.Regime               `json:"selected_regime,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// SessionStore saves and loads sessions.
type SessionStore interface {
	// Save stores a new session, assigning an ID when it has none.
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Update overwrites an existing session and fails with
	// ErrSessionNotFound if it has expired.
	Update(ctx context.Context, s *Session) error
}

func prepareNew(s *Session, now time.Time) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
}

// cloneSession copies s so that the stored value shares no slices or
// pointers with the caller's.
func cloneSession(s Session) Session {
	out := s
	out.Record = s.Record.DeepCopy()
	out.Details.Record = s.Details.Record.DeepCopy()
	out.Details.OldRegime.SlabBreakdown = slices.Clone(s.Details.OldRegime.SlabBreakdown)
	out.Details.NewRegime.SlabBreakdown = slices.Clone(s.Details.NewRegime.SlabBreakdown)
	out.Recommendations.Recommendations = slices.Clone(s.Recommendations.Recommendations)
	return out
}
