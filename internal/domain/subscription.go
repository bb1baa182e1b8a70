package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProType distinguishes paid subscription tiers.
type ProType string

const (
	ProTypeMonthly ProType = "monthly"
	ProTypeAnnual  ProType = "annual"
)

// Subscription is a read-only billing input to the engine. The engine never
// writes it; checkout and renewal live elsewhere.
type Subscription struct {
	UserID           uuid.UUID
	Active           bool
	ProType          *ProType
	CurrentPeriodEnd *time.Time
}

// IsActive reports whether the subscription grants pro benefits at the given
// time. A lapsed period end overrides the stored Active flag so a stale row
// can never keep granting unlimited hearts.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil || !s.Active {
		return false
	}
	if s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(now) {
		return false
	}
	return true
}
