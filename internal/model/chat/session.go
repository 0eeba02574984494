package chat

import (
	"time"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

// Stage is the funnel position of a user.
type Stage string

const (
	StageStart            Stage = "start"
	StageAwaitingPayment  Stage = "awaiting_payment"
	StagePaymentConfirmed Stage = "payment_confirmed"
)

// Session captures where a user sits in the consultation funnel.
type Session struct {
	UserID           string           `json:"userId"`
	Stage            Stage            `json:"stage"`
	Service          *catalog.Service `json:"service,omitempty"`
	PaymentConfirmed bool             `json:"paymentConfirmed"`
	// Asked is the field of the last clarifying question, if any.
	Asked        profile.Field `json:"asked,omitempty"`
	LastActivity time.Time     `json:"lastActivity"`
}

// NewSession returns a session at the start of the funnel.
func NewSession(userID string, now time.Time) Session {
	return Session{
		UserID:       userID,
		Stage:        StageStart,
		LastActivity: now,
	}
}

// Expired reports whether the session has been idle longer than ttl.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastActivity) > ttl
}
