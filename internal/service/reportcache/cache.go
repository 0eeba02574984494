// Package reportcache memoises generated reports per (service, profile).
package reportcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
)

// DefaultTTL is how long a computed report stays reusable.
const DefaultTTL = 30 * time.Minute

var log = logrus.WithField("component", "reportcache")

// Cache stores reports keyed by service and the exact profile values used to
// build them.
type Cache interface {
	Lookup(ctx context.Context, serviceID string, p profile.Profile) (*report.Report, bool)
	Store(ctx context.Context, serviceID string, p profile.Profile, r *report.Report) error
}

// canonicalProfile fixes field order and renders values the way users see
// them, so equal profiles always serialise identically.
type canonicalProfile struct {
	Name  *string `json:"name"`
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Place *string `json:"place"`
}

// Key derives the cache key. Any difference in a field value, optional ones
// included, yields a different key.
func Key(serviceID string, p profile.Profile) string {
	c := canonicalProfile{Name: p.Name, Place: p.Place}
	if p.Date != nil {
		d := p.Date.String()
		c.Date = &d
	}
	if p.Time != nil {
		t := p.Time.String()
		c.Time = &t
	}
	// marshalling a struct of string pointers cannot fail
	raw, _ := json.Marshal(c)
	return serviceID + ":" + string(raw)
}
