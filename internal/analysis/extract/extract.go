// Package extract mines birth facts out of free-form chat history.
//
// Extraction is a pipeline of pure matchers (date, time, name, place). It never
// fails: a field that cannot be found stays nil in the returned profile.
package extract

import (
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

const (
	numerologyWindow = 6
	astrologyWindow  = 8
)

// Window returns how many trailing history messages are scanned for kind.
func Window(kind catalog.Kind) int {
	if kind == catalog.KindAstrology {
		return astrologyWindow
	}
	return numerologyWindow
}

// Extract scans the history window from newest to oldest and keeps the first
// value found for each field.
func Extract(history []chat.Message, kind catalog.Kind) profile.Profile {
	return ExtractWithHint(history, kind, profile.FieldNone)
}

// ExtractWithHint is Extract plus a hint naming the field the assistant last
// asked for. A bare reply in the newest user message ("Maria Santos",
// "Campinas") is then read as that field.
func ExtractWithHint(history []chat.Message, kind catalog.Kind, asked profile.Field) profile.Profile {
	start := len(history) - Window(kind)
	if start < 0 {
		start = 0
	}

	var p profile.Profile
	newest := true
	for i := len(history) - 1; i >= start; i-- {
		msg := history[i]
		if msg.Role != chat.RoleUser {
			continue
		}

		facts := parseMessage(msg.Content)
		if newest {
			facts.applyHint(msg.Content, asked)
			newest = false
		}
		facts.mergeInto(&p)
	}
	return p
}

// facts are the fields found in a single message.
type facts struct {
	date  *profile.Date
	time  *profile.Clock
	name  *string
	place *string
}

func parseMessage(text string) facts {
	var f facts
	date, dateAt, ok := findDate(text)
	if ok {
		f.date = &date
		if name, ok := nameBefore(text[:dateAt]); ok && !isCity(name) {
			f.name = &name
		}
	}
	if clock, ok := findClock(text); ok {
		f.time = &clock
	}
	if place, ok := findPlace(text, f.name, f.date != nil); ok {
		f.place = &place
	}
	return f
}

func (f *facts) applyHint(text string, asked profile.Field) {
	if f.date != nil || f.time != nil {
		return
	}
	switch asked {
	case profile.FieldName:
		if f.name == nil {
			if name, ok := bareName(text); ok {
				f.name = &name
			}
		}
	case profile.FieldPlace:
		if f.place == nil {
			if place, ok := barePlace(text); ok {
				f.place = &place
			}
		}
	}
}

func (f facts) mergeInto(p *profile.Profile) {
	if p.Date == nil && f.date != nil {
		p.Date = f.date
	}
	if p.Time == nil && f.time != nil {
		p.Time = f.time
	}
	if p.Name == nil && f.name != nil {
		p.Name = f.name
	}
	if p.Place == nil && f.place != nil {
		p.Place = f.place
	}
}
