package extract

import (
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

// requirements per deterministic kind: blocking fields must be present
// before a report is generated, soft fields are only asked for once.
var requirements = map[catalog.Kind]struct {
	blocking []profile.Field
	soft     []profile.Field
}{
	catalog.KindNumerology: {blocking: []profile.Field{profile.FieldName, profile.FieldDate}},
	catalog.KindAstrology: {
		blocking: []profile.Field{profile.FieldDate, profile.FieldPlace},
		soft:     []profile.Field{profile.FieldName, profile.FieldTime},
	},
}

// MissingFields lists absent blocking fields in asking order
// (name, date, place, time). Empty means the report can be generated.
func MissingFields(p profile.Profile, kind catalog.Kind) []profile.Field {
	return missing(p, requirements[kind].blocking)
}

// SoftMissing lists absent optional fields that improve the reading.
func SoftMissing(p profile.Profile, kind catalog.Kind) []profile.Field {
	return missing(p, requirements[kind].soft)
}

func missing(p profile.Profile, fields []profile.Field) []profile.Field {
	want := make(map[profile.Field]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	var out []profile.Field
	for _, f := range profile.Priority {
		if want[f] && !p.Has(f) {
			out = append(out, f)
		}
	}
	return out
}
