// Package report defines the generated consultation documents.
package report

import "github.com/sarahkali/oracle/backend/internal/model/catalog"

// Fact is one named value a report was built from.
type Fact struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Report is an immutable generated document. It is a pure function of its
// inputs, so it can be cached and replayed verbatim.
type Report struct {
	Kind  catalog.Kind `json:"kind"`
	Text  string       `json:"text"`
	Facts []Fact       `json:"facts"`
}

// Fact returns the value recorded under key.
func (r *Report) Fact(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, f := range r.Facts {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
