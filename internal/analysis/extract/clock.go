package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/pkg/textutil"
)

var (
	// "6 da tarde", "6h da noite", "5 horas da manhã"
	periodPattern = regexp.MustCompile(`\b(\d{1,2})\s*(?:h|hs|hrs?|horas?)?\s+da\s+(manha|tarde|noite|madrugada)\b`)
	// "14:30", "14h30", "14h30min"
	clockPattern = regexp.MustCompile(`\b([01]?\d|2[0-3])\s*(?::|h)\s*([0-5]\d)(?:\s*min)?\b`)
	// "14h", "14 horas"
	hourPattern = regexp.MustCompile(`\b([01]?\d|2[0-3])\s*(?:h|hs|hrs?|horas?)\b`)
)

// findClock returns the first time of day in text, normalised to 24 hours.
func findClock(text string) (profile.Clock, bool) {
	folded := textutil.Fold(text)

	if m := periodPattern.FindStringSubmatch(folded); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour >= 1 && hour <= 12 {
			if c, err := profile.NewClock(toTwentyFour(hour, m[2]), 0); err == nil {
				return c, true
			}
		}
	}
	if m := clockPattern.FindStringSubmatch(folded); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if c, err := profile.NewClock(hour, minute); err == nil {
			return c, true
		}
	}
	switch {
	case strings.Contains(folded, "meio-dia"), strings.Contains(folded, "meio dia"):
		return profile.Clock{Hour: 12}, true
	case strings.Contains(folded, "meia-noite"), strings.Contains(folded, "meia noite"):
		return profile.Clock{Hour: 0}, true
	}
	if m := hourPattern.FindStringSubmatch(folded); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if c, err := profile.NewClock(hour, 0); err == nil {
			return c, true
		}
	}
	return profile.Clock{}, false
}

func toTwentyFour(hour int, period string) int {
	switch period {
	case "tarde":
		if hour == 12 {
			return 12
		}
		return hour + 12
	case "noite":
		if hour == 12 {
			return 0
		}
		return hour + 12
	default: // manha, madrugada
		return hour % 12
	}
}
