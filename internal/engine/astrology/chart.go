// Package astrology builds simplified natal chart summaries.
//
// The moon sign and ascendant are deliberate approximations, not ephemeris
// calculations. Their arithmetic is fixed so that reports stay stable across
// releases; do not replace it with astronomical formulas.
package astrology

import (
	"math"
	"strings"
	"time"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

const (
	// SynodicMonth is the mean lunar cycle length in days.
	SynodicMonth = 29.53
	baseSpeed    = 2.0
	latitudeStep = 0.5
)

// referenceNewMoon is the new moon the approximate lunar age counts from.
var referenceNewMoon = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// House is one astrological house.
type House struct {
	Number  int
	Sign    Sign
	Meaning string
}

// Aspect is a sun/moon element relationship.
type Aspect struct {
	Kind      string
	Meaning   string
	Influence string
	Emoji     string
}

// SunSign returns the sign whose range contains the date, Capricorn when no
// range matches.
func SunSign(d profile.Date) Sign {
	for _, s := range Signs {
		if s.Contains(d.Day, d.Month) {
			return s
		}
	}
	return Signs[capricorn]
}

// MoonSign approximates the moon sign from the lunar age: days since the
// reference new moon modulo the synodic month, scaled to twelve signs.
func MoonSign(d profile.Date) Sign {
	days := math.Floor(d.Time().Sub(referenceNewMoon).Hours() / 24)
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	idx := int(math.Floor(age / SynodicMonth * 12))
	if idx > 11 {
		idx = 11
	}
	return Signs[idx]
}

// Ascendant offsets the sun sign by the decimal birth hour divided by a
// speed of two signs per hour, nudged by "norte"/"sul" in the place name.
// It returns false when time or place is missing.
func Ascendant(sun Sign, clock *profile.Clock, place *string) (Sign, bool) {
	if clock == nil || place == nil || strings.TrimSpace(*place) == "" {
		return Sign{}, false
	}

	lower := strings.ToLower(*place)
	adjust := 0.0
	switch {
	case strings.Contains(lower, "norte"):
		adjust = 1
	case strings.Contains(lower, "sul"):
		adjust = -1
	}

	speed := baseSpeed + adjust*latitudeStep
	offset := int(math.Floor(clock.DecimalHour() / speed))
	return Signs[(sun.Index+offset)%12], true
}

// Houses rotates the zodiac starting at the ascendant.
func Houses(asc Sign) []House {
	houses := make([]House, 0, 12)
	for i := 0; i < 12; i++ {
		houses = append(houses, House{
			Number:  i + 1,
			Sign:    Signs[(asc.Index+i)%12],
			Meaning: houseMeanings[i],
		})
	}
	return houses
}

var (
	squareOf     = map[Element]Element{Fire: Earth, Earth: Air, Air: Water, Water: Fire}
	trineOf      = map[Element]Element{Fire: Air, Air: Fire, Earth: Water, Water: Earth}
	oppositionOf = map[Element]Element{Fire: Water, Water: Fire, Earth: Air, Air: Earth}
)

// Aspects compares the sun and moon elements.
func Aspects(sun, moon Sign) []Aspect {
	var out []Aspect
	if sun.Element == moon.Element {
		out = append(out, Aspect{
			Kind:      "Conjunção Harmônica",
			Meaning:   "Sua identidade e emoções estão alinhadas, trazendo coerência interna",
			Influence: "Positiva",
			Emoji:     "💫",
		})
	}
	if squareOf[sun.Element] == moon.Element {
		out = append(out, Aspect{
			Kind:      "Quadratura de Desafio",
			Meaning:   "Tensão entre sua identidade e emoções, exigindo integração",
			Influence: "Desafiadora",
			Emoji:     "⚡",
		})
	}
	if trineOf[sun.Element] == moon.Element {
		out = append(out, Aspect{
			Kind:      "Trígono Harmônico",
			Meaning:   "Fluidez natural entre vontade e sentimento",
			Influence: "Muito Positiva",
			Emoji:     "🌟",
		})
	}
	if oppositionOf[sun.Element] == moon.Element {
		out = append(out, Aspect{
			Kind:      "Oposição de Polaridade",
			Meaning:   "Tensão criativa entre aspectos opostos da personalidade",
			Influence: "Desafiadora mas evolutiva",
			Emoji:     "🌀",
		})
	}
	return out
}
