package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/analysis/intent"
	"github.com/sarahkali/oracle/backend/pkg/textutil"
)

const maxPlaceTokens = 5

// cities lists well-known birthplaces. Names that double as common first
// names or surnames (Vitória, Santos, Natal, Porto) are left out and fall
// through to the positional heuristics.
var cities = []string{
	"São Paulo", "Rio de Janeiro", "Belo Horizonte", "Salvador", "Brasília", "Fortaleza",
	"Recife", "Porto Alegre", "Curitiba", "Manaus", "Belém", "Goiânia", "Campinas",
	"São Luís", "Maceió", "Teresina", "João Pessoa", "Aracaju", "Cuiabá", "Campo Grande",
	"Florianópolis", "Porto Velho", "Macapá", "Boa Vista", "Rio Branco", "Palmas",
	"Niterói", "Guarulhos", "Osasco", "Ribeirão Preto", "Sorocaba", "Uberlândia",
	"Juiz de Fora", "Londrina", "Joinville", "Feira de Santana", "Campina Grande",
	"Santo André", "São Bernardo do Campo", "Duque de Caxias", "Nova Iguaçu",
	"Lisboa", "Coimbra", "Luanda", "Maputo",
}

type gazetteerEntry struct {
	folded string
	name   string
}

// gazetteer is ordered longest first so "Porto Alegre" wins over shorter
// overlapping names.
var gazetteer = buildGazetteer(cities)

func buildGazetteer(names []string) []gazetteerEntry {
	entries := make([]gazetteerEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, gazetteerEntry{folded: " " + textutil.Fold(n) + " ", name: n})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].folded) > len(entries[j].folded)
	})
	return entries
}

var (
	bornInPattern = regexp.MustCompile(`(?i)\b(?:nasci|nascid[oa]|natural)\s+(?:em|de|no|na)\s+([^\d,;.!?\n]+)`)
	cityPattern   = regexp.MustCompile(`(?i)\b(?:cidade|local)(?:\s+(?:de\s+nascimento|natal))?\s*(?::|-|é|e)?\s+([^\d,;.!?\n]+)`)
	afterTimePat  = regexp.MustCompile(`(?i)(?:\d{1,2}\s*(?::|h)\s*\d{2}|\d{1,2}\s*h|\d{4})\s+(?:em|no|na)\s+([^\d,;.!?\n]+)`)
)

// findPlace looks up a birthplace: the gazetteer first, then phrasing such as
// "nasci em X", then the first clean comma-separated segment after the date.
func findPlace(text string, name *string, hasDate bool) (string, bool) {
	if city, ok := lookupCity(text, name); ok {
		return city, true
	}
	for _, pat := range []*regexp.Regexp{bornInPattern, cityPattern, afterTimePat} {
		if m := pat.FindStringSubmatch(text); m != nil {
			if place, ok := cleanPlace(m[1]); ok {
				return place, true
			}
		}
	}
	if hasDate {
		return segmentAfterDate(text, name)
	}
	return "", false
}

// barePlace accepts a reply that is just a city, used when the assistant has
// asked for one.
func barePlace(text string) (string, bool) {
	if strings.ContainsAny(text, "?0123456789") || intent.DetectPaymentProof(text) || intent.IsGreeting(text) {
		return "", false
	}
	if city, ok := lookupCity(text, nil); ok {
		return city, true
	}
	clauses := strings.FieldsFunc(text, isClauseBreak)
	if len(clauses) == 0 {
		return "", false
	}
	return cleanPlace(clauses[0])
}

func lookupCity(text string, name *string) (string, bool) {
	folded := " " + strings.Join(strings.FieldsFunc(textutil.Fold(text), isWordBreak), " ") + " "
	if name != nil {
		folded = strings.ReplaceAll(folded, " "+textutil.Fold(*name)+" ", " ")
	}
	for _, e := range gazetteer {
		if strings.Contains(folded, e.folded) {
			return e.name, true
		}
	}
	return "", false
}

// isCity reports whether s is exactly a gazetteer city.
func isCity(s string) bool {
	folded := " " + textutil.Fold(strings.TrimSpace(s)) + " "
	for _, e := range gazetteer {
		if e.folded == folded {
			return true
		}
	}
	return false
}

func segmentAfterDate(text string, name *string) (string, bool) {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	seenDate := false
	for _, seg := range segments {
		if !seenDate {
			seenDate = datePattern.MatchString(seg)
			continue
		}
		if strings.ContainsAny(seg, "0123456789") || intent.DetectPaymentProof(seg) || intent.IsGreeting(seg) {
			continue
		}
		place, ok := cleanPlace(seg)
		if !ok {
			continue
		}
		if name != nil && textutil.Fold(place) == textutil.Fold(*name) {
			continue
		}
		return place, true
	}
	return "", false
}

func cleanPlace(raw string) (string, bool) {
	tokens := trimFillers(tokenize(raw))
	if len(tokens) == 0 || len(tokens) > maxPlaceTokens {
		return "", false
	}
	letters := 0
	for _, tok := range tokens {
		if !textutil.IsNameWord(tok) {
			return "", false
		}
		letters += textutil.CountLetters(tok)
	}
	if letters < 3 {
		return "", false
	}
	return textutil.TitleName(strings.Join(tokens, " ")), true
}

func isWordBreak(r rune) bool {
	return isClauseBreak(r) || r == ' ' || r == '\t' || r == '-' || r == '(' || r == ')' || r == '"'
}
