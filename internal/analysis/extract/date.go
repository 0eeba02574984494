package extract

import (
	"regexp"
	"strconv"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

var datePattern = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})\b`)

// findDate returns the first calendar-valid DD/MM/YYYY date in text and the
// byte offset where it starts. Shapes like 31/04/1990 are skipped.
func findDate(text string) (profile.Date, int, bool) {
	for _, m := range datePattern.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		year, _ := strconv.Atoi(text[m[6]:m[7]])
		d, err := profile.NewDate(day, month, year)
		if err != nil {
			continue
		}
		return d, m[0], true
	}
	return profile.Date{}, 0, false
}
