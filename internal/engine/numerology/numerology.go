// Package numerology computes Pythagorean numerology readings.
package numerology

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/pkg/textutil"
)

var (
	ErrInvalidName = errors.New("full name must have at least two words of letters, each with two or more characters")
	ErrInvalidDate = errors.New("birth date must be a valid DD/MM/YYYY date")
)

// ValidationError reports which input was rejected.
type ValidationError struct {
	Field profile.Field
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("numerology: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// pythagorean maps letters to their digit.
var pythagorean = map[rune]int{
	'a': 1, 'j': 1, 's': 1,
	'b': 2, 'k': 2, 't': 2,
	'c': 3, 'l': 3, 'u': 3,
	'd': 4, 'm': 4, 'v': 4,
	'e': 5, 'n': 5, 'w': 5,
	'f': 6, 'o': 6, 'x': 6,
	'g': 7, 'p': 7, 'y': 7,
	'h': 8, 'q': 8, 'z': 8,
	'i': 9, 'r': 9,
}

const (
	defaultSoul        = 7
	defaultPersonality = 4
	completion         = 9
)

// Numbers are the figures of a reading.
type Numbers struct {
	LifePath     int `json:"lifePath"`
	Expression   int `json:"expression"`
	Soul         int `json:"soul"`
	Personality  int `json:"personality"`
	PersonalYear int `json:"personalYear"`
	LifeLesson   int `json:"lifeLesson"`
}

// IsMaster reports whether n is 11, 22 or 33.
func IsMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce digit-sums n until it is at most 9. A master number reached at any
// step is returned as-is.
func Reduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LetterValue returns the Pythagorean value of r, or 0 for non-letters.
func LetterValue(r rune) int {
	folded := textutil.Fold(string(r))
	for _, c := range folded {
		return pythagorean[c]
	}
	return 0
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// letterSums folds the name and sums all, vowel and consonant values.
func letterSums(name string) (all, vowels, consonants int, hasVowel, hasConsonant bool) {
	for _, r := range textutil.Fold(name) {
		v, ok := pythagorean[r]
		if !ok {
			continue
		}
		all += v
		if isVowel(r) {
			vowels += v
			hasVowel = true
		} else {
			consonants += v
			hasConsonant = true
		}
	}
	return
}

// LifePath reduces day + month + year.
func LifePath(d profile.Date) int {
	return Reduce(d.Day + d.Month + d.Year)
}

// Expression reduces the letter sum of the full name.
func Expression(name string) int {
	all, _, _, _, _ := letterSums(name)
	return Reduce(all)
}

// Soul reduces the vowel sum, 7 when the name has no vowels.
func Soul(name string) int {
	_, vowels, _, hasVowel, _ := letterSums(name)
	if !hasVowel {
		return defaultSoul
	}
	return Reduce(vowels)
}

// Personality reduces the consonant sum, 4 when the name has no consonants.
func Personality(name string) int {
	_, _, consonants, _, hasConsonant := letterSums(name)
	if !hasConsonant {
		return defaultPersonality
	}
	return Reduce(consonants)
}

// PersonalYear reduces birth day + birth month + the given calendar year.
func PersonalYear(d profile.Date, year int) int {
	return Reduce(d.Day + d.Month + year)
}

// LifeLesson reduces |expression - lifePath|; a zero difference means completion (9).
func LifeLesson(expression, lifePath int) int {
	diff := expression - lifePath
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		return completion
	}
	return Reduce(diff)
}

// ValidateName checks a full name: two or more words of letters, each with
// at least two letters. Inner hyphens and apostrophes join letters
// ("Ana-Clara", "D'Ávila") and carry no value.
func ValidateName(name string) error {
	words := strings.Fields(name)
	if len(words) < 2 {
		return &ValidationError{Field: profile.FieldName, Value: name, Err: ErrInvalidName}
	}
	for _, w := range words {
		if !textutil.IsNameWord(w) {
			return &ValidationError{Field: profile.FieldName, Value: name, Err: ErrInvalidName}
		}
	}
	return nil
}

// Calculate validates the inputs and derives every number of the reading.
func Calculate(name string, date profile.Date, year int) (Numbers, error) {
	if err := ValidateName(name); err != nil {
		return Numbers{}, err
	}
	if !date.Valid() {
		return Numbers{}, &ValidationError{Field: profile.FieldDate, Value: date.String(), Err: ErrInvalidDate}
	}

	nums := Numbers{
		LifePath:     LifePath(date),
		Expression:   Expression(name),
		Soul:         Soul(name),
		Personality:  Personality(name),
		PersonalYear: PersonalYear(date, year),
	}
	nums.LifeLesson = LifeLesson(nums.Expression, nums.LifePath)
	return nums, nil
}
