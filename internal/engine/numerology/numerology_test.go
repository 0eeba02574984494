package numerology

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

func TestReduceKeepsMasterNumbers(t *testing.T) {
	cases := map[int]int{
		7:    7,
		10:   1,
		11:   11,
		22:   22,
		29:   11,
		38:   11,
		33:   33,
		1993: 22,
		2008: 1,
		2009: 11,
		48:   3,
	}
	for in, want := range cases {
		require.Equalf(t, want, Reduce(in), "Reduce(%d)", in)
	}
}

func TestComputeScenario(t *testing.T) {
	date := profile.Date{Day: 15, Month: 3, Year: 1990}
	reading, err := Compute("João Silva", date, 2026)
	require.NoError(t, err)

	require.Equal(t, Reduce(15+3+1990), reading.Numbers.LifePath)
	require.Equal(t, 1, reading.Numbers.LifePath)
	// j1 o6 a1 o6 s1 i9 l3 v4 a1 = 32
	require.Equal(t, 5, reading.Numbers.Expression)
	// o6 a1 o6 i9 a1 = 23
	require.Equal(t, 5, reading.Numbers.Soul)
	// j1 s1 l3 v4 = 9
	require.Equal(t, 9, reading.Numbers.Personality)
	require.Equal(t, Reduce(15+3+2026), reading.Numbers.PersonalYear)
	require.Equal(t, 4, reading.Numbers.LifeLesson)

	require.Contains(t, reading.Text, "ANÁLISE NUMEROLÓGICA DE JOÃO SILVA")
	require.Contains(t, reading.Text, "NÚMERO DA VIDA 1")

	rep := reading.Report()
	lp, ok := rep.Fact("life_path")
	require.True(t, ok)
	require.Equal(t, "1", lp)
}

func TestComputeMasterLifePath(t *testing.T) {
	reading, err := Compute("Ana Souza", profile.Date{Day: 1, Month: 1, Year: 2007}, 2026)
	require.NoError(t, err)
	require.Equal(t, 11, reading.Numbers.LifePath)
	require.Contains(t, reading.Text, "MESTRE INSPIRADOR")
}

func TestDefaultsWithoutVowelsOrConsonants(t *testing.T) {
	require.Equal(t, 7, Soul("Brr Grr"))
	require.Equal(t, 4, Personality("Ai Oi"))
}

func TestLifeLessonZeroMeansCompletion(t *testing.T) {
	require.Equal(t, 9, LifeLesson(5, 5))
	require.Equal(t, 4, LifeLesson(1, 5))
	require.Equal(t, 5, LifeLesson(33, 1))
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	valid := profile.Date{Day: 15, Month: 3, Year: 1990}

	for _, name := range []string{"", "Maria", "M Santos", "Maria S4ntos", "Ana E Souza", "Maria- Silva"} {
		_, err := Compute(name, valid, 2026)
		var vErr *ValidationError
		require.Truef(t, errors.As(err, &vErr), "name %q", name)
		require.Equal(t, profile.FieldName, vErr.Field)
		require.ErrorIs(t, err, ErrInvalidName)
	}

	_, err := Compute("Maria Santos", profile.Date{Day: 31, Month: 4, Year: 1990}, 2026)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestComputeAcceptsJoinedNames(t *testing.T) {
	date := profile.Date{Day: 15, Month: 3, Year: 1990}

	joined, err := Compute("Ana-Clara Souza", date, 2026)
	require.NoError(t, err)
	plain, err := Compute("AnaClara Souza", date, 2026)
	require.NoError(t, err)
	require.Equal(t, plain.Numbers, joined.Numbers, "joiners carry no letter value")

	_, err = Compute("Maria D'Ávila", date, 2026)
	require.NoError(t, err)
}

func TestMeaningsAreExhaustive(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22, 33} {
		m, ok := MeaningOf(n)
		require.Truef(t, ok, "missing meaning for %d", n)
		require.NotEmpty(t, m.Title)
		require.NotEmpty(t, m.Advice)
	}
}

func genDate() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 28),
		gen.IntRange(1, 12),
		gen.IntRange(1900, 2100),
	).Map(func(vals []interface{}) profile.Date {
		return profile.Date{Day: vals[0].(int), Month: vals[1].(int), Year: vals[2].(int)}
	})
}

func TestReadingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	valid := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 11: true, 22: true, 33: true}

	properties.Property("life path is a single digit or a master number", prop.ForAll(
		func(d profile.Date) bool {
			return valid[LifePath(d)]
		},
		genDate(),
	))

	properties.Property("compute is idempotent", prop.ForAll(
		func(d profile.Date, first, last string) bool {
			name := "Ab" + strings.ToLower(first) + " Cd" + strings.ToLower(last)
			a, errA := Compute(name, d, 2026)
			b, errB := Compute(name, d, 2026)
			if errA != nil || errB != nil {
				return false
			}
			return a.Text == b.Text && a.Numbers == b.Numbers
		},
		genDate(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("every number has an interpretation", prop.ForAll(
		func(d profile.Date) bool {
			nums, err := Calculate("Maria Santos", d, 2026)
			if err != nil {
				return false
			}
			for _, n := range []int{nums.LifePath, nums.Expression, nums.Soul, nums.Personality, nums.PersonalYear, nums.LifeLesson} {
				if _, ok := MeaningOf(n); !ok {
					return false
				}
			}
			return true
		},
		genDate(),
	))

	properties.TestingRun(t)
}
