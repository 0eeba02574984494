package extract

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/sarahkali/oracle/backend/internal/engine/numerology"
	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/chat"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

func users(texts ...string) []chat.Message {
	history := make([]chat.Message, 0, len(texts))
	for _, t := range texts {
		history = append(history, chat.UserMessage(t))
	}
	return history
}

func TestExtractNameAndDate(t *testing.T) {
	p := Extract(users("João Silva, 15/03/1990"), catalog.KindNumerology)

	require.NotNil(t, p.Name)
	require.Equal(t, "João Silva", *p.Name)
	require.NotNil(t, p.Date)
	require.Equal(t, "15/03/1990", p.Date.String())
	require.Nil(t, p.Place)
	require.Nil(t, p.Time)
}

func TestExtractNameAfterIntroduction(t *testing.T) {
	p := Extract(users("ok, quero numerologia. Meu nome é maria de souza e nasci em 01/02/1985"), catalog.KindNumerology)

	require.NotNil(t, p.Name)
	require.Equal(t, "Maria de Souza", *p.Name)
	require.Equal(t, "01/02/1985", p.Date.String())
}

func TestExtractRejectsImpossibleDates(t *testing.T) {
	for _, text := range []string{"João Silva, 31/04/1990", "João Silva, 30/02/2001", "João Silva, 12/13/1990"} {
		p := Extract(users(text), catalog.KindNumerology)
		require.Nilf(t, p.Date, "text %q", text)
		require.Nilf(t, p.Name, "name is only read next to a valid date: %q", text)
	}
}

func TestExtractAcceptsLeapDay(t *testing.T) {
	p := Extract(users("Ana Lima 29.02.2000"), catalog.KindNumerology)
	require.NotNil(t, p.Date)
	require.Equal(t, 29, p.Date.Day)
}

func TestExtractPrefersNewestMessage(t *testing.T) {
	history := []chat.Message{
		chat.UserMessage("Maria Souza, 01/02/1985"),
		chat.AssistantMessage("Obrigada! Vou preparar."),
		chat.UserMessage("corrigindo: Ana Lima, 03/04/1991"),
	}
	p := Extract(history, catalog.KindNumerology)
	require.Equal(t, "Ana Lima", *p.Name)
	require.Equal(t, "03/04/1991", p.Date.String())
}

func TestExtractIgnoresAssistantMessages(t *testing.T) {
	history := []chat.Message{
		chat.AssistantMessage("Exemplo: João Silva, 15/03/1990"),
		chat.UserMessage("ok"),
	}
	p := Extract(history, catalog.KindNumerology)
	require.Nil(t, p.Name)
	require.Nil(t, p.Date)
}

func TestExtractWindow(t *testing.T) {
	history := users("João Silva, 15/03/1990", "a", "b", "c", "d", "e", "f")

	require.Nil(t, Extract(history, catalog.KindNumerology).Date, "outside the numerology window")
	require.NotNil(t, Extract(history, catalog.KindAstrology).Date, "inside the astrology window")
}

func TestExtractAstrologyMessage(t *testing.T) {
	history := []chat.Message{
		chat.UserMessage("Quero mapa astral"),
		chat.AssistantMessage("Me envie seus dados"),
		chat.UserMessage("Maria Santos, 15/08/1990, 14:30, São Paulo"),
	}
	p := Extract(history, catalog.KindAstrology)

	require.Equal(t, "Maria Santos", *p.Name)
	require.Equal(t, "15/08/1990", p.Date.String())
	require.Equal(t, "14:30", p.Time.String())
	require.Equal(t, "São Paulo", *p.Place)
}

func TestFindClock(t *testing.T) {
	cases := map[string]string{
		"nasci às 14:30":      "14:30",
		"14h30":               "14:30",
		"14h30min":            "14:30",
		"às 6 da tarde":       "18:00",
		"9h da manhã":         "09:00",
		"11 da noite":         "23:00",
		"12 da noite":         "00:00",
		"3 da madrugada":      "03:00",
		"perto do meio-dia":   "12:00",
		"meia noite em ponto": "00:00",
		"às 21 horas":         "21:00",
		"lá pelas 7h":         "07:00",
	}
	for text, want := range cases {
		c, ok := findClock(text)
		require.Truef(t, ok, "text %q", text)
		require.Equalf(t, want, c.String(), "text %q", text)
	}

	for _, text := range []string{"25:00", "15/03/1990", "boa tarde", "não sei a hora"} {
		_, ok := findClock(text)
		require.Falsef(t, ok, "text %q", text)
	}
}

func TestFindPlace(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"nasci em sao paulo", "São Paulo"},
		{"Sou de Porto Alegre - RS", "Porto Alegre"},
		{"nasci em itu", "Itu"},
		{"cidade: Três Lagoas", "Três Lagoas"},
		{"15/08/1990 às 14h30 em Caruaru", "Caruaru"},
		{"Maria Santos, 15/08/1990, 14:30, Itapetininga", "Itapetininga"},
	}
	for _, tc := range cases {
		f := parseMessage(tc.text)
		require.NotNilf(t, f.place, "text %q", tc.text)
		require.Equalf(t, tc.want, *f.place, "text %q", tc.text)
	}

	f := parseMessage("João Silva, 15/03/1990, obrigado")
	require.Nil(t, f.place)
}

func TestCityIsNotTakenAsName(t *testing.T) {
	f := parseMessage("São Paulo, 15/03/1990")
	require.Nil(t, f.name)
	require.Equal(t, "São Paulo", *f.place)
}

func TestExtractWithHint(t *testing.T) {
	history := []chat.Message{
		chat.UserMessage("Quero numerologia"),
		chat.AssistantMessage("Qual é o seu nome completo?"),
		chat.UserMessage("maria de souza"),
	}

	p := ExtractWithHint(history, catalog.KindNumerology, profile.FieldName)
	require.NotNil(t, p.Name)
	require.Equal(t, "Maria de Souza", *p.Name)

	require.Nil(t, Extract(history, catalog.KindNumerology).Name, "bare names need the hint")

	history[2] = chat.UserMessage("quanto tempo demora?")
	require.Nil(t, ExtractWithHint(history, catalog.KindNumerology, profile.FieldName).Name)
}

func TestExtractWithPlaceHint(t *testing.T) {
	history := []chat.Message{
		chat.UserMessage("15/08/1990 14:30"),
		chat.AssistantMessage("Em qual cidade você nasceu?"),
		chat.UserMessage("itu"),
	}
	p := ExtractWithHint(history, catalog.KindAstrology, profile.FieldPlace)
	require.Equal(t, "Itu", *p.Place)
	require.Equal(t, "15/08/1990", p.Date.String())
	require.Equal(t, "14:30", p.Time.String())

	history = append(history, chat.AssistantMessage("Anotado"), chat.UserMessage("ok"))
	p = ExtractWithHint(history, catalog.KindAstrology, profile.FieldPlace)
	require.Nil(t, p.Place, "only the newest reply is read with the hint")
}

func TestMissingFields(t *testing.T) {
	var empty profile.Profile
	require.Equal(t, []profile.Field{profile.FieldName, profile.FieldDate}, MissingFields(empty, catalog.KindNumerology))
	require.Equal(t, []profile.Field{profile.FieldDate, profile.FieldPlace}, MissingFields(empty, catalog.KindAstrology))
	require.Equal(t, []profile.Field{profile.FieldName, profile.FieldTime}, SoftMissing(empty, catalog.KindAstrology))
	require.Empty(t, MissingFields(empty, catalog.KindTarot))
	require.Empty(t, SoftMissing(empty, catalog.KindNumerology))

	d := profile.Date{Day: 15, Month: 8, Year: 1990}
	place := "Itu"
	withDate := profile.Profile{Date: &d}
	require.Equal(t, []profile.Field{profile.FieldName}, MissingFields(withDate, catalog.KindNumerology))
	require.Equal(t, []profile.Field{profile.FieldPlace}, MissingFields(withDate, catalog.KindAstrology))
	require.Empty(t, MissingFields(profile.Profile{Date: &d, Place: &place}, catalog.KindAstrology))
}

func TestExtractFindsAnyValidDate(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("formatted valid dates are always extracted", prop.ForAll(
		func(day, month, year int) bool {
			text := fmt.Sprintf("Ana Clara Lima, %02d/%02d/%04d", day, month, year)
			p := Extract(users(text), catalog.KindNumerology)
			return p.Date != nil &&
				p.Date.Day == day && p.Date.Month == month && p.Date.Year == year &&
				p.Name != nil && *p.Name == "Ana Clara Lima"
		},
		gen.IntRange(1, 28),
		gen.IntRange(1, 12),
		gen.IntRange(1900, 2099),
	))

	properties.TestingRun(t)
}

func TestCompleteNumerologyProfileAlwaysComputes(t *testing.T) {
	texts := []string{
		"Ana-Clara Souza, 15/03/1990",
		"Maria D'Ávila, 15/03/1990",
		"Maria D’Ávila, 15/03/1990",
		"João P Silva, 15/03/1990",
		"Ana E Souza, 15/03/1990",
		"Jo Li, 15/03/1990",
		"Ana Maria de Souza Lima, 15/03/1990",
		"meu nome é joão-pedro d'ornellas e nasci em 15/03/1990",
	}
	for _, text := range texts {
		p := Extract(users(text), catalog.KindNumerology)
		if len(MissingFields(p, catalog.KindNumerology)) > 0 {
			continue
		}
		_, err := numerology.Compute(*p.Name, *p.Date, 2026)
		require.NoErrorf(t, err, "text %q extracted name %q", text, *p.Name)
	}

	p := Extract(users("Ana-Clara Souza, 15/03/1990"), catalog.KindNumerology)
	require.NotNil(t, p.Name)
	require.Equal(t, "Ana-Clara Souza", *p.Name)

	p = Extract(users("Maria d'ávila, 15/03/1990"), catalog.KindNumerology)
	require.NotNil(t, p.Name)
	require.Equal(t, "Maria D'Ávila", *p.Name)
}

func TestSingleLetterWordsAreNotNames(t *testing.T) {
	for _, text := range []string{"João P Silva, 15/03/1990", "Ana E Souza, 15/03/1990"} {
		p := Extract(users(text), catalog.KindNumerology)
		require.Nilf(t, p.Name, "text %q", text)
		require.Equal(t, []profile.Field{profile.FieldName}, MissingFields(p, catalog.KindNumerology))
	}
}

func TestExtractedNamesSatisfyEngine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	word := gen.OneConstOf("Ana", "Clara", "P", "E", "Souza", "D'Ávila", "Ana-Clara", "Lu", "de", "O'Neil", "X-", "Jo")
	properties.Property("extracted numerology names pass engine validation", prop.ForAll(
		func(a, b, c string) bool {
			text := fmt.Sprintf("%s %s %s, 15/03/1990", a, b, c)
			p := Extract(users(text), catalog.KindNumerology)
			if len(MissingFields(p, catalog.KindNumerology)) > 0 {
				return true
			}
			_, err := numerology.Compute(*p.Name, *p.Date, 2026)
			return err == nil
		},
		word, word, word,
	))

	properties.TestingRun(t)
}
