package astrology

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
)

// ErrInvalidDate is returned when the birth date does not exist.
var ErrInvalidDate = errors.New("astrology: invalid birth date")

const (
	anonymousTitle = "CONSULTA ASTRAL"
	reportedHouses = 6
)

// Chart is a simplified natal chart.
type Chart struct {
	Name      string
	Date      profile.Date
	Time      *profile.Clock
	Place     *string
	Sun       Sign
	Moon      Sign
	Ascendant *Sign
	Houses    []House
	Aspects   []Aspect
	Text      string
}

// Compute builds the chart. Time and place are optional; without both the
// ascendant and houses are omitted.
func Compute(name string, date profile.Date, clock *profile.Clock, place *string) (*Chart, error) {
	if !date.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}

	c := &Chart{
		Name:  strings.Join(strings.Fields(name), " "),
		Date:  date,
		Time:  clock,
		Place: place,
		Sun:   SunSign(date),
		Moon:  MoonSign(date),
	}
	if asc, ok := Ascendant(c.Sun, clock, place); ok {
		c.Ascendant = &asc
		c.Houses = Houses(asc)
	}
	c.Aspects = Aspects(c.Sun, c.Moon)
	c.Text = render(c)
	return c, nil
}

// Report converts the chart into a cacheable report.
func (c *Chart) Report() *report.Report {
	facts := []report.Fact{
		{Key: "birth_date", Value: c.Date.String()},
		{Key: "sun_sign", Value: c.Sun.Name},
		{Key: "moon_sign", Value: c.Moon.Name},
	}
	if c.Name != "" {
		facts = append([]report.Fact{{Key: "name", Value: c.Name}}, facts...)
	}
	if c.Ascendant != nil {
		facts = append(facts, report.Fact{Key: "ascendant", Value: c.Ascendant.Name})
	}
	return &report.Report{Kind: catalog.KindAstrology, Text: c.Text, Facts: facts}
}

func render(c *Chart) string {
	title := anonymousTitle
	if len([]rune(c.Name)) > 2 {
		title = strings.ToUpper(c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌌 **MAPA ASTRAL DE %s**\n\n", title)
	fmt.Fprintf(&b, "📅 **Data de Nascimento:** %s\n", c.Date)
	if c.Time != nil {
		fmt.Fprintf(&b, "⏰ **Hora de Nascimento:** %s\n", c.Time)
	}
	if c.Place != nil {
		fmt.Fprintf(&b, "📍 **Local de Nascimento:** %s\n", *c.Place)
	}
	b.WriteString("\n---\n\n## ✨ SEUS PRINCIPAIS SIGNOS:\n\n")

	writeSign(&b, "☀️ SOL", c.Sun)
	writeSign(&b, "🌙 LUA", c.Moon)
	b.WriteString("*A posição da Lua é uma aproximação pelo ciclo lunar médio.*\n\n")
	if c.Ascendant != nil {
		writeSign(&b, "↑ ASCENDENTE", *c.Ascendant)
	} else {
		b.WriteString("*Informe a hora e a cidade de nascimento para calcular o Ascendente*\n\n")
	}

	b.WriteString("---\n\n## 🪐 ASPECTOS PLANETÁRIOS:\n\n")
	if len(c.Aspects) == 0 {
		b.WriteString("• ✨ **Alinhamento Neutro**: Seus aspectos principais estão em equilíbrio\n")
	}
	for _, a := range c.Aspects {
		fmt.Fprintf(&b, "• %s **%s**: %s\n", a.Emoji, a.Kind, a.Meaning)
	}

	b.WriteString("\n---\n\n## 🏠 CASAS ASTROLÓGICAS:\n\n")
	if len(c.Houses) == 0 {
		b.WriteString("*Hora e cidade necessárias para o cálculo das casas*\n")
	}
	for i, h := range c.Houses {
		if i == reportedHouses {
			break
		}
		fmt.Fprintf(&b, "**Casa %d** (%s): %s\n", h.Number, h.Sign.Name, h.Meaning)
	}

	b.WriteString("\n---\n\n## 💫 CONSELHOS ASTROLÓGICOS:\n\n")
	fmt.Fprintf(&b, "**Sol em %s:**\n- Explore sua natureza %s através de %s\n\n",
		c.Sun.Name, strings.ToLower(string(c.Sun.Element)), elementAdvice[c.Sun.Element][0])
	fmt.Fprintf(&b, "**Lua em %s:**\n- Cuide de suas emoções através de %s\n\n",
		c.Moon.Name, elementAdvice[c.Moon.Element][1])
	if c.Ascendant != nil {
		fmt.Fprintf(&b, "**Ascendente em %s:**\n- Use sua energia %s para %s\n\n",
			c.Ascendant.Name, strings.ToLower(string(c.Ascendant.Element)), elementAdvice[c.Ascendant.Element][2])
	}
	b.WriteString("---\n\nQue as estrelas iluminem seu caminho! 🌟")
	return b.String()
}

func writeSign(b *strings.Builder, label string, s Sign) {
	fmt.Fprintf(b, "**%s em %s**\n", label, s.Name)
	fmt.Fprintf(b, "- **Elemento:** %s | **Regente:** %s\n", s.Element, s.Ruler)
	fmt.Fprintf(b, "%s\n\n", s.Trait)
}
