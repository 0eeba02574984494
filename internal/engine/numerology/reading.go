package numerology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
)

// Reading is a complete numerology profile.
type Reading struct {
	Name    string
	Date    profile.Date
	Year    int
	Numbers Numbers
	Text    string
}

// Compute validates the inputs and builds the reading. year is the calendar
// year used for the personal year number.
func Compute(name string, date profile.Date, year int) (*Reading, error) {
	name = strings.Join(strings.Fields(name), " ")
	nums, err := Calculate(name, date, year)
	if err != nil {
		return nil, err
	}

	r := &Reading{Name: name, Date: date, Year: year, Numbers: nums}
	r.Text = render(r)
	return r, nil
}

// Report converts the reading into a cacheable report.
func (r *Reading) Report() *report.Report {
	n := r.Numbers
	return &report.Report{
		Kind: catalog.KindNumerology,
		Text: r.Text,
		Facts: []report.Fact{
			{Key: "name", Value: r.Name},
			{Key: "birth_date", Value: r.Date.String()},
			{Key: "life_path", Value: strconv.Itoa(n.LifePath)},
			{Key: "expression", Value: strconv.Itoa(n.Expression)},
			{Key: "soul", Value: strconv.Itoa(n.Soul)},
			{Key: "personality", Value: strconv.Itoa(n.Personality)},
			{Key: "personal_year", Value: strconv.Itoa(n.PersonalYear)},
			{Key: "life_lesson", Value: strconv.Itoa(n.LifeLesson)},
		},
	}
}

func render(r *Reading) string {
	n := r.Numbers
	life := meanings[n.LifePath]
	expr := meanings[n.Expression]
	soul := meanings[n.Soul]
	pers := meanings[n.Personality]
	year := meanings[n.PersonalYear]
	lesson := meanings[n.LifeLesson]

	var b strings.Builder
	fmt.Fprintf(&b, "🔮 **ANÁLISE NUMEROLÓGICA DE %s**\n\n", strings.ToUpper(r.Name))
	fmt.Fprintf(&b, "📅 **Data de Nascimento:** %s\n\n---\n\n", r.Date)
	b.WriteString("## 📊 SEUS NÚMEROS PRINCIPAIS:\n\n")

	fmt.Fprintf(&b, "**1. NÚMERO DA VIDA %d** - %s\n", n.LifePath, life.Title)
	fmt.Fprintf(&b, "- **Missão:** %s\n", life.Mission)
	fmt.Fprintf(&b, "- **Pontos Fortes:** %s\n", life.Strengths)
	fmt.Fprintf(&b, "- **Desafios:** %s\n", life.Challenges)
	fmt.Fprintf(&b, "- **Carreira Ideal:** %s\n\n", life.Career)

	fmt.Fprintf(&b, "**2. NÚMERO DE EXPRESSÃO %d** - %s\n", n.Expression, expr.Title)
	fmt.Fprintf(&b, "- **Talentos Natos:** %s\n", expr.Strengths)
	fmt.Fprintf(&b, "- **Desafios:** %s\n", expr.Challenges)
	fmt.Fprintf(&b, "- **Carreira:** %s\n\n", expr.Career)

	fmt.Fprintf(&b, "**3. NÚMERO DA ALMA %d** - %s\n", n.Soul, soul.Title)
	fmt.Fprintf(&b, "- **Desejos Profundos:** %s\n", soul.Strengths)
	fmt.Fprintf(&b, "- **Anseios Internos:** %s\n\n", soul.Mission)

	fmt.Fprintf(&b, "**4. NÚMERO DE PERSONALIDADE %d** - %s\n", n.Personality, pers.Title)
	fmt.Fprintf(&b, "- **Como os Outros te Veem:** %s\n\n", pers.Strengths)

	fmt.Fprintf(&b, "**5. ANO PESSOAL %d (%d)** - %s\n", n.PersonalYear, r.Year, year.Title)
	fmt.Fprintf(&b, "- **Energia do Ano:** %s\n", year.Mission)
	fmt.Fprintf(&b, "- **Oportunidades:** %s\n\n", year.Strengths)

	fmt.Fprintf(&b, "**6. LIÇÃO DE VIDA %d** - %s\n", n.LifeLesson, lesson.Title)
	fmt.Fprintf(&b, "- **O que aprender:** %s\n\n---\n\n", lesson.Mission)

	b.WriteString("💫 **CONSELHO NUMEROLÓGICO:**\n")
	fmt.Fprintf(&b, "Foque em desenvolver seus talentos de %s enquanto trabalha para superar %s. ",
		strings.ToLower(firstItem(expr.Strengths)), strings.ToLower(firstItem(life.Challenges)))
	fmt.Fprintf(&b, "Este ano é propício para %s. %s\n\n", strings.ToLower(firstItem(year.Strengths)), life.Advice)
	b.WriteString("Que os números guiem seu caminho! ✨")
	return b.String()
}

func firstItem(list string) string {
	item, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(item)
}
