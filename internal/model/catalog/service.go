package catalog

import "fmt"

// Kind classifies a service by the engine that fulfils it.
type Kind string

const (
	KindNumerology Kind = "numerology"
	KindAstrology  Kind = "astrology"
	KindTarot      Kind = "tarot"
)

// Deterministic reports whether the kind is served by a calculation engine
// rather than the language model.
func (k Kind) Deterministic() bool {
	return k == KindNumerology || k == KindAstrology
}

// Service is an immutable catalog entry offered in the welcome menu.
type Service struct {
	ID          string   `json:"id"`
	Choice      string   `json:"choice"`
	Name        string   `json:"name"`
	PriceCents  int      `json:"priceCents"`
	Kind        Kind     `json:"kind"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"-"`
}

// Price formats the price in Brazilian reais, e.g. "R$ 37,00".
func (s Service) Price() string {
	return fmt.Sprintf("R$ %d,%02d", s.PriceCents/100, s.PriceCents%100)
}

// Seed provides the services sold by the oracle.
func Seed() []Service {
	return []Service{
		{
			ID:          "tarot",
			Choice:      "1",
			Name:        "Leitura de Tarot",
			PriceCents:  2990,
			Kind:        KindTarot,
			Description: "Tiragem de cartas para a sua pergunta do momento.",
			Keywords:    []string{"tarot", "tarô", "taro", "cartas", "baralho", "tiragem"},
		},
		{
			ID:          "numerologia",
			Choice:      "2",
			Name:        "Mapa Numerológico",
			PriceCents:  3700,
			Kind:        KindNumerology,
			Description: "Números da vida, expressão, alma, personalidade e ano pessoal.",
			Keywords:    []string{"numerologia", "numerológico", "numerologico", "numerológica", "numerologica", "meus números", "meus numeros"},
		},
		{
			ID:          "mapa-astral",
			Choice:      "3",
			Name:        "Mapa Astral",
			PriceCents:  4700,
			Kind:        KindAstrology,
			Description: "Sol, Lua, ascendente, casas e aspectos do seu nascimento.",
			Keywords:    []string{"mapa astral", "astrologia", "astrológico", "astrologico", "signo", "ascendente", "horóscopo", "horoscopo"},
		},
		{
			ID:          "orientacao",
			Choice:      "4",
			Name:        "Orientação Espiritual",
			PriceCents:  2490,
			Kind:        KindTarot,
			Description: "Conversa guiada sobre o seu caminho espiritual.",
			Keywords:    []string{"orientação", "orientacao", "espiritual", "conselho", "aconselhamento"},
		},
	}
}

// MenuLine renders the service as a numbered menu entry, e.g.
// "2️⃣ Mapa Numerológico - R$ 37,00".
func (s Service) MenuLine() string {
	return fmt.Sprintf("%s\uFE0F\u20E3 %s - %s", s.Choice, s.Name, s.Price())
}
