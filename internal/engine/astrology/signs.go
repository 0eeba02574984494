package astrology

// Element is the classical element of a sign.
type Element string

const (
	Fire  Element = "Fogo"
	Earth Element = "Terra"
	Air   Element = "Ar"
	Water Element = "Água"
)

// MonthDay is a day within a month, ignoring the year.
type MonthDay struct {
	Day   int
	Month int
}

// Sign is one of the twelve zodiac signs.
type Sign struct {
	Index   int
	Name    string
	Start   MonthDay
	End     MonthDay
	Element Element
	Ruler   string
	Trait   string
}

// Signs lists the zodiac from Aries; a sign's Index is its position here.
var Signs = [12]Sign{
	{0, "Áries", MonthDay{21, 3}, MonthDay{19, 4}, Fire, "Marte",
		"Você é pioneiro, corajoso e cheio de energia. Sua espontaneidade e iniciativa são marcas registradas. Cuidado com a impaciência."},
	{1, "Touro", MonthDay{20, 4}, MonthDay{20, 5}, Earth, "Vênus",
		"Você é estável, prático e sensorial. Valoriza segurança e conforto. Sua perseverança é admirável, mas pode levar à teimosia."},
	{2, "Gêmeos", MonthDay{21, 5}, MonthDay{20, 6}, Air, "Mercúrio",
		"Você é comunicativo, curioso e versátil. Sua mente está sempre ativa. Cuidado com a dispersão e superficialidade."},
	{3, "Câncer", MonthDay{21, 6}, MonthDay{22, 7}, Water, "Lua",
		"Você é sensível, protetor e intuitivo. Família e emoções são importantes. Cuidado com o apego emocional excessivo."},
	{4, "Leão", MonthDay{23, 7}, MonthDay{22, 8}, Fire, "Sol",
		"Você é criativo, generoso e magnético. Sua confiança inspira outros. Cuidado com o orgulho e a necessidade de reconhecimento."},
	{5, "Virgem", MonthDay{23, 8}, MonthDay{22, 9}, Earth, "Mercúrio",
		"Você é analítico, prático e prestativo. Perfeccionismo e organização são suas marcas. Cuidado com a crítica excessiva."},
	{6, "Libra", MonthDay{23, 9}, MonthDay{22, 10}, Air, "Vênus",
		"Você é harmonioso, diplomata e artístico. Busca equilíbrio e justiça. Cuidado com a indecisão e a dependência."},
	{7, "Escorpião", MonthDay{23, 10}, MonthDay{21, 11}, Water, "Plutão",
		"Você é intenso, transformador e perspicaz. Sua profundidade emocional é poderosa. Cuidado com o ciúme e a manipulação."},
	{8, "Sagitário", MonthDay{22, 11}, MonthDay{21, 12}, Fire, "Júpiter",
		"Você é aventureiro, otimista e filosófico. Busca liberdade e expansão. Cuidado com o exagero e a imprudência."},
	{9, "Capricórnio", MonthDay{22, 12}, MonthDay{19, 1}, Earth, "Saturno",
		"Você é ambicioso, disciplinado e responsável. Sua perseverança leva ao sucesso. Cuidado com o trabalho excessivo."},
	{10, "Aquário", MonthDay{20, 1}, MonthDay{18, 2}, Air, "Urano",
		"Você é inovador, humanitário e original. Sua mente visionária antecipa o futuro. Cuidado com o distanciamento emocional."},
	{11, "Peixes", MonthDay{19, 2}, MonthDay{20, 3}, Water, "Netuno",
		"Você é compassivo, intuitivo e artístico. Sua sensibilidade conecta-se com o divino. Cuidado com a fuga da realidade."},
}

const capricorn = 9

// Contains reports whether the month/day falls in the sign's range. Ranges
// that cross the new year are handled by the start/end month checks.
func (s Sign) Contains(day, month int) bool {
	switch {
	case month == s.Start.Month && day >= s.Start.Day:
		return true
	case month == s.End.Month && day <= s.End.Day:
		return true
	case s.Start.Month < s.End.Month && month > s.Start.Month && month < s.End.Month:
		return true
	}
	return false
}

// houseMeanings is indexed by house number minus one.
var houseMeanings = [12]string{
	"Personalidade, aparência, ego",
	"Valores, recursos, autoestima",
	"Comunicação, irmãos, estudos",
	"Família, raízes, lar",
	"Criatividade, amor, filhos",
	"Trabalho, saúde, rotina",
	"Parcerias, relacionamentos",
	"Transformação, sexualidade, herança",
	"Filosofia, viagens, expansão",
	"Carreira, ambição, reputação",
	"Amigos, grupos, esperanças",
	"Subconsciente, espiritualidade, isolamento",
}

// elementAdvice holds the canned advice per element for the sun, moon and ascendant.
var elementAdvice = map[Element][3]string{
	Fire:  {"ações corajosas", "exercícios físicos", "inspirar outros"},
	Earth: {"projetos práticos", "rotinas estáveis", "construir bases sólidas"},
	Air:   {"estudos e comunicação", "diálogo interno", "compartilhar ideias"},
	Water: {"conexões emocionais", "momentos de introspecção", "conectar-se emocionalmente"},
}
