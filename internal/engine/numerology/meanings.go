package numerology

// Meaning is the interpretation attached to a number.
type Meaning struct {
	Title      string
	Strengths  string
	Challenges string
	Mission    string
	Career     string
	Advice     string
}

// meanings covers 1..9 and the master numbers.
var meanings = map[int]Meaning{
	1: {
		Title:      "LÍDER E PIONEIRO",
		Strengths:  "Independência, criatividade, ambição, originalidade",
		Challenges: "Autoritarismo, egoísmo, impaciência",
		Mission:    "Aprender a liderar sem dominar, iniciar projetos originais",
		Career:     "Empreendedorismo, gestão, cargos de comando",
		Advice:     "Confie na sua iniciativa, mas escute quem caminha com você.",
	},
	2: {
		Title:      "DIPLOMATA E COOPERADOR",
		Strengths:  "Cooperação, sensibilidade, diplomacia, paciência",
		Challenges: "Timidez, indecisão, dependência emocional",
		Mission:    "Desenvolver parcerias, mediar conflitos, trabalhar em equipe",
		Career:     "Mediação, recursos humanos, terapia, ensino",
		Advice:     "Sua sensibilidade é força: use-a para unir, não para se anular.",
	},
	3: {
		Title:      "COMUNICADOR E CRIATIVO",
		Strengths:  "Expressão, otimismo, criatividade, socialização",
		Challenges: "Superficialidade, dispersão, crítica excessiva",
		Mission:    "Expressar talentos criativos, inspirar outros através da comunicação",
		Career:     "Artes, comunicação, ensino, entretenimento",
		Advice:     "Escolha um projeto criativo e leve-o até o fim.",
	},
	4: {
		Title:      "CONSTRUTOR E PRÁTICO",
		Strengths:  "Estabilidade, organização, praticidade, lealdade",
		Challenges: "Rigidez, teimosia, excesso de trabalho",
		Mission:    "Construir bases sólidas, organizar sistemas eficientes",
		Career:     "Engenharia, administração, construção, planejamento",
		Advice:     "Estrutura é importante, mas deixe espaço para o inesperado.",
	},
	5: {
		Title:      "LIVRE E VERSÁTIL",
		Strengths:  "Liberdade, adaptabilidade, versatilidade, curiosidade",
		Challenges: "Inconstância, impulsividade, falta de foco",
		Mission:    "Aprender através de experiências diversas, adaptar-se a mudanças",
		Career:     "Viagens, vendas, marketing, comunicação",
		Advice:     "Transforme a sede de mudança em movimento com direção.",
	},
	6: {
		Title:      "PROTETOR E RESPONSÁVEL",
		Strengths:  "Responsabilidade, amor, serviço, harmonia",
		Challenges: "Possessividade, preocupação excessiva, autossacrifício",
		Mission:    "Criar harmonia, cuidar da família e comunidade",
		Career:     "Educação, saúde, serviço social, aconselhamento",
		Advice:     "Cuide de si com o mesmo carinho que dedica aos outros.",
	},
	7: {
		Title:      "ANALÍTICO E ESPIRITUAL",
		Strengths:  "Análise, intuição, espiritualidade, sabedoria",
		Challenges: "Ceticismo, isolamento, perfeccionismo",
		Mission:    "Buscar conhecimento profundo, desenvolver intuição",
		Career:     "Pesquisa, ciência, espiritualidade, análise",
		Advice:     "Reserve momentos de silêncio: é neles que as respostas chegam.",
	},
	8: {
		Title:      "EXECUTIVO E PODEROSO",
		Strengths:  "Poder, realização, abundância, eficiência",
		Challenges: "Materialismo, trabalho excessivo, autoritarismo",
		Mission:    "Aprender a usar o poder com sabedoria, realizar grandes projetos",
		Career:     "Executiva, finanças, direito, grandes negócios",
		Advice:     "Prosperidade vem em equilíbrio com propósito.",
	},
	9: {
		Title:      "HUMANITÁRIO E COMPASSIVO",
		Strengths:  "Compaixão, generosidade, idealismo, criatividade universal",
		Challenges: "Emocionalidade excessiva, martírio, dispersão",
		Mission:    "Servir à humanidade, compartilhar sabedoria universal",
		Career:     "Serviço humanitário, arte, cura, ensino superior",
		Advice:     "Encerre ciclos com gratidão para abrir espaço ao novo.",
	},
	11: {
		Title:      "MESTRE INSPIRADOR",
		Strengths:  "Intuição elevada, inspiração, iluminação, idealismo",
		Challenges: "Nervosismo, ansiedade, expectativas irreais",
		Mission:    "Inspirar outros através da intuição e visão espiritual",
		Career:     "Liderança espiritual, arte inspiradora, ensino místico",
		Advice:     "Aterre suas visões em passos concretos.",
	},
	22: {
		Title:      "MESTRE CONSTRUTOR",
		Strengths:  "Poder prático, visão global, realização em larga escala",
		Challenges: "Pressão excessiva, perfeccionismo, ansiedade",
		Mission:    "Construir projetos que beneficiem a humanidade",
		Career:     "Grandes construções, projetos globais, arquitetura",
		Advice:     "Grandes obras nascem de pequenas tarefas bem-feitas.",
	},
	33: {
		Title:      "MESTRE DOS MESTRES",
		Strengths:  "Compaixão universal, serviço à humanidade, amor incondicional",
		Challenges: "Autossacrifício excessivo, sobrecarga emocional",
		Mission:    "Elevar a consciência humana através do amor e serviço",
		Career:     "Liderança humanitária, cura em massa, ensino espiritual",
		Advice:     "Ame sem se perder de si.",
	},
}

// MeaningOf returns the interpretation of n.
func MeaningOf(n int) (Meaning, bool) {
	m, ok := meanings[n]
	return m, ok
}
