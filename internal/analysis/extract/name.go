package extract

import (
	"regexp"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/analysis/intent"
	"github.com/sarahkali/oracle/backend/pkg/textutil"
)

const (
	minNameTokens  = 2
	maxNameTokens  = 6
	minNameLetters = 6
)

// introPattern marks where a self-introduced name starts.
var introPattern = regexp.MustCompile(`(?i)\b(?:meu nome(?: completo)? (?:é|e)|me chamo|eu sou (?:o|a)|sou (?:o|a))\s+`)

// fillers are trimmed from both ends of a candidate name or place. Inner
// particles such as "de" in "Maria de Souza" survive because only the edges
// are trimmed.
var fillers = toSet(
	"ok", "okay", "blz", "beleza", "sim", "nao", "claro", "certo", "pronto", "entao",
	"oi", "ola", "bom", "boa", "dia", "tarde", "noite", "tudo", "bem", "obrigado", "obrigada",
	"por", "favor", "pf", "pfv", "aqui", "segue", "seguem", "vai", "la", "ai",
	"quero", "queria", "gostaria", "fazer", "saber", "ver", "pra", "para", "com", "sobre",
	"eu", "me", "chamo", "chama", "sou", "o", "a", "os", "as", "e", "ao",
	"meu", "minha", "meus", "minhas", "nome", "completo", "dados",
	"data", "de", "da", "do", "das", "dos", "nascimento", "nasci", "nascido", "nascida", "natural",
	"em", "no", "na", "hora", "horas", "cidade", "local",
	"numerologia", "numerologico", "mapa", "astral", "astrologia", "signo", "tarot", "taro", "leitura", "orientacao",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// nameBefore looks for a full name in the text that precedes a birth date,
// walking clause by clause from the one nearest to the date.
func nameBefore(prefix string) (string, bool) {
	if locs := introPattern.FindAllStringIndex(prefix, -1); len(locs) > 0 {
		prefix = prefix[locs[len(locs)-1][1]:]
	}
	clauses := strings.FieldsFunc(prefix, isClauseBreak)
	for i := len(clauses) - 1; i >= 0; i-- {
		tokens := trimFillers(tokenize(clauses[i]))
		if len(tokens) == 0 {
			continue
		}
		if validName(tokens) {
			return textutil.TitleName(strings.Join(tokens, " ")), true
		}
	}
	return "", false
}

// bareName accepts a reply that is just a name, used when the assistant has
// asked for one.
func bareName(text string) (string, bool) {
	if strings.ContainsAny(text, "?0123456789") || intent.DetectPaymentProof(text) {
		return "", false
	}
	return nameBefore(text)
}

// validName applies the full-name rule shared with the numerology engine,
// plus a minimum letter count for the whole name.
func validName(tokens []string) bool {
	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return false
	}
	letters := 0
	for _, tok := range tokens {
		if !textutil.IsNameWord(tok) {
			return false
		}
		letters += textutil.CountLetters(tok)
	}
	return letters >= minNameLetters
}

func tokenize(clause string) []string {
	var tokens []string
	for _, raw := range strings.Fields(clause) {
		tok := strings.Trim(raw, `"'()[]-–—*_`)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func trimFillers(tokens []string) []string {
	for len(tokens) > 0 && fillers[textutil.Fold(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && fillers[textutil.Fold(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func isClauseBreak(r rune) bool {
	switch r {
	case ',', ';', '.', '!', '?', ':', '\n', '\r':
		return true
	}
	return false
}
