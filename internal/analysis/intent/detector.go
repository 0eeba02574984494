// Package intent classifies chat messages with fixed keyword heuristics.
package intent

import (
	"regexp"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/pkg/textutil"
)

// choicePattern matches a message that is only a menu number, optionally
// prefixed by "opção"/"opcao".
var choicePattern = regexp.MustCompile(`^(?:op[cç][aã]o\s*)?(?:n[ºo°]?\s*)?([1-9])\s*[.!)]*$`)

// paymentKeywords signal a payment proof. Matching is a heuristic only; false
// positives are accepted because no payment gateway exists.
var paymentKeywords = []string{
	"comprovante", "paguei", "pago", "pix", "print", "recibo",
	"transferi", "transferência", "pagamento feito", "pagamento realizado",
	"já fiz o pagamento", "ja fiz o pagamento", "enviei o pagamento", "depositei",
}

var greetingKeywords = []string{
	"oi", "olá", "ola", "bom dia", "boa tarde", "boa noite", "hello", "hey",
	"menu", "serviços", "servicos", "opções", "opcoes", "começar", "comecar", "quanto custa", "preço", "preco",
}

// DetectService returns the service named by the message: a bare menu number
// first, then catalog keywords in catalog order. First match wins.
func DetectService(text string, services catalog.Store) (catalog.Service, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return catalog.Service{}, false
	}

	if m := choicePattern.FindStringSubmatch(trimmed); m != nil {
		if svc, ok := services.FindByChoice(m[1]); ok {
			return svc, true
		}
	}

	for _, svc := range services.List() {
		if textutil.ContainsAny(trimmed, svc.Keywords) {
			return svc, true
		}
	}
	return catalog.Service{}, false
}

// DetectPaymentProof reports whether the message looks like a payment proof.
func DetectPaymentProof(text string) bool {
	return containsWord(text, paymentKeywords)
}

// IsGreeting reports whether the message greets or asks for the menu.
func IsGreeting(text string) bool {
	return containsWord(text, greetingKeywords)
}

// containsWord matches keywords on word boundaries of the folded text, so
// that "pago" does not fire inside "apagou".
func containsWord(text string, keywords []string) bool {
	folded := " " + strings.Join(strings.FieldsFunc(textutil.Fold(text), isSeparator), " ") + " "
	for _, kw := range keywords {
		if strings.Contains(folded, " "+textutil.Fold(kw)+" ") {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '.', '!', '?', ';', ':', '(', ')', '"', '\'':
		return true
	}
	return false
}
