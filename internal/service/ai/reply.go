package ai

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minReplyRunes = 8

// FallbackReply replaces answers too short to be useful.
const FallbackReply = "✨ Estou aqui com você. Me conte um pouco mais para que eu possa orientar melhor. 🔮"

var apologies = []string{
	"🔮 As energias estão um pouco turvas agora. Pode me escrever de novo em instantes?",
	"✨ Perdão, perdi a conexão com o plano espiritual por um momento. Tente novamente, por favor.",
	"🌙 Estou realinhando minhas energias cósmicas... Volte a falar comigo em alguns segundos.",
	"💫 Os astros pediram uma pausa rápida. Me envie sua mensagem outra vez, por favor.",
}

// Polish trims a model reply, collapses repeated emoji, strips leading
// punctuation and swaps implausibly short answers for a canned one.
func Polish(raw string) string {
	text := collapseEmojiRuns(strings.TrimSpace(raw))
	text = strings.TrimLeftFunc(text, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	text = strings.TrimSpace(text)

	if utf8.RuneCountInString(text) < minReplyRunes {
		return FallbackReply
	}
	return text
}

// collapseEmojiRuns keeps a single copy of an emoji repeated back to back,
// spaces and variation selectors in between included: "✨ ✨✨" becomes "✨".
func collapseEmojiRuns(s string) string {
	var b, pending strings.Builder
	b.Grow(len(s))

	var last rune
	skipping := false
	for _, r := range s {
		switch {
		case r == '\uFE0F' || r == '\u200D':
			if !skipping {
				b.WriteRune(r)
			}
		case isEmoji(r):
			if r == last {
				pending.Reset()
				skipping = true
				continue
			}
			b.WriteString(pending.String())
			pending.Reset()
			b.WriteRune(r)
			last, skipping = r, false
		case last != 0 && unicode.IsSpace(r):
			pending.WriteRune(r)
		default:
			b.WriteString(pending.String())
			pending.Reset()
			b.WriteRune(r)
			last, skipping = 0, false
		}
	}
	b.WriteString(pending.String())
	return b.String()
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B50 && r <= 0x2B55:
		return true
	}
	return false
}
