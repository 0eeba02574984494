package flow

import (
	"fmt"
	"strings"

	"github.com/sarahkali/oracle/backend/internal/model/catalog"
	"github.com/sarahkali/oracle/backend/internal/model/persona"
	"github.com/sarahkali/oracle/backend/internal/model/profile"
)

const (
	// RealignReply is returned when processing fails unexpectedly.
	RealignReply = "🔮 Estou realinhando minhas energias... Pode repetir sua mensagem em instantes?"

	invalidDataReply = "🔮 Não consegui ler seus dados com clareza. Confira se a data está no formato DD/MM/AAAA (ex.: 15/03/1990) e me envie novamente."
	invalidNameReply = "🔮 Preciso do seu nome completo, com nome e sobrenome escritos por extenso (ex.: Maria Aparecida Souza)."
	reportFooter     = "✨ Se quiser outra consulta, é só me mandar o número do serviço."
)

var questions = map[profile.Field]string{
	profile.FieldName:  "Qual é o seu nome completo?",
	profile.FieldDate:  "Qual é a sua data de nascimento? (formato DD/MM/AAAA)",
	profile.FieldPlace: "Em qual cidade você nasceu?",
	profile.FieldTime:  "Qual foi o horário do seu nascimento? (ex.: 14:30)",
}

var softLabels = map[profile.Field]string{
	profile.FieldName: "seu nome completo",
	profile.FieldTime: "o horário de nascimento",
}

func welcomeMenu(p persona.Persona, services []catalog.Service) string {
	var b strings.Builder
	b.WriteString(p.OpeningLine)
	b.WriteString("\n\nEscolha um serviço pelo número:\n")
	for _, svc := range services {
		b.WriteString(svc.MenuLine())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func paymentInstructions(svc catalog.Service, pixKey string) string {
	return fmt.Sprintf("✨ Ótima escolha! *%s* custa %s.\n\n💳 Faça o PIX para a chave: %s\n\nAssim que pagar, me envie o comprovante por aqui. 🔮",
		svc.Name, svc.Price(), pixKey)
}

func paymentReminder(svc catalog.Service, pixKey string) string {
	return fmt.Sprintf("⏳ Estou aguardando o comprovante do PIX de %s (chave %s) para iniciar seu %s. Se preferir outro serviço, é só me dizer o número.",
		svc.Price(), pixKey, svc.Name)
}

func paymentConfirmed(svc catalog.Service) string {
	switch svc.Kind {
	case catalog.KindNumerology:
		return fmt.Sprintf("🙏 Pagamento confirmado! Para o seu %s, me envie seu nome completo e sua data de nascimento (DD/MM/AAAA).\nExemplo: João Silva, 15/03/1990", svc.Name)
	case catalog.KindAstrology:
		return fmt.Sprintf("🙏 Pagamento confirmado! Para o seu %s, me envie sua data de nascimento (DD/MM/AAAA), o horário e a cidade onde nasceu. Seu nome completo também ajuda.\nExemplo: Maria Santos, 15/08/1990, 14:30, São Paulo", svc.Name)
	default:
		return fmt.Sprintf("🙏 Pagamento confirmado! Respire fundo, concentre-se e me conte o que você deseja saber na sua %s. 🔮", svc.Name)
	}
}

// missingPrompt asks for exactly one blocking field and restates what is
// already known. Optional fields are mentioned as a bonus.
func missingPrompt(ask profile.Field, p profile.Profile, soft []profile.Field) string {
	var b strings.Builder
	if known := p.Summary(); len(known) > 0 {
		b.WriteString("📝 Já anotei: ")
		b.WriteString(strings.Join(known, ", "))
		b.WriteString(".\n")
	}
	b.WriteString(questions[ask])

	var extras []string
	for _, f := range soft {
		if label, ok := softLabels[f]; ok && f != ask {
			extras = append(extras, label)
		}
	}
	if len(extras) > 0 {
		b.WriteString("\nSe souber, me diga também ")
		b.WriteString(strings.Join(extras, " e "))
		b.WriteString(": deixa a leitura mais precisa. ✨")
	}
	return b.String()
}

func deliverReport(text string) string {
	return text + "\n\n" + reportFooter
}
