package core

import (
	"fmt"
	"strings"
)

// FallbackReply builds the deterministic template reply for a category.
// It personalizes the greeting with the sender name, echoes the subject
// and a short preview of the message, and characterizes its length.
// It always returns non-empty text and cannot fail.
func FallbackReply(category Category, input *EmailInput) string {
	greeting := "Prezado(a)"
	if name := strings.TrimSpace(input.SenderName); name != "" {
		greeting = "Prezado(a) " + name
	}

	subject := "(sem assunto)"
	if s := strings.TrimSpace(input.Subject); s != "" {
		subject = "'" + s + "'"
	}

	preview := "(sem conteúdo)"
	if t := strings.TrimSpace(input.Text); t != "" {
		preview = firstRunes(t, 50)
	}

	if category == CategoryProductive {
		return fmt.Sprintf(
			"%s, Agradecemos o seu contato. Recebemos seu e-mail com o assunto %s, "+
				"porém o conteúdo da mensagem ('%s') %s. Para que possamos dar o devido "+
				"encaminhamento, poderia nos fornecer mais informações? Permanecemos à disposição.",
			greeting, subject, preview, lengthRemark(input.Text))
	}
	return fmt.Sprintf(
		"%s, Agradecemos o seu contato sobre %s. Recebemos sua mensagem ('%s') e "+
			"valorizamos sua consideração. Sua contribuição é importante para nós. "+
			"Muito obrigado e continue contando conosco.",
		greeting, subject, preview)
}

// lengthRemark characterizes the message length for the productive
// template.
func lengthRemark(text string) string {
	words := len(strings.Fields(text))
	switch {
	case words < 30:
		return "é bastante breve"
	case words < 80:
		return "é concisa"
	case words < 200:
		return "é detalhada"
	default:
		return "é muito completa"
	}
}

// firstRunes truncates on rune boundaries so previews never split a
// multi-byte character.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
