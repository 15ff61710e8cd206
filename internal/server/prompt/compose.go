// Package prompt builds the text sent to the completion service: a fixed
// instruction preamble, the whole FAQ corpus and the user's message.
package prompt

import (
	_ "embed"
	"strings"
)

// DefaultFAQ is the corpus served when no other source is configured.
//
//go:embed faq.txt
var DefaultFAQ string

const (
	preamble = "You are a friendly and helpful assistant designed to answer questions *strictly based* on the following FAQ data for our business.\n\n" +
		"FAQs:\n"

	closing = "\n\nIf a user asks a question that is not directly and clearly covered by the provided FAQs, " +
		"politely let them know that you can only provide information from the FAQs. " +
		"Suggest they rephrase their question or ask about a topic listed in the FAQs. " +
		"Do not make up information or answer questions outside the scope of the FAQs. " +
		"Be concise and always maintain a helpful tone.\n\n" +
		"User: "
)

// Compose returns the full prompt for userMessage. The corpus is included
// verbatim on every call; the output depends only on the two inputs.
func Compose(faq, userMessage string) string {
	var b strings.Builder
	b.Grow(len(preamble) + len(faq) + len(closing) + len(userMessage) + 1)

	b.WriteString(preamble)
	b.WriteString(faq)
	b.WriteString(closing)
	b.WriteString(userMessage)
	b.WriteString("\n")

	return b.String()
}
