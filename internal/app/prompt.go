package app

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SystemPrompt is the fixed persona for answer generation. The retrieved
// passages are appended below it; the model is told to stay inside them.
func (p *PromptBuilder) SystemPrompt() string {
	return "You are MAPA, an AI assistant for Mapua University. " +
		"Use the retrieved context to answer concisely. " +
		"If you don't know, say you don't know."
}

// BuildPrompt assembles the full generation prompt from the retrieved
// passages and the user's question.
func (p *PromptBuilder) BuildPrompt(query string, passages []Passage) string {
	var b strings.Builder
	b.WriteString(p.SystemPrompt())
	b.WriteString("\n\nRetrieved context:\n")
	for _, passage := range passages {
		fmt.Fprintf(&b, "- [%s] %s\n", passage.Source, passage.Text)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(query)
	return b.String()
}
