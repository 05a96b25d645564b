package llm

import (
	"fmt"
	"strings"

	"elyubot/internal/catalog"
)

const basePrompt = "You are ElyuBot, a helpful assistant for an app about La Union. " +
	"Answer strictly based on the provided data about products, stores, and municipalities. " +
	"Do not invent or add information not in the data. " +
	"If no relevant data is found, say exactly: 'No information available in the data.' " +
	"Keep responses concise, factual, and limited to the provided details."

// GeneralPrompt grounds a free-form question in a small sample of catalog
// data so the model cannot wander far from it.
func GeneralPrompt(message string, products []catalog.Product) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	if len(products) > 0 {
		b.WriteString(" Available products: ")
		items := make([]string, 0, len(products))
		for i, p := range products {
			if i == 10 {
				break
			}
			item := p.Name
			if p.PriceRange != "" {
				item += fmt.Sprintf(" (%s)", p.PriceRange)
			}
			if p.StoreName != "" {
				item += " at " + p.StoreName
			}
			items = append(items, item)
		}
		b.WriteString(strings.Join(items, ", "))
		b.WriteString(".")
	}
	b.WriteString("\n\nUser: ")
	b.WriteString(message)
	b.WriteString("\nElyuBot: ")
	return b.String()
}
