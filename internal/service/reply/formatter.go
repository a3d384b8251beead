package reply

import (
	"fmt"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
)

// Formatter renders a structured search result into Markdown. Transports
// convert further (Telegram HTML) or print as-is (CLI).
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Render(result core.SearchResult) string {
	switch result.Intent {
	case core.IntentGreeting:
		return "Bonjour ! Dites-moi quelle pièce vous cherchez, ou donnez-moi sa référence."
	case core.IntentThanks:
		return "Avec plaisir ! N'hésitez pas si vous cherchez autre chose."
	case core.IntentClarificationNeeded:
		return result.ClarificationQuestion
	case core.IntentModelMismatch:
		return fmt.Sprintf("Cette pièce existe au catalogue, mais pas pour **%s**. Voulez-vous vérifier pour un autre modèle ?", result.MismatchedModel)
	case core.IntentNoResults:
		return "Je n'ai rien trouvé pour cette demande. Essayez avec le nom de la pièce ou sa référence."
	case core.IntentProductsFound:
		return f.renderProducts(result.Products)
	}
	return ""
}

func (f *Formatter) renderProducts(products []core.ScoredPart) string {
	var sb strings.Builder
	if len(products) == 1 {
		sb.WriteString("Voici ce que j'ai trouvé :\n\n")
	} else {
		fmt.Fprintf(&sb, "J'ai trouvé %d pièces :\n\n", len(products))
	}

	for _, p := range products {
		fmt.Fprintf(&sb, "• **%s**", p.Designation)
		if p.Reference != "" {
			fmt.Fprintf(&sb, " — réf `%s`", p.Reference)
		}
		if p.UnitPrice != nil {
			fmt.Fprintf(&sb, " — %.2f DT", *p.UnitPrice)
		}
		if p.Stock > 0 {
			sb.WriteString(" — en stock")
		} else {
			sb.WriteString(" — sur commande")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
