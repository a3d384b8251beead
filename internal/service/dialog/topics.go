package dialog

import (
	"regexp"
	"strings"

	"github.com/sandevgo/partsbot/internal/search"
)

// topicKeywords maps a conversation topic to the part keywords that signal
// it. Matching runs on normalized text.
var topicKeywords = map[string][]string{
	"freinage":     {"frein", "plaquette", "disque", "etrier", "tambour"},
	"suspension":   {"amortisseur", "ressort", "triangle", "biellette", "rotule", "silent bloc"},
	"eclairage":    {"phare", "feu", "clignotant", "ampoule", "optique"},
	"filtration":   {"filtre", "huile", "gasoil"},
	"carrosserie":  {"pare chocs", "pare-chocs", "aile", "capot", "portiere", "retroviseur", "vitre"},
	"transmission": {"embrayage", "cardan", "boite", "vitesse"},
	"moteur":       {"courroie", "bougie", "alternateur", "demarreur", "radiateur", "pompe"},
	"roues":        {"roue", "pneu", "jante"},
}

// topicOrder fixes the scan order; map iteration would make topic labels
// flap between runs.
var topicOrder = []string{
	"freinage", "suspension", "eclairage", "filtration",
	"carrosserie", "transmission", "moteur", "roues",
}

// brakePadRe takes precedence over the generic "frein" keyword: a brake-pad
// mention is a more specific topic than the braking system at large.
var brakePadRe = regexp.MustCompile(`(^|\s)plaquettes?(\s|$)`)

// TopicOf labels one user message. Dialect normalization is tried first so
// Tunisian variants land on the same topics as their French equivalents.
func TopicOf(message string) string {
	normalized := search.Normalize(message)
	if dialect, ok := search.NormalizeDialect(message); ok {
		normalized = dialect
	}

	if brakePadRe.MatchString(normalized) {
		return "freinage"
	}

	for _, topic := range topicOrder {
		for _, keyword := range topicKeywords[topic] {
			if strings.Contains(normalized, keyword) {
				return topic
			}
		}
	}
	return ""
}

// PartOf extracts the canonical part category a message names, empty when
// it names none.
func PartOf(message string) string {
	normalized := search.Normalize(message)
	if dialect, ok := search.NormalizeDialect(message); ok {
		normalized = dialect
	}
	if partType, ok := search.DetectPartType(search.Tokenize(normalized)); ok {
		return partType
	}
	return ""
}
