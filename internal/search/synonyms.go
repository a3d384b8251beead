package search

import "strings"

// synonymCategories groups surface-form variants under a canonical category
// key. Keys are already in normalized form; variants are normalized when the
// reverse index is built, so accents in this table are harmless.
var synonymCategories = map[string][]string{
	"amortisseur": {"amortisseurs", "amorto", "amortissuer", "suspension", "jambe de force"},
	"frein":       {"freins", "freinage", "frin"},
	"plaquette":   {"plaquettes", "plaquette de frein", "plaquettes de frein", "garniture"},
	"disque":      {"disques", "disque de frein"},
	"etrier":      {"etriers", "etrier de frein"},
	"phare":       {"phares", "optique", "projecteur", "feu avant"},
	"feu":         {"feux", "lanterne", "feu arriere", "stop"},
	"clignotant":  {"clignotants", "clignoteur"},
	"retroviseur": {"retroviseurs", "retro", "miroir"},
	"filtre":      {"filtres", "filtre a air", "filtre a huile", "filtre a gasoil", "filtre habitacle"},
	"batterie":    {"batteries", "accumulateur"},
	"pare-chocs":  {"pare chocs", "parechoc", "parechocs", "bouclier"},
	"aile":        {"ailes"},
	"capot":       {"capots"},
	"portiere":    {"portieres", "porte"},
	"vitre":       {"vitres", "glace", "pare brise"},
	"embrayage":   {"embrayages", "kit embrayage", "disque embrayage", "butee"},
	"courroie":    {"courroies", "courroie de distribution", "courroie accessoire"},
	"radiateur":   {"radiateurs", "refroidisseur"},
	"bougie":      {"bougies", "bougie allumage", "bougie de prechauffage"},
	"alternateur": {"alternateurs"},
	"demarreur":   {"demarreurs", "starter"},
	"roue":        {"roues", "jante", "jantes"},
	"pneu":        {"pneus", "pneumatique"},
	"cardan":      {"cardans", "soufflet de cardan"},
	"rotule":      {"rotules", "rotule de direction"},
	"triangle":    {"triangles", "triangle de suspension", "bras de suspension"},
	"biellette":   {"biellettes", "biellette de barre"},
	"pompe":       {"pompes", "pompe a eau", "pompe a essence", "pompe de gavage"},
	"essuie-glace": {"essuie glace", "essuie glaces", "balai essuie glace"},
	"ampoule":     {"ampoules", "lampe"},
}

// reverseSynonymIndex maps every normalized variant back to its category key.
// Built once at startup; never mutated afterwards.
var reverseSynonymIndex = buildReverseIndex()

func buildReverseIndex() map[string]string {
	idx := make(map[string]string, len(synonymCategories)*4)
	for key, variants := range synonymCategories {
		idx[Normalize(key)] = key
		for _, v := range variants {
			idx[Normalize(v)] = key
		}
	}
	return idx
}

// CategoryOf resolves a normalized token (or phrase) to its synonym category.
func CategoryOf(token string) (string, bool) {
	key, ok := reverseSynonymIndex[token]
	return key, ok
}

// Variants returns the category key followed by its registered variants.
func Variants(key string) []string {
	variants, ok := synonymCategories[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(variants)+1)
	out = append(out, key)
	for _, v := range variants {
		out = append(out, Normalize(v))
	}
	return out
}

// ExpandTokens enriches the token set through the reverse synonym index.
// Each matched token contributes its category key plus at most one extra
// variant, which caps the blow-up at two added terms per token.
func ExpandTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens)*2)
	expanded := make([]string, 0, len(tokens)*2)

	add := func(term string) {
		if term == "" {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		expanded = append(expanded, term)
	}

	for _, tok := range tokens {
		add(tok)

		key, ok := reverseSynonymIndex[tok]
		if !ok {
			continue
		}
		add(key)

		for _, v := range synonymCategories[key] {
			nv := Normalize(v)
			if nv != tok && nv != key {
				add(nv)
				break
			}
		}
	}
	return expanded
}

// DetectPartType returns the first token that resolves to a synonym
// category. It is the "main part type" the scorer keys its category
// penalty on.
func DetectPartType(tokens []string) (string, bool) {
	for _, tok := range tokens {
		if key, ok := reverseSynonymIndex[tok]; ok {
			return key, true
		}
	}
	return "", false
}

// ContainsVariant reports whether the normalized designation mentions any
// variant of the given category.
func ContainsVariant(normalizedDesignation, category string) bool {
	for _, v := range Variants(category) {
		if containsWord(normalizedDesignation, v) {
			return true
		}
	}
	return false
}

func containsWord(haystack, word string) bool {
	idx := strings.Index(haystack, word)
	for idx >= 0 {
		beforeOK := idx == 0 || haystack[idx-1] == ' '
		after := idx + len(word)
		afterOK := after == len(haystack) || haystack[after] == ' '
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(haystack[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}
