package search

import (
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
)

// vehicleModels are the model tags that can show up inside designations.
// The catalog encodes the model in free text, so detection is lexical.
var vehicleModels = []string{
	"alto", "celerio", "swift", "dzire", "baleno", "vitara", "jimny",
	"ertiga", "ignis", "sx4", "apv", "samurai", "carry",
}

// DetectModel returns the first vehicle model mentioned in normalized text.
func DetectModel(normalized string) string {
	for _, model := range vehicleModels {
		if containsWord(normalized, model) {
			return model
		}
	}
	return ""
}

// Context is everything the scorer and the clarification check need to know
// about one query. Built fresh per search call, never persisted.
type Context struct {
	OriginalQuery   string
	NormalizedQuery string

	// Tokens is the length-filtered stream used for synonym expansion;
	// ShortTokens keeps the position abbreviations as well.
	Tokens      []string
	ShortTokens []string

	// ExpandedTerms is the synonym-enriched term set the retrieval filter
	// is built from.
	ExpandedTerms []string

	Position        Position
	PartType        string
	Model           string
	DialectDetected bool
}

// BuildContext parses a query into its search context. The text argument is
// the best normalization available (AI-backed or dialect fallback); raw is
// the user's original message.
func BuildContext(raw, text string, dialectDetected bool) *Context {
	normalized := Normalize(text)

	qc := &Context{
		OriginalQuery:   raw,
		NormalizedQuery: normalized,
		Tokens:          Tokenize(normalized),
		ShortTokens:     ShortTokens(normalized),
		DialectDetected: dialectDetected,
	}

	qc.ExpandedTerms = ExpandTokens(qc.Tokens)
	qc.Position = DetectPosition(normalized)
	qc.Model = DetectModel(normalized)
	if partType, ok := DetectPartType(qc.Tokens); ok {
		qc.PartType = partType
	}
	return qc
}

// IsBarePosition reports whether the query is exactly one token and that
// token is a position/side word. Such queries browse by position and get
// the relaxed score threshold.
func (qc *Context) IsBarePosition() bool {
	return len(qc.ShortTokens) == 1 && IsPositionWord(qc.ShortTokens[0])
}

// PartName returns the query with position/side words removed.
func (qc *Context) PartName() string {
	return StripPositionTokens(qc.NormalizedQuery)
}

// BuildFilter assembles the predicate the catalog store executes. Retrieval
// stays loose on purpose: the scorer and the selector carry the precision.
func (qc *Context) BuildFilter() core.CatalogFilter {
	if qc.IsBarePosition() {
		// Position browsing must match the abbreviated designations
		// ("AMORTISSEUR AV G"), not just the spelled-out word.
		var terms []string
		for _, tok := range qc.ShortTokens {
			terms = append(terms, expandPositionTerm(tok)...)
		}
		return core.CatalogFilter{Terms: terms}
	}

	terms := make([]string, 0, len(qc.ExpandedTerms))
	for _, term := range qc.ExpandedTerms {
		if len(term) >= minTokenLen {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		// Nothing but position abbreviations survived tokenizing ("av g"):
		// fall back to the position words so the store returns something
		// to rank.
		for _, tok := range qc.ShortTokens {
			terms = append(terms, expandPositionTerm(tok)...)
		}
	}
	return core.CatalogFilter{Terms: terms}
}

func expandPositionTerm(token string) []string {
	switch token {
	case "avant", "av":
		return []string{"avant", "av"}
	case "arriere", "arr", "ar":
		return []string{"arriere", "ar"}
	case "gauche", "g":
		return []string{"gauche"}
	case "droit", "droite", "d":
		return []string{"droite", "droit"}
	}
	return []string{token}
}

// MergeQualifier folds a clarification answer into a copy of the context:
// the stated position/side flags are added and the normalized query is
// extended so idempotent re-scoring sees the full request.
func (qc *Context) MergeQualifier(answer Position) *Context {
	merged := *qc
	merged.Position = qc.Position.Merge(answer)

	var extra []string
	if answer.Front && !strings.Contains(merged.NormalizedQuery, "avant") {
		extra = append(extra, "avant")
	}
	if answer.Rear && !strings.Contains(merged.NormalizedQuery, "arriere") {
		extra = append(extra, "arriere")
	}
	if answer.Left && !containsWord(merged.NormalizedQuery, "gauche") {
		extra = append(extra, "gauche")
	}
	if answer.Right && !containsWord(merged.NormalizedQuery, "droite") {
		extra = append(extra, "droite")
	}
	if len(extra) > 0 {
		merged.NormalizedQuery = strings.TrimSpace(merged.NormalizedQuery + " " + strings.Join(extra, " "))
		merged.ShortTokens = ShortTokens(merged.NormalizedQuery)
	}
	return &merged
}
