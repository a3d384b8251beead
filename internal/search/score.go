package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
)

// Weights is the complete ranking policy. Keeping every constant here makes
// the ordering auditable without touching the token parsing.
type Weights struct {
	ReferenceExact    int // query is exactly the candidate's reference
	ReferenceContains int // candidate's reference contains the query

	TokenWordMatch int // per query token found on a word boundary in the designation

	TypeMatch int // designation mentions any variant of the detected part type
	TypeMiss  int // designation mentions none (wrong-category penalty)

	TypeExact     int // designation IS the part type
	TypePrefix    int // designation starts with the part type, not an accessory
	TypeWord      int // part type on a word boundary, not an accessory
	AccessoryMiss int // designation is an accessory of the part type

	RefContainsQuery int // reference contains the normalized query (secondary)
	RefEqualsQuery   int // reference equals the normalized query (secondary)
	AllTokensPresent int // every query token appears in designation or reference

	PositionMatch    int // per matching position/side dimension
	PositionConflict int // per contradicted position/side dimension

	InStock    int
	ModelMatch int
}

// DefaultWeights is the production ranking policy.
var DefaultWeights = Weights{
	ReferenceExact:    1000,
	ReferenceContains: 400,
	TokenWordMatch:    1000,
	TypeMatch:         2500,
	TypeMiss:          -4000,
	TypeExact:         5000,
	TypePrefix:        3000,
	TypeWord:          2000,
	AccessoryMiss:     -3500,
	RefContainsQuery:  200,
	RefEqualsQuery:    400,
	AllTokensPresent:  150,
	PositionMatch:     300,
	PositionConflict:  -500,
	InStock:           8,
	ModelMatch:        50,
}

// typeCooccurrence weights the category-match bonus per category. Categories
// with many near-miss accessories in the catalog get a stronger pull.
var typeCooccurrence = map[string]float64{
	"frein":       1.3,
	"plaquette":   1.4,
	"disque":      1.2,
	"amortisseur": 1.5,
	"phare":       1.2,
	"feu":         1.1,
	"retroviseur": 1.2,
	"filtre":      1.1,
	"embrayage":   1.3,
	"courroie":    1.1,
}

// accessoryRe matches designations that are fixing hardware or trim around
// a part rather than the part itself.
var accessoryRe = regexp.MustCompile(`(^|\s)(support|sangle|cable|clip|vis|agrafe|joint|capuchon|fixation|ecrou|rondelle|soufflet|cache)(\s|$)`)

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the relevance of one candidate for the query context. The
// result can be negative; negative totals only matter for relative ordering
// before the selector thresholds.
func (s *Scorer) Score(qc *Context, part core.Part) int {
	designation := Normalize(part.Designation)
	reference := Normalize(part.Reference)

	score := s.referenceScore(qc, reference)
	score += s.contentScore(qc, designation, reference)
	score += s.positionScore(qc, designation)
	score += s.businessScore(qc, part, designation)
	return score
}

func (s *Scorer) referenceScore(qc *Context, reference string) int {
	query := strings.ReplaceAll(qc.NormalizedQuery, " ", "")
	ref := strings.ReplaceAll(reference, " ", "")
	if query == "" || ref == "" {
		return 0
	}
	switch {
	case ref == query:
		return s.weights.ReferenceExact
	case strings.Contains(ref, query):
		return s.weights.ReferenceContains
	}
	return 0
}

func (s *Scorer) contentScore(qc *Context, designation, reference string) int {
	score := 0

	for _, tok := range qc.Tokens {
		if containsWord(designation, tok) {
			score += s.weights.TokenWordMatch
		}
	}

	if qc.PartType != "" {
		if ContainsVariant(designation, qc.PartType) {
			score += weighted(s.weights.TypeMatch, qc.PartType)
			score += s.exactnessTier(designation, qc.PartType)
		} else {
			score += s.weights.TypeMiss
		}
	}

	query := strings.ReplaceAll(qc.NormalizedQuery, " ", "")
	ref := strings.ReplaceAll(reference, " ", "")
	if query != "" && ref != "" {
		if ref == query {
			score += s.weights.RefEqualsQuery
		} else if strings.Contains(ref, query) {
			score += s.weights.RefContainsQuery
		}
	}

	if len(qc.Tokens) > 0 {
		all := true
		for _, tok := range qc.Tokens {
			if !strings.Contains(designation, tok) && !strings.Contains(reference, tok) {
				all = false
				break
			}
		}
		if all {
			score += s.weights.AllTokensPresent
		}
	}

	return score
}

// exactnessTier separates "the part itself" from "something about the part".
// A designation that IS the requested type outranks one that merely starts
// with it, which outranks a word-boundary mention; accessories sink.
func (s *Scorer) exactnessTier(designation, partType string) int {
	accessory := accessoryRe.MatchString(designation)
	switch {
	case designation == partType:
		return s.weights.TypeExact
	case accessory:
		return s.weights.AccessoryMiss
	case strings.HasPrefix(designation, partType+" ") || strings.HasPrefix(designation, partType+"s "):
		return s.weights.TypePrefix
	case containsWord(designation, partType):
		return s.weights.TypeWord
	}
	return 0
}

func (s *Scorer) positionScore(qc *Context, designation string) int {
	if !qc.Position.Any() {
		return 0
	}
	have := DetectPosition(designation)
	score := 0

	score += dimensionScore(qc.Position.Front, have.Front, have.Rear, s.weights)
	score += dimensionScore(qc.Position.Rear, have.Rear, have.Front, s.weights)
	score += dimensionScore(qc.Position.Left, have.Left, have.Right, s.weights)
	score += dimensionScore(qc.Position.Right, have.Right, have.Left, s.weights)
	return score
}

// dimensionScore rewards a declared requirement the designation satisfies and
// punishes one the designation contradicts (the opposite marker present
// without the requested one).
func dimensionScore(required, present, opposite bool, w Weights) int {
	if !required {
		return 0
	}
	if present {
		return w.PositionMatch
	}
	if opposite {
		return w.PositionConflict
	}
	return 0
}

func (s *Scorer) businessScore(qc *Context, part core.Part, designation string) int {
	score := 0
	if part.Stock > 0 {
		score += s.weights.InStock
	}
	if qc.Model != "" && containsWord(designation, qc.Model) {
		score += s.weights.ModelMatch
	}
	return score
}

func weighted(base int, category string) int {
	if factor, ok := typeCooccurrence[category]; ok {
		return int(float64(base) * factor)
	}
	return base
}

// ScoreAll scores every candidate and orders the result by score desc,
// stock desc, then reference asc. The lexical tie-break keeps repeated runs
// of the same query byte-identical.
func (s *Scorer) ScoreAll(qc *Context, candidates []core.Part) []core.ScoredPart {
	scored := make([]core.ScoredPart, 0, len(candidates))
	for _, part := range candidates {
		scored = append(scored, core.ScoredPart{Part: part, Score: s.Score(qc, part)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Stock != scored[j].Stock {
			return scored[i].Stock > scored[j].Stock
		}
		return scored[i].Reference < scored[j].Reference
	})
	return scored
}
