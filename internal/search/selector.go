package search

import "github.com/sandevgo/partsbot/internal/core"

// Threshold values for the minimum-score policy.
const (
	thresholdPositionBrowse = 0 // single bare position token: don't starve browsing
	thresholdDialect        = 5 // dialect queries are noisier, relaxed
	thresholdDefault        = 8
)

// Result caps. Once a position is known precision beats recall.
const (
	capPositional = 5
	capPreferred  = 10
)

// MinScore returns the minimum score a candidate must reach to survive for
// this query.
func MinScore(qc *Context) int {
	if qc.IsBarePosition() {
		return thresholdPositionBrowse
	}
	if qc.DialectDetected {
		return thresholdDialect
	}
	return thresholdDefault
}

// Select applies the minimum-score policy and the result cap to an
// already-ordered candidate list.
func Select(qc *Context, scored []core.ScoredPart) []core.ScoredPart {
	minScore := MinScore(qc)

	survivors := make([]core.ScoredPart, 0, len(scored))
	for _, sp := range scored {
		if sp.Score >= minScore {
			survivors = append(survivors, sp)
		}
	}

	switch {
	case qc.Position.Any() && len(survivors) >= capPositional:
		return survivors[:capPositional]
	case len(survivors) >= capPreferred:
		return survivors[:capPreferred]
	}
	return survivors
}
