package core

import "context"

// NormalizedQuery is what the normalization capability returns for one
// raw user message.
type NormalizedQuery struct {
	Normalized string  `json:"normalized"`
	IsGreeting bool    `json:"is_greeting"`
	IsThanks   bool    `json:"is_thanks"`
	Confidence float64 `json:"confidence"`
}

// QueryNormalizer is the AI-backed normalization capability. It is
// best-effort: callers must survive an error and fall back to the static
// dialect dictionary.
type QueryNormalizer interface {
	Normalize(ctx context.Context, text string) (NormalizedQuery, error)
}
