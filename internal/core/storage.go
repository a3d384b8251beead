package core

import "context"

// CatalogFilter is the predicate the search pipeline builds and the store
// executes. Terms are OR-ed case-insensitive substring filters on the
// designation; Reference, when set, is a substring filter on the reference.
type CatalogFilter struct {
	Terms     []string
	Reference string
	Limit     int
}

type CatalogRepository interface {
	FindCandidates(ctx context.Context, filter CatalogFilter) ([]Part, error)
}

type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
}
