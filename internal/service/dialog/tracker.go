package dialog

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/search"
	"github.com/sandevgo/partsbot/pkg/log"
)

const (
	cacheTTL = 5 * time.Minute

	// defaultHistoryDepth bounds how far back a recompute reads when no
	// window is configured. Conversations here are short; fifty turns
	// covers a full visit.
	defaultHistoryDepth = 50
)

// SessionContext is the per-session conversational memory: what was talked
// about, derived from the stored message history.
type SessionContext struct {
	Topics       []string
	LastTopic    string
	LastPart     string
	LastModel    string
	MessageCount int

	computedAt time.Time
}

// Tracker rebuilds SessionContext from history on cache miss or expiry. The
// cache is never patched incrementally, except for the explicit SetLastPart
// call the orchestrator makes after a resolved search.
type Tracker struct {
	repo  core.MessagesRepository
	depth int

	mu    sync.Mutex
	cache map[string]*SessionContext

	ttl time.Duration
	now func() time.Time
}

func NewTracker(repo core.MessagesRepository, historyDepth int) *Tracker {
	if historyDepth <= 0 {
		historyDepth = defaultHistoryDepth
	}
	return &Tracker{
		repo:  repo,
		depth: historyDepth,
		cache: make(map[string]*SessionContext),
		ttl:   cacheTTL,
		now:   time.Now,
	}
}

// Get returns the session context, recomputing it from the full message
// history when the cached copy is missing or stale.
func (t *Tracker) Get(ctx context.Context, sessionID string) (*SessionContext, error) {
	t.mu.Lock()
	cached, ok := t.cache[sessionID]
	if ok && t.now().Sub(cached.computedAt) < t.ttl {
		t.mu.Unlock()
		return cached, nil
	}
	t.mu.Unlock()

	messages, err := t.repo.GetMessages(ctx, sessionID, t.depth)
	if err != nil {
		return nil, err
	}

	sc := t.compute(messages)
	sc.computedAt = t.now()

	t.mu.Lock()
	t.cache[sessionID] = sc
	t.mu.Unlock()

	log.FromCtx(ctx).Debug().
		Str("session", sessionID).
		Str("topic", sc.LastTopic).
		Str("part", sc.LastPart).
		Msg("recomputed session context")
	return sc, nil
}

func (t *Tracker) compute(messages []core.Message) *SessionContext {
	sc := &SessionContext{}
	for _, msg := range messages {
		if msg.Role != core.RoleUser {
			continue
		}
		sc.MessageCount++

		if topic := TopicOf(msg.Content); topic != "" {
			sc.Topics = append(sc.Topics, topic)
			sc.LastTopic = topic
		}
		if part := PartOf(msg.Content); part != "" {
			sc.LastPart = part
		}
		if model := search.DetectModel(search.Normalize(msg.Content)); model != "" {
			sc.LastModel = model
		}
	}
	return sc
}

// SetLastPart records the part a resolved search settled on. This is the one
// sanctioned incremental patch; everything else waits for a recompute.
func (t *Tracker) SetLastPart(sessionID, part string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sc, ok := t.cache[sessionID]; ok {
		sc.LastPart = part
	}
}

// qualifierOnlyRe matches follow-ups that carry a qualifier but no part
// name: "et pour l'arrière aussi", "combien pour les deux jeux".
var qualifierOnlyRe = regexp.MustCompile(`(^|\s)(et\s+pour|combien|aussi|les\s+deux|pareil|idem)(\s|$)`)

// BuildSearchQuery merges a qualifier-only follow-up with the last resolved
// part and the active vehicle model. A message that already names both a
// part and a position is used verbatim, context not injected.
func (t *Tracker) BuildSearchQuery(ctx context.Context, sessionID, message string) string {
	normalized := search.Normalize(message)
	if dialect, ok := search.NormalizeDialect(message); ok {
		normalized = dialect
	}

	namesPart := PartOf(message) != ""
	position := search.DetectPosition(normalized)

	if namesPart && position.Any() {
		return message
	}
	if namesPart {
		return message
	}

	// No part named: only worth merging when the message looks like a
	// follow-up or is a bare qualifier.
	if !qualifierOnlyRe.MatchString(normalized) && !position.Any() {
		return message
	}

	sc, err := t.Get(ctx, sessionID)
	if err != nil || sc.LastPart == "" {
		return message
	}

	parts := []string{sc.LastPart}
	if position.Front {
		parts = append(parts, "avant")
	}
	if position.Rear {
		parts = append(parts, "arriere")
	}
	if position.Left {
		parts = append(parts, "gauche")
	}
	if position.Right {
		parts = append(parts, "droite")
	}
	if sc.LastModel != "" {
		parts = append(parts, sc.LastModel)
	}

	merged := strings.Join(parts, " ")
	log.FromCtx(ctx).Debug().
		Str("session", sessionID).
		Str("message", message).
		Str("merged", merged).
		Msg("merged follow-up with session context")
	return merged
}
