package clarify

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/search"
	"github.com/sandevgo/partsbot/pkg/log"
)

// Dimension is the axis of ambiguity a pending question resolves.
type Dimension string

const (
	DimensionPosition Dimension = "position"
	DimensionSide     Dimension = "side"
	DimensionType     Dimension = "type"
)

const (
	contextTTL    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

// Context is the per-session pending question. Exactly one per session;
// overwritten or cleared, never merged.
type Context struct {
	OriginalQuery string
	Dimension     Dimension
	Candidates    []core.Part
	CreatedAt     time.Time
}

// Manager owns the per-session clarification state machine:
// NONE -> PENDING -> (ANSWERED | EXPIRED). It also runs the background
// sweep, so it plugs into the service harness.
type Manager struct {
	mu      sync.Mutex
	pending map[string]Context

	ttl   time.Duration
	sweep time.Duration
	now   func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		pending: make(map[string]Context),
		ttl:     contextTTL,
		sweep:   sweepInterval,
		now:     time.Now,
	}
}

// Start runs the expiry sweep until the context is cancelled. The sweep
// only ever deletes entries, so it is safe next to request handling.
func (m *Manager) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Dur("interval", m.sweep).Msg("starting clarification sweep")

	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if dropped := m.dropExpired(); dropped > 0 {
				log.FromCtx(ctx).Debug().Int("dropped", dropped).Msg("expired clarification contexts")
			}
		}
	}
}

func (m *Manager) Shutdown(ctx context.Context) error { return nil }

func (m *Manager) dropExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	cutoff := m.now().Add(-m.ttl)
	for sessionID, pc := range m.pending {
		if pc.CreatedAt.Before(cutoff) {
			delete(m.pending, sessionID)
			dropped++
		}
	}
	return dropped
}

// Raise moves the session to PENDING, replacing any previous question.
func (m *Manager) Raise(sessionID, originalQuery string, dim Dimension, candidates []core.Part) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[sessionID] = Context{
		OriginalQuery: originalQuery,
		Dimension:     dim,
		Candidates:    candidates,
		CreatedAt:     m.now(),
	}
}

// Pending returns the session's open question. An entry past its TTL is
// treated as absent even if the sweep has not caught it yet.
func (m *Manager) Pending(sessionID string) (Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pc, ok := m.pending[sessionID]
	if !ok {
		return Context{}, false
	}
	if pc.CreatedAt.Before(m.now().Add(-m.ttl)) {
		delete(m.pending, sessionID)
		return Context{}, false
	}
	return pc, true
}

// Clear moves the session back to NONE.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, sessionID)
}

// genericQueryRe matches catalog-browsing requests that name no part at all
// ("pièces pour ma Suzuki"). Those get the fixed category menu.
var genericQueryRe = regexp.MustCompile(`(^|\s)(pieces?|accessoires?|quelque chose|options?)\s+(pour|de)(\s|$)`)

// commonCategories is the menu offered on a generic query.
var commonCategories = []string{
	"amortisseur", "plaquette", "filtre", "phare", "retroviseur", "embrayage",
}

// bilateralParts physically exist in mirrored left/right instances; only
// these are worth a side question.
var bilateralParts = map[string]struct{}{
	"retroviseur": {},
	"phare":       {},
	"feu":         {},
	"clignotant":  {},
	"aile":        {},
	"amortisseur": {},
	"cardan":      {},
	"rotule":      {},
	"triangle":    {},
	"biellette":   {},
	"vitre":       {},
	"portiere":    {},
}

func isBilateral(partType string) bool {
	_, ok := bilateralParts[partType]
	return ok
}

// Ambiguity describes what the manager wants to ask about.
type Ambiguity struct {
	Dimension Dimension
	// Values are the distinct dimension values observed across the
	// candidates (or the category menu for a generic query).
	Values []string
}

// CheckNeeded decides whether the surviving candidates are ambiguous along a
// dimension the query left unspecified. Priority is position, then side
// (bilateral parts with a known position only), then type.
func CheckNeeded(qc *search.Context, survivors []core.ScoredPart) (Ambiguity, bool) {
	if genericQueryRe.MatchString(qc.NormalizedQuery) && qc.PartType == "" {
		return Ambiguity{Dimension: DimensionType, Values: commonCategories}, true
	}

	// Brake pads always need a position: front and rear pads are never
	// interchangeable.
	if qc.PartType == "plaquette" && !qc.Position.HasPosition() {
		return Ambiguity{Dimension: DimensionPosition, Values: []string{"avant", "arriere"}}, true
	}

	if len(survivors) < 2 {
		return Ambiguity{}, false
	}

	positions, sides, types := observedValues(survivors)

	if !qc.Position.HasPosition() && len(positions) > 1 {
		return Ambiguity{Dimension: DimensionPosition, Values: positions}, true
	}
	if !qc.Position.HasSide() && qc.Position.HasPosition() && isBilateral(qc.PartType) && len(sides) > 1 {
		return Ambiguity{Dimension: DimensionSide, Values: sides}, true
	}
	if qc.PartType == "" && len(types) > 1 {
		return Ambiguity{Dimension: DimensionType, Values: types}, true
	}
	return Ambiguity{}, false
}

// observedValues collects the distinct position, side and type values the
// candidate designations actually expose.
func observedValues(survivors []core.ScoredPart) (positions, sides, types []string) {
	posSeen := map[string]struct{}{}
	sideSeen := map[string]struct{}{}
	typeSeen := map[string]struct{}{}

	for _, sp := range survivors {
		designation := search.Normalize(sp.Designation)

		have := search.DetectPosition(designation)
		if have.Front {
			posSeen["avant"] = struct{}{}
		}
		if have.Rear {
			posSeen["arriere"] = struct{}{}
		}
		if have.Left {
			sideSeen["gauche"] = struct{}{}
		}
		if have.Right {
			sideSeen["droite"] = struct{}{}
		}

		if partType, ok := search.DetectPartType(search.Tokenize(designation)); ok {
			typeSeen[partType] = struct{}{}
		}
	}

	return sortedKeys(posSeen), sortedKeys(sideSeen), sortedKeys(typeSeen)
}

// Parts strips the scores off for storage inside the pending context.
func Parts(survivors []core.ScoredPart) []core.Part {
	parts := make([]core.Part, 0, len(survivors))
	for _, sp := range survivors {
		parts = append(parts, sp.Part)
	}
	return parts
}
