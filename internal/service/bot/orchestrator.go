package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/search"
	"github.com/sandevgo/partsbot/internal/service/clarify"
	"github.com/sandevgo/partsbot/internal/service/dialog"
	"github.com/sandevgo/partsbot/pkg/log"
)

// aiConfidenceFloor is the confidence below which an AI normalization is
// treated as unavailable and the dialect fallback takes over.
const aiConfidenceFloor = 0.5

// retrieveLimit bounds how many loose candidates the store may hand back
// for one query; the scorer and selector narrow from there.
const retrieveLimit = 200

// Orchestrator sequences one incoming message through normalization,
// classification, retrieval, scoring, selection and clarification, and
// decides the final intent.
type Orchestrator struct {
	catalog    core.CatalogRepository
	messages   core.MessagesRepository
	normalizer core.QueryNormalizer // optional, best-effort
	clarify    *clarify.Manager
	tracker    *dialog.Tracker
	scorer     *search.Scorer
}

func New(
	catalog core.CatalogRepository,
	messages core.MessagesRepository,
	normalizer core.QueryNormalizer,
	clarifyMgr *clarify.Manager,
	tracker *dialog.Tracker,
) *Orchestrator {
	return &Orchestrator{
		catalog:    catalog,
		messages:   messages,
		normalizer: normalizer,
		clarify:    clarifyMgr,
		tracker:    tracker,
		scorer:     search.NewScorer(search.DefaultWeights),
	}
}

// HandleMessage processes one user turn and returns the structured result.
// Ambiguity and empty catalogs are intents, never errors; only the stores
// can fail.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, text string) (core.SearchResult, error) {
	logger := log.FromCtx(ctx)

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 2 {
		return core.SearchResult{Intent: core.IntentNoResults}, nil
	}

	if err := o.messages.AddMessage(ctx, sessionID, core.Message{Role: core.RoleUser, Content: trimmed}); err != nil {
		return core.SearchResult{}, fmt.Errorf("save user message: %w", err)
	}

	// A pending question eats the message first: qualifiers like "avant"
	// only make sense as answers.
	if pc, ok := o.clarify.Pending(sessionID); ok {
		if ans, answered := clarify.ParseAnswer(pc, trimmed); answered {
			return o.resolveAnswer(ctx, sessionID, pc, ans)
		}
		// Not an answer: the user changed subject, drop the question.
		o.clarify.Clear(sessionID)
	}

	// Reference codes short-circuit before any normalization.
	if code, ok := search.DetectReference(trimmed); ok {
		return o.referenceSearch(ctx, sessionID, code)
	}

	normalized, dialect, aiFlags := o.normalizeQuery(ctx, trimmed)
	if aiFlags.IsGreeting {
		return o.reply(ctx, sessionID, core.SearchResult{Intent: core.IntentGreeting})
	}
	if aiFlags.IsThanks {
		return o.reply(ctx, sessionID, core.SearchResult{Intent: core.IntentThanks})
	}

	// Fold session context into bare follow-ups before parsing.
	merged := o.tracker.BuildSearchQuery(ctx, sessionID, normalized)

	qc := search.BuildContext(trimmed, merged, dialect)
	result, err := o.freeTextSearch(ctx, sessionID, qc)
	if err != nil {
		return core.SearchResult{}, err
	}

	logger.Info().
		Str("session", sessionID).
		Str("intent", string(result.Intent)).
		Int("products", len(result.Products)).
		Msg("message handled")
	return result, nil
}

// normalizeQuery runs the AI capability when configured and confident,
// otherwise the static dialect dictionary. The returned flag reports
// whether dialect rewriting happened.
func (o *Orchestrator) normalizeQuery(ctx context.Context, text string) (string, bool, core.NormalizedQuery) {
	if o.normalizer != nil {
		nq, err := o.normalizer.Normalize(ctx, text)
		if err == nil && nq.Confidence >= aiConfidenceFloor {
			if nq.IsGreeting || nq.IsThanks {
				return text, false, nq
			}
			dialect := search.Normalize(nq.Normalized) != search.Normalize(text)
			return nq.Normalized, dialect, nq
		}
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("ai normalization unavailable, using dialect fallback")
		}
	}

	if fallback, ok := search.NormalizeDialect(text); ok {
		return fallback, true, core.NormalizedQuery{}
	}
	return text, false, core.NormalizedQuery{}
}

func (o *Orchestrator) referenceSearch(ctx context.Context, sessionID, code string) (core.SearchResult, error) {
	parts, err := o.catalog.FindCandidates(ctx, core.CatalogFilter{Reference: code, Limit: retrieveLimit})
	if err != nil {
		return core.SearchResult{}, fmt.Errorf("reference lookup: %w", err)
	}

	if len(parts) == 0 {
		// Still a terminal answer: a reference was attempted, free-text
		// search would only add noise.
		return o.reply(ctx, sessionID, core.SearchResult{Intent: core.IntentNoResults})
	}

	qc := search.BuildContext(code, code, false)
	scored := o.scorer.ScoreAll(qc, parts)
	return o.reply(ctx, sessionID, core.SearchResult{
		Intent:   core.IntentProductsFound,
		Products: scored,
	})
}

func (o *Orchestrator) freeTextSearch(ctx context.Context, sessionID string, qc *search.Context) (core.SearchResult, error) {
	filter := qc.BuildFilter()
	filter.Limit = retrieveLimit

	candidates, err := o.catalog.FindCandidates(ctx, filter)
	if err != nil {
		return core.SearchResult{}, fmt.Errorf("find candidates: %w", err)
	}

	// When the query names a vehicle model, parts explicitly tagged with a
	// different model are out of scope; they only stay around for the
	// mismatch diagnosis below.
	eligible, otherModel := splitByModel(qc, candidates)

	scored := o.scorer.ScoreAll(qc, eligible)
	survivors := search.Select(qc, scored)

	// The generic-query and brake-pad rules inside CheckNeeded apply even
	// when thresholding left nothing, so ambiguity is checked first.
	if amb, needed := clarify.CheckNeeded(qc, survivors); needed {
		o.clarify.Raise(sessionID, qc.NormalizedQuery, amb.Dimension, clarify.Parts(survivors))
		return o.reply(ctx, sessionID, core.SearchResult{
			Intent:                core.IntentClarificationNeeded,
			ClarificationQuestion: clarify.Question(qc.PartName(), amb),
		})
	}

	if len(survivors) == 0 {
		if model := detectModelMismatch(qc, otherModel); model != "" {
			return o.reply(ctx, sessionID, core.SearchResult{
				Intent:          core.IntentModelMismatch,
				MismatchedModel: model,
			})
		}
		return o.reply(ctx, sessionID, core.SearchResult{Intent: core.IntentNoResults})
	}

	if qc.PartType != "" {
		o.tracker.SetLastPart(sessionID, qc.PartType)
	}
	return o.reply(ctx, sessionID, core.SearchResult{
		Intent:   core.IntentProductsFound,
		Products: survivors,
	})
}

// splitByModel separates candidates whose designation names a vehicle model
// other than the requested one. Untagged parts are assumed universal and
// stay eligible. Without a model in the query everything is eligible.
func splitByModel(qc *search.Context, candidates []core.Part) (eligible, otherModel []core.Part) {
	if qc.Model == "" {
		return candidates, nil
	}
	for _, part := range candidates {
		tag := search.DetectModel(search.Normalize(part.Designation))
		if tag == "" || tag == qc.Model {
			eligible = append(eligible, part)
		} else {
			otherModel = append(otherModel, part)
		}
	}
	return eligible, otherModel
}

// detectModelMismatch reports the requested model when the part exists in
// the catalog but only for other models. Kept apart from NO_RESULTS so the
// caller can say "pas pour votre modèle" instead of "rien trouvé".
func detectModelMismatch(qc *search.Context, otherModel []core.Part) string {
	if qc.Model == "" || qc.PartType == "" {
		return ""
	}
	for _, part := range otherModel {
		if search.ContainsVariant(search.Normalize(part.Designation), qc.PartType) {
			return qc.Model
		}
	}
	return ""
}

// resolveAnswer runs the PENDING -> ANSWERED transition: re-extract the part
// name, re-filter the held candidates with the new qualifier, and either
// resolve or re-enter PENDING when the narrowed set is still ambiguous.
func (o *Orchestrator) resolveAnswer(ctx context.Context, sessionID string, pc clarify.Context, ans clarify.Answer) (core.SearchResult, error) {
	// A chosen category replaces the original wording entirely: the held
	// candidates were retrieved for the generic phrase (usually an empty
	// set), so search the catalog anew for the category itself. Any
	// follow-up question then carries the category, not the old phrase.
	if ans.Category != "" {
		o.clarify.Clear(sessionID)
		return o.freeTextSearch(ctx, sessionID, search.BuildContext(pc.OriginalQuery, ans.Category, false))
	}

	filtered := clarify.Refilter(pc, ans)
	if len(filtered) == 0 {
		o.clarify.Clear(sessionID)
		return o.reply(ctx, sessionID, core.SearchResult{Intent: core.IntentNoResults})
	}

	qc := search.BuildContext(pc.OriginalQuery, pc.OriginalQuery, false)
	qc = qc.MergeQualifier(ans.Qualifier)

	scored := o.scorer.ScoreAll(qc, filtered)

	if amb, needed := clarify.CheckNeeded(qc, scored); needed {
		o.clarify.Raise(sessionID, qc.NormalizedQuery, amb.Dimension, filtered)
		return o.reply(ctx, sessionID, core.SearchResult{
			Intent:                core.IntentClarificationNeeded,
			ClarificationQuestion: clarify.Question(qc.PartName(), amb),
		})
	}

	o.clarify.Clear(sessionID)
	if qc.PartType != "" {
		o.tracker.SetLastPart(sessionID, qc.PartType)
	}
	return o.reply(ctx, sessionID, core.SearchResult{
		Intent:   core.IntentProductsFound,
		Products: search.Select(qc, scored),
	})
}

// reply records a compact assistant line in the history and passes the
// result through. History failures after a computed answer are logged, not
// surfaced: the user already has their result.
func (o *Orchestrator) reply(ctx context.Context, sessionID string, result core.SearchResult) (core.SearchResult, error) {
	content := string(result.Intent)
	if result.ClarificationQuestion != "" {
		content = result.ClarificationQuestion
	}
	if err := o.messages.AddMessage(ctx, sessionID, core.Message{Role: core.RoleAssistant, Content: content}); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save assistant message")
	}
	return result, nil
}
