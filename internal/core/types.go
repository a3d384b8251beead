package core

const (
	BotName          = "PartsBot"
	BotUserAgent     = "PartsBot/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/partsbot"
	BotVersion       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Intent describes the shape of the answer the orchestrator settled on.
type Intent string

const (
	IntentProductsFound       Intent = "PRODUCTS_FOUND"
	IntentNoResults           Intent = "NO_RESULTS"
	IntentClarificationNeeded Intent = "CLARIFICATION_NEEDED"
	IntentModelMismatch       Intent = "MODEL_MISMATCH"
	IntentGreeting            Intent = "GREETING"
	IntentThanks              Intent = "THANKS"
)

// Part is a read snapshot of one catalog row. The store owns the data;
// the search pipeline never mutates it.
type Part struct {
	ID          int64    `json:"id"`
	Designation string   `json:"designation"`
	Reference   string   `json:"reference"`
	Stock       int      `json:"stock"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// ScoredPart pairs a candidate with its relevance score for one query.
type ScoredPart struct {
	Part
	Score int `json:"score"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SearchResult is the structured answer handed to the templating layer.
// Rendering prose out of it is the transport's problem.
type SearchResult struct {
	Intent                Intent       `json:"intent"`
	Products              []ScoredPart `json:"products,omitempty"`
	ClarificationQuestion string       `json:"clarification_question,omitempty"`
	MismatchedModel       string       `json:"mismatched_model,omitempty"`
}
