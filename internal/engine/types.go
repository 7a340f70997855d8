// internal/engine/types.go
package engine

import "chatbot-workers/internal/nlp"

// Category is a coarse topical bucket from the fixed taxonomy. The set is
// closed: adding a category means touching the table in catalogs.go and the
// response switch in contextual.go.
type Category string

const (
	CategoryPayment    Category = "payment"
	CategorySecurity   Category = "security"
	CategoryProcess    Category = "process"
	CategoryOnboarding Category = "onboarding"
	CategorySupport    Category = "support"
	CategoryQuality    Category = "quality"
)

// Intent is a fine-grained named user goal from the specific-intent catalog.
type Intent string

const (
	IntentCommandeInfo       Intent = "commande_info"
	IntentPaiementInfo       Intent = "paiement_info"
	IntentProfilModification Intent = "profil_modification"
	IntentSupportTechnique   Intent = "support_technique"
	IntentConseilClients     Intent = "conseil_clients"
	IntentCreationCompte     Intent = "creation_compte"
)

// IntentGroup is the coarser thematic bucket used by the expanded aggregator.
type IntentGroup string

const (
	GroupServiceInquiry  IntentGroup = "service_inquiry"
	GroupProcessQuestion IntentGroup = "process_question"
	GroupPricingInquiry  IntentGroup = "pricing_inquiry"
	GroupComplaint       IntentGroup = "complaint"
	GroupSecurityConcern IntentGroup = "security_concern"
	GroupFeedback        IntentGroup = "feedback"
)

// UserType is the persona attributed to the speaker.
type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeFreelance    UserType = "freelance"
	UserTypeUndetermined UserType = "undetermined"
)

// KnowledgeEntry is one static rule of the knowledge base: keywords mapped to a
// canned answer. Entries are loaded once and never mutated.
type KnowledgeEntry struct {
	Keywords         []string `json:"keywords"`
	RequiredKeywords []string `json:"requiredKeywords,omitempty"`
	Category         Category `json:"category"`
	Response         string   `json:"response"`
}

// MatchResult is a confident knowledge-base hit. A nil result means "no
// confident match", which is a normal outcome, not an error.
type MatchResult struct {
	Response   string   `json:"response"`
	Confidence float64  `json:"confidence"`
	Category   Category `json:"category"`
}

// IntentPattern describes one specific intent: unambiguous regexes tried first,
// weighted keywords as fallback. RequiredWords, when set, is an AND-gate applied
// before fallback scoring; no intent in the current catalog populates it.
type IntentPattern struct {
	Intent        Intent
	Keywords      []string
	Regexes       []string
	RequiredWords []string
}

// IntentMatch is a detected specific intent with its confidence.
type IntentMatch struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// IntentGroupProfile describes one intent group for the expanded aggregator:
// feature keyword sets plus literal key phrases.
type IntentGroupProfile struct {
	Group      IntentGroup
	Nouns      []string
	Verbs      []string
	Topics     []string
	Adjectives []string
	Phrases    []string
}

// ScoredIntent is one ranked secondary intent.
type ScoredIntent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// ExpandedIntent is the result of the broader feature-group aggregation.
type ExpandedIntent struct {
	MainIntent        string         `json:"mainIntent"`
	Confidence        float64        `json:"confidence"`
	SecondaryIntents  []ScoredIntent `json:"secondaryIntents"`
	IsCompositeIntent bool           `json:"isCompositeIntent"`
}

// ContextualReply is a follow-up or feedback response produced from the
// conversation context instead of the matchers.
type ContextualReply struct {
	Response string `json:"response"`
	Category string `json:"category"`
}

// Exchange is one completed turn as the host recorded it. The engine only
// reads exchanges; appending them (and timestamping) is the host's job.
type Exchange struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Category string `json:"category"`
}

// Query is one turn handed to the engine: the raw utterance, its extracted
// features, the session's prior category attributions, and the recorded
// conversation flow.
type Query struct {
	Utterance         string
	Features          nlp.Features
	ContextCategories []string
	Flow              []Exchange
}

// Reply is the engine's answer for one turn, including the session bookkeeping
// the host persists alongside it.
type Reply struct {
	Response   string          `json:"response"`
	Category   string          `json:"category"`
	Confidence float64         `json:"confidence"`
	Source     string          `json:"source"`
	UserType   UserType        `json:"userType"`
	Categories []Category      `json:"categories"`
	Expanded   *ExpandedIntent `json:"expanded,omitempty"`
}
