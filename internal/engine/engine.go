// internal/engine/engine.go
package engine

const (
	// SourceContextual through SourceDefault name the strategies in reply
	// order of priority.
	SourceContextual     = "contextual"
	SourceKnowledgeBase  = "knowledge_base"
	SourceSpecificIntent = "specific_intent"
	SourceExpandedIntent = "expanded_intent"
	SourceDefault        = "default"

	contextualConfidence = 0.8
	defaultConfidence    = 0.1

	defaultResponse = "Je ne suis pas sûr de comprendre votre demande. Pouvez-vous reformuler ou préciser votre question ?"
	defaultCategory = "general"
)

// strategy is one attempt at answering the turn. A nil result means "no
// match", which hands the turn to the next strategy in the chain.
type strategy struct {
	name string
	fn   func(q Query, expanded ExpandedIntent) *Reply
}

// Engine answers chat turns from its immutable catalog snapshots. One Engine
// serves all sessions concurrently; every call only reads the snapshots and
// its own Query.
type Engine struct {
	kb         []KnowledgeEntry
	strategies []strategy
}

// New builds an engine over a private copy of the knowledge base. The compiled
// intent and group catalogs are package-level and shared by all engines.
func New(kb []KnowledgeEntry) *Engine {
	snapshot := make([]KnowledgeEntry, len(kb))
	copy(snapshot, kb)

	e := &Engine{kb: snapshot}
	e.strategies = []strategy{
		{SourceContextual, e.tryContextual},
		{SourceKnowledgeBase, e.tryKnowledgeBase},
		{SourceSpecificIntent, e.trySpecificIntent},
		{SourceExpandedIntent, e.tryExpandedIntent},
	}
	return e
}

// Respond runs the strategy chain for one turn, first success wins. The reply
// always carries the turn's persona, category attributions, and expanded
// intent view, whichever strategy produced the response text.
func (e *Engine) Respond(q Query) Reply {
	expanded := ExpandIntentDetection(q.Utterance, q.Features)

	var reply Reply
	for _, s := range e.strategies {
		if r := s.fn(q, expanded); r != nil {
			reply = *r
			reply.Source = s.name
			break
		}
	}
	if reply.Source == "" {
		reply = Reply{
			Response:   defaultResponse,
			Category:   defaultCategory,
			Confidence: defaultConfidence,
			Source:     SourceDefault,
		}
	}

	reply.UserType = DetermineUserType(q.Utterance)
	reply.Categories = AnalyzeCategories(q.Utterance, q.Features)
	reply.Expanded = &expanded
	return reply
}

func (e *Engine) tryContextual(q Query, _ ExpandedIntent) *Reply {
	ctx := GenerateContextualResponse(q.Utterance, q.Flow)
	if ctx == nil {
		return nil
	}
	return &Reply{
		Response:   ctx.Response,
		Category:   ctx.Category,
		Confidence: contextualConfidence,
	}
}

func (e *Engine) tryKnowledgeBase(q Query, _ ExpandedIntent) *Reply {
	match := FindBestAnswer(q.Utterance, q.Features, e.kb, q.ContextCategories)
	if match == nil {
		return nil
	}
	return &Reply{
		Response:   match.Response,
		Category:   string(match.Category),
		Confidence: match.Confidence,
	}
}

func (e *Engine) trySpecificIntent(q Query, _ ExpandedIntent) *Reply {
	match := DetectSpecificIntent(q.Utterance, q.Features)
	if match == nil {
		return nil
	}
	response, ok := intentResponses[match.Intent]
	if !ok {
		return nil
	}
	return &Reply{
		Response:   response,
		Category:   string(match.Intent),
		Confidence: match.Confidence,
	}
}

func (e *Engine) tryExpandedIntent(_ Query, expanded ExpandedIntent) *Reply {
	if expanded.MainIntent == unknownIntent {
		return nil
	}
	response, ok := groupResponses[IntentGroup(expanded.MainIntent)]
	if !ok {
		return nil
	}
	return &Reply{
		Response:   response,
		Category:   expanded.MainIntent,
		Confidence: expanded.Confidence,
	}
}
