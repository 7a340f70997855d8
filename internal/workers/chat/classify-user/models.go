// internal/workers/chat/classify-user/models.go
package classifyuser

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	UserType         string         `json:"userType"`
	Categories       []string       `json:"categories"`
	MainIntent       string         `json:"mainIntent"`
	Confidence       float64        `json:"confidence"`
	CompositeIntent  bool           `json:"compositeIntent"`
	SecondaryIntents []ScoredIntent `json:"secondaryIntents,omitempty"`
}

type ScoredIntent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
