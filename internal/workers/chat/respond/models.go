// internal/workers/chat/respond/models.go
package chatrespond

type Input struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
}

type Output struct {
	SessionID       string  `json:"sessionId"`
	Response        string  `json:"response"`
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence"`
	Source          string  `json:"source"`
	UserType        string  `json:"userType"`
	MainIntent      string  `json:"mainIntent"`
	CompositeIntent bool    `json:"compositeIntent"`
	NeedsEscalation bool    `json:"needsEscalation"`
}
