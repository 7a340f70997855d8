// internal/workers/chat/escalate-support/models.go
package escalatesupport

type Input struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Reason    string `json:"reason"`
}

type Output struct {
	TicketID  string `json:"ticketId"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	EmailSent bool   `json:"emailSent"`
	SMSSent   bool   `json:"smsSent"`
	CreatedAt string `json:"createdAt"`
}

const (
	StatusOpen = "open"

	ReasonRepeatedDefaults = "repeated_defaults"
	ReasonUserRequest      = "user_request"
	ReasonDissatisfaction  = "dissatisfaction"
)
