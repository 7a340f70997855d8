// internal/models/ticket.go
package models

import "time"

// SupportTicket is an escalated conversation handed to a human agent.
type SupportTicket struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"sessionId" db:"session_id"`
	UserID     string    `json:"userId,omitempty" db:"user_id"`
	UserType   string    `json:"userType" db:"user_type"`
	Reason     string    `json:"reason" db:"reason"`
	Transcript string    `json:"transcript" db:"transcript"`
	Status     string    `json:"status" db:"status"` // "open", "assigned", "closed"
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
