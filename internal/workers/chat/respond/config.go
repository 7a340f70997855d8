// internal/workers/chat/respond/config.go
package chatrespond

import "time"

type Config struct {
	Timeout             time.Duration
	EscalationThreshold int
	MinFAQOverlap       int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             10 * time.Second,
		EscalationThreshold: 3,
		MinFAQOverlap:       2,
	}
}
