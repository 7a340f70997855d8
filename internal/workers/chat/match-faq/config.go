// internal/workers/chat/match-faq/config.go
package matchfaq

import "time"

type Config struct {
	Timeout    time.Duration
	MinOverlap int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MinOverlap: 2,
	}
}
