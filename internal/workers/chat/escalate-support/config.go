// internal/workers/chat/escalate-support/config.go
package escalatesupport

import "time"

type Config struct {
	Timeout      time.Duration
	AWSRegion    string
	EmailEnabled bool
	FromEmail    string
	SupportTo    string
	SMSEnabled   bool
	OnCallPhone  string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   15 * time.Second,
		AWSRegion: "eu-west-1",
	}
}
