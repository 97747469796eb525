package sendmatchsummary

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
	RunnersUp    int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "matches@example.com",
		RunnersUp:    2,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.EmailEnabled && c.FromEmail == "" {
		return fmt.Errorf("from_email is required when email is enabled")
	}
	if len(c.SenderID) > 11 {
		return fmt.Errorf("sender_id must be at most 11 characters")
	}
	if c.RunnersUp < 0 {
		return fmt.Errorf("runners_up must not be negative")
	}
	return nil
}
