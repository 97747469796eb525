package validatequizinput

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout time.Duration
	// FailOnInvalid throws INVALID_QUIZ_INPUT instead of completing with
	// valid=false. Process models that branch on the flag leave it off.
	FailOnInvalid bool
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
