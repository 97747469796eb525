package matchproviders

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout time.Duration
	// RunnersUp is how many providers follow the top match in the output.
	RunnersUp int
	// MaxResults caps rankedProviders in the job variables. Zero keeps all.
	MaxResults int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:   5 * time.Second,
		RunnersUp: 2,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.RunnersUp < 0 {
		return fmt.Errorf("runners_up must not be negative")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must not be negative")
	}
	return nil
}
