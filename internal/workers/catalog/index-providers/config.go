package indexproviders

import (
	"fmt"
	"time"
)

type Config struct {
	IndexName string
	Timeout   time.Duration
	// CreateIndex puts the mapping before the first bulk request when the
	// index does not exist yet.
	CreateIndex bool
}

func DefaultConfig() *Config {
	return &Config{
		IndexName:   "training-providers",
		Timeout:     30 * time.Second,
		CreateIndex: true,
	}
}

func (c *Config) Validate() error {
	if c.IndexName == "" {
		return fmt.Errorf("index_name is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
