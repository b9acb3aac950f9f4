package funnel

import "fmt"

// Config is a serialisable representation of the dispatcher configuration.
// The zero-value is useful - an unset MaxConcurrent means unbounded.
type Config struct {
	// MaxConcurrent caps the number of simultaneously running tasks.
	// A value <= 0 means unbounded: submissions always start immediately.
	MaxConcurrent int `json:"maxConcurrent" yaml:"maxConcurrent"`

	// QueueCapacity pre-sizes the pending backlog. The backlog grows
	// beyond this value on demand.
	QueueCapacity int `json:"queueCapacity" yaml:"queueCapacity"`
}

// DefaultConfig returns a Config populated with package defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrent: 0,
		QueueCapacity: 16,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queueCapacity must be >= 0")
	}
	return nil
}
