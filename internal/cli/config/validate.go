package config

import (
	"fmt"
	"slices"
)

// ValidOutputFormats lists the accepted values of the output setting.
var ValidOutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidOutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %v)", c.OutputFormat, ValidOutputFormats)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
