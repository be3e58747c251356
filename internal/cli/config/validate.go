package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks the configuration and canonicalizes the locale tag.
func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	c.Locale = tag.String()

	c.Output = strings.ToLower(c.Output)
	switch c.Output {
	case "":
		c.Output = DefaultOutput
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q (expected %s or %s)", c.Output, OutputText, OutputJSON)
	}
	return nil
}
