// Package config provides configuration management for the concerto CLI.
//
// Values are layered from lowest to highest precedence: built-in defaults,
// concerto.yaml (or concerto.yml), CONCERTO_* environment variables and
// explicitly set flags.
package config

// Default configuration values.
const (
	DefaultLocale = "en"
	DefaultOutput = OutputText
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all CLI configuration options.
type Config struct {
	// Locale of generated vocabulary documents
	Locale string `koanf:"locale"`
	// OutputDir receives generated files. Empty means the current directory
	// for extract and stdout for decorate.
	OutputDir        string `koanf:"output_dir"`
	Output           string `koanf:"output"`
	Validate         bool   `koanf:"validate"`
	ValidateCommands bool   `koanf:"validate_commands"`
	RemoveDecorators bool   `koanf:"remove_decorators"`
	Verbose          bool   `koanf:"verbose"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Locale: DefaultLocale,
		Output: DefaultOutput,
	}
}

// IsJSON reports whether machine-readable output was requested.
func (c *Config) IsJSON() bool {
	return c.Output == OutputJSON
}
