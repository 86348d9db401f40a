// Package config provides configuration management for the jspy CLI.
//
// Values are layered from defaults, a jspy.yaml file, JSPY_* environment
// variables and explicitly set flags, in increasing order of precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Source is the AST document rendered when no file arguments are given.
	Source       string `koanf:"source"`
	OutDir       string `koanf:"out_dir"`
	Workers      int    `koanf:"workers"`
	Strict       bool   `koanf:"strict"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultWorkers = 4
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "jspy.yaml"
	ConfigFileNameAlt = "jspy.yml"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "JSPY_"

// Default returns a Config holding only default values.
func Default() *Config {
	return &Config{
		Workers:      DefaultWorkers,
		OutputFormat: DefaultOutput,
	}
}
