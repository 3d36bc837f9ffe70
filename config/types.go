package config

// Config is the fully resolved configuration of one minigrep run.
type Config struct {
	// Pattern is the literal text or regular expression to search for
	Pattern string `yaml:"pattern" toml:"pattern"`

	// File is the file to scan, or the file name to look for in recursive mode
	File string `yaml:"file" toml:"file"`

	// IgnoreCase enables case-insensitive literal matching
	IgnoreCase bool `yaml:"ignore_case" toml:"ignore_case"`

	// Regex interprets Pattern as a regular expression
	Regex bool `yaml:"regex" toml:"regex"`

	// Substitute is the replacement for matches in regex mode (nil = no substitution)
	Substitute *string `yaml:"substitute" toml:"substitute"`

	// LineNumber prefixes matches with their line number
	LineNumber bool `yaml:"line_number" toml:"line_number"`

	// Recursive searches every file named File below the working directory
	Recursive bool `yaml:"recursive" toml:"recursive"`

	// From is the first line eligible for matching (0 = first line)
	From int `yaml:"from" toml:"from"`

	// Until is the last line eligible for matching (0 = last line)
	Until int `yaml:"until" toml:"until"`

	// Jobs is the number of scan workers in recursive mode (0 = number of CPUs)
	Jobs int `yaml:"jobs" toml:"jobs"`

	// Gitignore skips paths ignored by .gitignore files in recursive mode
	Gitignore bool `yaml:"gitignore" toml:"gitignore"`

	// ExcludeDirs lists directory names skipped in recursive mode
	ExcludeDirs []string `yaml:"exclude_dirs" toml:"exclude_dirs"`

	// Color controls coloured output: auto, always or never
	Color string `yaml:"color" toml:"color"`

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// DefaultConfigFile is read when present and no --config is given.
const DefaultConfigFile = ".minigrep.yaml"

// Default returns a Config with the built-in defaults.
func Default() Config {
	return Config{
		Color:    "auto",
		LogLevel: "warn",
	}
}

// Substituting reports whether a replacement was configured.
func (c Config) Substituting() bool {
	return c.Substitute != nil
}

// Replacement returns the configured replacement, or "" when there is none.
func (c Config) Replacement() string {
	if c.Substitute == nil {
		return ""
	}
	return *c.Substitute
}
