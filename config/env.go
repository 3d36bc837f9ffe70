package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexferrari88/minigrep/utils"
)

// EnvPrefix is prepended to every environment key minigrep reads.
const EnvPrefix = "MINIGREP_"

// EnvLookup returns a getenv function backed by the process environment and,
// when dotenvPath is set, the variables in that .env file. The process
// environment wins. A missing .env file is only an error when mustExist is set.
func EnvLookup(dotenvPath string, mustExist bool) (func(string) string, error) {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist) && !mustExist:
		default:
			return nil, fmt.Errorf("read env file %s: %w", dotenvPath, err)
		}
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}, nil
}

// ApplyEnv overrides cfg with every MINIGREP_* variable getenv returns.
// Empty values are ignored. All malformed values are reported together.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	var errs []error

	lookup := func(key string) (string, bool) {
		raw := strings.TrimSpace(getenv(EnvPrefix + key))
		return raw, raw != ""
	}
	setString := func(target *string, key string) {
		if raw, ok := lookup(key); ok {
			*target = raw
		}
	}
	setBool := func(target *bool, key string) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: invalid boolean %q", EnvPrefix, key, raw))
			return
		}
		*target = v
	}
	setInt := func(target *int, key string) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, raw))
			return
		}
		*target = v
	}

	setString(&cfg.Pattern, "PATTERN")
	setString(&cfg.File, "FILE")
	setBool(&cfg.IgnoreCase, "IGNORE_CASE")
	setBool(&cfg.Regex, "REGEX")
	// The raw value is kept so a replacement may start or end with spaces.
	if raw := getenv(EnvPrefix + "SUBSTITUTE"); raw != "" {
		value := raw
		cfg.Substitute = &value
	}
	setBool(&cfg.LineNumber, "LINE_NUMBER")
	setBool(&cfg.Recursive, "RECURSIVE")
	setInt(&cfg.From, "FROM")
	setInt(&cfg.Until, "UNTIL")
	setInt(&cfg.Jobs, "JOBS")
	setBool(&cfg.Gitignore, "GITIGNORE")
	if raw, ok := lookup("EXCLUDE_DIRS"); ok {
		cfg.ExcludeDirs = utils.SplitAndTrim(raw)
	}
	setString(&cfg.Color, "COLOR")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	return errors.Join(errs...)
}
