// main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexferrari88/minigrep/config"
	"github.com/alexferrari88/minigrep/logger"
	"github.com/alexferrari88/minigrep/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type cliFlags struct {
	pattern     string
	file        string
	substitute  string
	insensitive bool
	regex       bool
	number      bool
	recursive   bool
	from        int
	until       int
	jobs        int
	gitignore   bool
	excludeDirs []string
	color       string
	logLevel    string
	configPath  string
	envFile     string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its outcome to an exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitFatal
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	fl := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "minigrep -p PATTERN -f FILE [options]",
		Short: "Search files line by line for a literal or regular-expression pattern",
		Long: `minigrep prints every line of FILE that contains PATTERN.

With --regex the pattern is a regular expression, and --substitute rewrites
each match ($1, $name and ${name} refer to capture groups). --from and --until
restrict matching to an inclusive range of line numbers. With --recursive every
file named FILE below the working directory is scanned in parallel and matches
are prefixed with the file path.

Settings are read, lowest precedence first, from built-in defaults, the config
file (.minigrep.yaml, or --config with .yaml/.yml/.toml), the .env file,
MINIGREP_* environment variables and finally the flags given.

Examples:
  minigrep -p duct -f poem.txt
  minigrep -i -n -p rust -f notes.md
  minigrep -e -p '(?P<y>\d{4})-(?P<m>\d{2})-(?P<d>\d{2})' -s '$m/$d/$y' -f log.txt
  minigrep -r -p TODO -f '*.go' --gitignore`,
		Version:       Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), fl)
			if err != nil {
				return err
			}
			return runSearch(cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.StringVarP(&fl.pattern, "pattern", "p", "", "set pattern to find")
	f.StringVarP(&fl.file, "file", "f", "", "file to search pattern in (file name to look for with --recursive)")
	f.StringVarP(&fl.substitute, "substitute", "s", "", "substitute matches with this (regex mode)")
	f.BoolVarP(&fl.insensitive, "insensitive", "i", false, "case insensitive matching - not valued in case of a regex pattern")
	f.BoolVarP(&fl.regex, "regex", "e", false, "interpret pattern as regular expression")
	f.BoolVarP(&fl.number, "number", "n", false, "show line numbers of matches")
	f.BoolVarP(&fl.recursive, "recursive", "r", false, "search every file named FILE below the working directory")
	f.IntVarP(&fl.from, "from", "a", 0, "start matching at this line number")
	f.IntVarP(&fl.until, "until", "z", 0, "stop matching after this line number (inclusive)")
	f.IntVarP(&fl.jobs, "jobs", "j", 0, "number of files scanned in parallel with --recursive (0 = number of CPUs)")
	f.BoolVar(&fl.gitignore, "gitignore", false, "skip paths ignored by .gitignore files with --recursive")
	f.StringSliceVar(&fl.excludeDirs, "exclude-dir", nil, "directory names to skip with --recursive (repeatable, comma-separated)")
	f.StringVar(&fl.color, "color", "auto", "colour file names and line numbers: auto, always or never")
	f.StringVar(&fl.logLevel, "log-level", logger.DefaultLevel, "diagnostic verbosity: trace, debug, info, warn or error")
	f.StringVar(&fl.configPath, "config", config.DefaultConfigFile, "config file (.yaml, .yml or .toml)")
	f.StringVar(&fl.envFile, "env-file", ".env", "file with MINIGREP_* variables")

	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set, then validates the result.
func resolveConfig(flags *pflag.FlagSet, fl *cliFlags) (config.Config, error) {
	var cfg config.Config
	var err error
	if flags.Changed("config") {
		cfg = config.Default()
		err = config.LoadFile(&cfg, fl.configPath)
	} else {
		cfg, err = config.Load(fl.configPath)
	}
	if err != nil {
		return cfg, &usageError{err: err}
	}

	getenv, err := config.EnvLookup(fl.envFile, flags.Changed("env-file"))
	if err != nil {
		return cfg, &usageError{err: err}
	}
	if err := config.ApplyEnv(&cfg, getenv); err != nil {
		return cfg, &usageError{err: err}
	}

	applyFlags(flags, fl, &cfg)

	if err := config.Validate(&cfg); err != nil {
		return cfg, &usageError{err: err}
	}
	return cfg, nil
}

func applyFlags(flags *pflag.FlagSet, fl *cliFlags, cfg *config.Config) {
	if flags.Changed("pattern") {
		cfg.Pattern = fl.pattern
	}
	if flags.Changed("file") {
		cfg.File = fl.file
	}
	if flags.Changed("substitute") {
		value := fl.substitute
		cfg.Substitute = &value
	}
	if flags.Changed("insensitive") {
		cfg.IgnoreCase = fl.insensitive
	}
	if flags.Changed("regex") {
		cfg.Regex = fl.regex
	}
	if flags.Changed("number") {
		cfg.LineNumber = fl.number
	}
	if flags.Changed("recursive") {
		cfg.Recursive = fl.recursive
	}
	if flags.Changed("from") {
		cfg.From = fl.from
	}
	if flags.Changed("until") {
		cfg.Until = fl.until
	}
	if flags.Changed("jobs") {
		cfg.Jobs = fl.jobs
	}
	if flags.Changed("gitignore") {
		cfg.Gitignore = fl.gitignore
	}
	if flags.Changed("exclude-dir") {
		cfg.ExcludeDirs = fl.excludeDirs
	}
	if flags.Changed("color") {
		cfg.Color = fl.color
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fl.logLevel
	}
}

// runSearch builds the run configuration and executes the scan.
func runSearch(cfg config.Config, stdout, stderr io.Writer) error {
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	runCfg := scanner.RunConfig{
		Match: scanner.MatchOptions{
			Pattern:        cfg.Pattern,
			CaseSensitive:  !cfg.IgnoreCase,
			UseRegex:       cfg.Regex,
			Substitute:     cfg.Substituting(),
			Replacement:    cfg.Replacement(),
			ShowLineNumber: cfg.LineNumber,
			Recursive:      cfg.Recursive,
			WindowStart:    cfg.From,
			WindowEnd:      cfg.Until,
		},
		Target:           cfg.File,
		Workers:          cfg.Jobs,
		RespectGitignore: cfg.Gitignore,
		ExcludeDirs:      cfg.ExcludeDirs,
		Color:            useColor(cfg.Color, stdout),
		Logger:           log,
	}

	if cfg.Substituting() && !cfg.Regex {
		log.Warnf("--substitute only applies together with --regex; matches are printed unchanged")
	}

	summary, err := scanner.Run(runCfg, stdout)
	if err != nil {
		return err
	}
	if len(summary.Failures) > 0 {
		log.Infof("%d of %d files could not be scanned", len(summary.Failures), summary.Files)
	}
	return nil
}

func useColor(mode string, stdout io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return logger.IsTerminal(stdout)
	}
}
