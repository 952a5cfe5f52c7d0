package cli

import (
	"os"
	"strings"

	"soil-reco/internal/helpers"

	"github.com/rs/zerolog"
)

type Flags struct {
	PurgeCache   bool
	UseCache     bool
	IncludeZeros bool
	Save         bool
	LogLevel     string
}

func constructFlags() Flags {
	return Flags{
		PurgeCache:   false,
		UseCache:     false,
		IncludeZeros: false,
		Save:         false,
		LogLevel:     "info",
	}
}

func GetFlags() Flags {
	flags := constructFlags()
	if HasFlag("--purge-cache") {
		flags.PurgeCache = true
	}
	if HasFlag("--use-cache") {
		flags.UseCache = true
	}
	if HasFlag("--include-zeros") {
		flags.IncludeZeros = true
	}
	if HasFlag("--save") {
		flags.Save = true
	}
	if level, ok := GetFlagValue("--log-level"); ok {
		flags.LogLevel = level
	}

	return flags
}

func HasFlag(flag string) bool {
	return helpers.ContainsStr(os.Args, flag)
}

// GetFlagValue returns the value of a `--flag value` or `--flag=value` pair.
func GetFlagValue(flag string) (string, bool) {
	for i, arg := range os.Args {
		if arg == flag && i+1 < len(os.Args) {
			return os.Args[i+1], true
		}
		if strings.HasPrefix(arg, flag+"=") {
			return strings.TrimPrefix(arg, flag+"="), true
		}
	}
	return "", false
}

// SetLogLevel applies a --log-level flag value to the global zerolog level.
func SetLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
