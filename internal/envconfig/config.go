// Package envconfig reads the BORN_* environment variables that seed the
// command line tool and resolver contexts.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/dtypes/internal/backends"
	"github.com/born-ml/dtypes/internal/dtype"
	"github.com/born-ml/dtypes/internal/logutil"
)

// Var returns an environment variable stripped of whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Backend returns the backend selected by BORN_BACKEND. Unknown names fall
// back to the default backend with a warning.
func Backend() string {
	s := strings.ToLower(Var("BORN_BACKEND"))
	if s == "" {
		return backends.Default
	}
	if !backends.Known(s) {
		slog.Warn("unknown backend, using default", "key", "BORN_BACKEND", "value", s, "default", backends.Default)
		return backends.Default
	}
	return s
}

// Dtype returns a getter for a dtype-valued variable. Unset or invalid values
// yield the zero Dtype; invalid ones are logged.
func Dtype(key string) func() dtype.Dtype {
	return func() dtype.Dtype {
		s := Var(key)
		if s == "" {
			return ""
		}
		d, err := dtype.Parse(s)
		if err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", key, "value", s)
			return ""
		}
		return d
	}
}

var (
	// DefaultDtype seeds the general default stack.
	DefaultDtype = Dtype("BORN_DEFAULT_DTYPE")
	// DefaultFloatDtype seeds the float default stack.
	DefaultFloatDtype = Dtype("BORN_DEFAULT_FLOAT_DTYPE")
	// DefaultIntDtype seeds the int default stack.
	DefaultIntDtype = Dtype("BORN_DEFAULT_INT_DTYPE")
)

// LogLevel returns the log level set by BORN_DEBUG.
// Values: 0/false = INFO (default), 1/true = DEBUG, 2 = TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("BORN_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BORN_BACKEND":             {"BORN_BACKEND", Backend(), "Backend used to resolve dtypes (default: cpu)"},
		"BORN_DEFAULT_DTYPE":       {"BORN_DEFAULT_DTYPE", DefaultDtype(), "Initial general default dtype"},
		"BORN_DEFAULT_FLOAT_DTYPE": {"BORN_DEFAULT_FLOAT_DTYPE", DefaultFloatDtype(), "Initial default floating-point dtype"},
		"BORN_DEFAULT_INT_DTYPE":   {"BORN_DEFAULT_INT_DTYPE", DefaultIntDtype(), "Initial default integer dtype"},
		"BORN_DEBUG":               {"BORN_DEBUG", LogLevel(), "Show additional debug information (e.g. BORN_DEBUG=1)"},
	}
}

// Values returns the configuration as strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = formatValue(v.Value)
	}
	return vals
}

func formatValue(v any) string {
	switch x := v.(type) {
	case slog.Level:
		if x == logutil.LevelTrace {
			return "TRACE"
		}
		return x.String()
	case dtype.Dtype:
		return x.String()
	case string:
		return x
	default:
		return ""
	}
}
