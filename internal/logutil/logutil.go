// Package logutil builds the slog loggers used by the command line tool and
// handed to resolver contexts.
package logutil

import (
	"io"
	"log/slog"
	"path/filepath"
)

// LevelTrace is the most verbose level, below slog.LevelDebug.
const LevelTrace slog.Level = -8

// NewLogger returns a text logger writing to w at level. Source locations are
// shortened to the file base name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if attr.Value.Any().(slog.Level) == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				if source, ok := attr.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return attr
		},
	}))
}
