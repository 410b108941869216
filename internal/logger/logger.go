// Package logger builds the slog logger the phonebook writes its debug and
// warning records to.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string // debug, info, warn or error
	File   string // append logs to file; "" or "-" is stderr, os.DevNull discards
	Format string // text or json
}

// Logger is a slog.Logger together with the log file it writes to, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New builds a logger from opts. Unusable options fall back to stderr, info
// level and text format; each fallback is logged as a warning once the
// logger exists.
func New(opts Options) *Logger {
	var problems []slog.Attr

	var level slog.Level
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			problems = append(problems, slog.String("level", opts.Level))
			level = slog.LevelInfo
		}
	}

	l := &Logger{}
	var out io.Writer
	switch opts.File {
	case "", "-":
		out = os.Stderr
	case os.DevNull:
		l.Logger = slog.New(slog.DiscardHandler)
		return l
	default:
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			problems = append(problems, slog.String("file", opts.File), slog.Any("err", err))
			out = os.Stderr
		} else {
			l.file = f
			out = f
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(opts.Format) {
	case "json":
		l.Logger = slog.New(slog.NewJSONHandler(out, handlerOpts))
	case "", "text":
		l.Logger = slog.New(slog.NewTextHandler(out, handlerOpts))
	default:
		problems = append(problems, slog.String("format", opts.Format))
		l.Logger = slog.New(slog.NewTextHandler(out, handlerOpts))
	}

	for _, a := range problems {
		l.Warn("ignoring logger option", a.Key, a.Value)
	}
	return l
}

// Close releases the log file. Loggers writing to stderr or nowhere have
// nothing to close.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.Logger = slog.New(slog.DiscardHandler)
	return err
}
