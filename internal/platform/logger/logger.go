package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ZeroLogger implementa Logger sobre zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stdout.
	Output io.Writer
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	ctx := zerolog.New(out).Level(opts.Level.zerolog()).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

// Nop descarta todo (tests).
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	ctx := l.zl.With()
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		ctx = ctx.Interface(k, v)
	}
	return &ZeroLogger{zl: ctx.Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.log(l.zl.Debug(), msg, fields) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.log(l.zl.Info(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.log(l.zl.Warn(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.log(l.zl.Error(), msg, fields) }

func (l *ZeroLogger) log(ev *zerolog.Event, msg string, fields map[string]any) {
	// ev es nil cuando el nivel está deshabilitado
	if ev == nil {
		return
	}
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok {
			ev = ev.AnErr(k, err)
			continue
		}
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
