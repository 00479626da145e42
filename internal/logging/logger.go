// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and encoder. Dev switches to the colored console
// encoder and defaults the level to debug.
type Options struct {
	Level string
	Dev   bool
}

// ParseLevel accepts debug, info, warn/warning and error. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing to stdout.
func New(opts Options) (*zap.Logger, error) {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(opts Options, w io.Writer) (*zap.Logger, error) {
	levelStr := opts.Level
	if levelStr == "" && opts.Dev {
		levelStr = "debug"
	}
	lvl, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if opts.Dev {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", "pgmaint")), nil
}
