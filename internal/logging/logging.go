package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level, encoding and destinations of the logger.
type Options struct {
	Level    string
	Encoding string
	Outputs  []string
}

// syslogLevels maps syslog style names, as accepted by SYSTEMD_LOG_LEVEL, to zap levels.
var syslogLevels = map[string]zapcore.Level{
	"emerg":   zapcore.FatalLevel,
	"alert":   zapcore.FatalLevel,
	"crit":    zapcore.DPanicLevel,
	"err":     zapcore.ErrorLevel,
	"warning": zapcore.WarnLevel,
	"notice":  zapcore.InfoLevel,
	"7":       zapcore.DebugLevel,
	"6":       zapcore.InfoLevel,
	"5":       zapcore.InfoLevel,
	"4":       zapcore.WarnLevel,
	"3":       zapcore.ErrorLevel,
}

// ParseLevel accepts zap level names and syslog style names or numbers.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	if lvl, ok := syslogLevels[name]; ok {
		return lvl, nil
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// New creates a production-ready structured logger. The console encoding is
// the default since the logger mostly ends up on the boot console or in kmsg.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if len(opts.Outputs) > 0 {
		cfg.OutputPaths = opts.Outputs
		cfg.ErrorOutputPaths = opts.Outputs
	}

	logger, err := cfg.Build(zap.Fields(zap.String("component", "vconsole-setup")))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
