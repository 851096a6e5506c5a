// Package logger provides a structured logging interface for applications.
package logger

import (
	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	messageKey = "msg"
	levelKey   = "level"
	nameKey    = "logger"
	timeKey    = "time"

	encPretty = "pretty"
	encJSON   = "json"

	// OutputStderr writes log entries to standard error.
	OutputStderr = "stderr"
	// OutputStdout writes log entries to standard output.
	OutputStdout = "stdout"
)

// Config defines configuration options for the logger.
type Config struct {
	// Level specifies the minimum log level to emit.
	// Valid values are: "debug", "info", "warn", "error"
	// Default is "info".
	Level string `yaml:"level" validate:"oneof=debug info warn error" default:"info"`

	// Encoding specifies the log format.
	// Valid values are: "json", "pretty"
	// Default is "pretty".
	//
	// When set to "pretty", the logger prints a colored header line per entry
	// followed by the entry's fields as indented JSON.
	//
	// When set to "json", the logger will produce compact JSON logs suitable
	// for log processing systems.
	Encoding string `yaml:"encoding" validate:"oneof=json pretty" default:"pretty"`

	// Output selects the stream log entries are written to.
	// Valid values are: "stderr", "stdout"
	// Default is "stderr", which keeps stdout free for readouts.
	Output string `yaml:"output" validate:"oneof=stderr stdout" default:"stderr"`

	// Disable creates no-op logger. Useful in testing environments. Default is false.
	Disable bool `yaml:"disable" default:"false"`
}

// withDefaults fills empty fields for configs built in code rather than loaded.
func (c Config) withDefaults() Config {
	if c.Encoding == "" {
		c.Encoding = encPretty
	}
	if c.Output == "" {
		c.Output = OutputStderr
	}
	return c
}

// getZapConfig converts the logger Config to a zap.Config.
func (c Config) getZapConfig() (*zap.Config, error) {
	zapLevel := zap.NewAtomicLevel()

	err := zapLevel.UnmarshalText([]byte(c.Level))
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if c.Encoding != encPretty && c.Encoding != encJSON {
		return nil, errx.New("[logger]: unknown encoding", errx.WithDetails(errx.D{"encoding": c.Encoding}))
	}

	if c.Output != OutputStderr && c.Output != OutputStdout {
		return nil, errx.New("[logger]: unknown output", errx.WithDetails(errx.D{"output": c.Output}))
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     messageKey,
		LevelKey:       levelKey,
		NameKey:        nameKey,
		TimeKey:        timeKey,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	zapConfig := zap.Config{
		Level:            zapLevel,
		OutputPaths:      []string{c.Output},
		ErrorOutputPaths: []string{OutputStderr},
		Encoding:         encJSON,
		EncoderConfig:    encoderConfig,
	}

	return &zapConfig, nil
}
