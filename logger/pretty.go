package logger

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // palette is a static lookup shared across encoder instances.
var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel:  color.New(color.FgCyan),
	zapcore.InfoLevel:   color.New(color.FgGreen),
	zapcore.WarnLevel:   color.New(color.FgYellow),
	zapcore.ErrorLevel:  color.New(color.FgRed, color.Bold),
	zapcore.DPanicLevel: color.New(color.FgRed, color.Bold),
	zapcore.PanicLevel:  color.New(color.FgRed, color.Bold),
	zapcore.FatalLevel:  color.New(color.FgMagenta, color.Bold),
}

//nolint:gochecknoglobals // shared styles for the header line.
var (
	timeColor = color.New(color.Faint)
	nameColor = color.New(color.FgBlue)
)

// prettyEncoder wraps zap's JSON encoder and re-renders each entry as a
// colored header line followed by its fields as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
}

// Clone ensures derived loggers keep the pretty encoder wrapper.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) *prettyEncoder {
	return &prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg)}
}

// newPrettyLogger creates a pretty logger writing to sink, without caller tracking.
func newPrettyLogger(cfg *zap.Config, sink zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(newPrettyEncoder(cfg.EncoderConfig), sink, cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(zapcore.AddSync(color.Error))))
}

// EncodeEntry formats a log entry with pretty printing and colorization.
func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if unmarshalErr := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); unmarshalErr != nil {
		// keep the raw JSON line
		return buf, nil
	}

	buf.Reset()
	buf.AppendString(header(entry))
	buf.AppendByte('\n')

	extra := filterReserved(payload)
	if len(extra) == 0 {
		return buf, nil
	}

	pretty, err := json.MarshalIndent(extra, "  ", "  ")
	if err != nil {
		return nil, err
	}
	buf.AppendString("  ")
	_, _ = buf.Write(pretty)
	buf.AppendByte('\n')

	return buf, nil
}

func header(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	level := entry.Level.CapitalString()
	if c, ok := levelColors[entry.Level]; ok {
		level = c.Sprint(level)
	}

	line := timeColor.Sprint("["+ts.Format(time.DateTime)+"]") + " " + level
	if entry.LoggerName != "" {
		line += " " + nameColor.Sprint(entry.LoggerName)
	}
	if entry.Message != "" {
		line += " " + entry.Message
	}
	return line
}

func filterReserved(payload map[string]any) map[string]any {
	extra := make(map[string]any, len(payload))
	for k, v := range payload {
		switch k {
		case timeKey, levelKey, messageKey, nameKey:
			continue
		default:
			extra[k] = v
		}
	}
	return extra
}
