package tracing

import "time"

const (
	reconnectionPeriod = 30 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// Config holds the configuration for exporting readout spans.
// It is typically loaded from the run's YAML config.
type Config struct {
	// Enabled turns on span export. When false a no-op tracer is installed and
	// no spans are collected or exported.
	Enabled bool `yaml:"enabled"`

	// SampleRate determines the sampling rate for traces.
	// It should be a value between 0.0 (no traces) and 1.0 (all traces).
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"gte=0,lte=1"`

	// ExporterHost is the hostname or IP address of the OTLP collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_if=Enabled true"`

	// ExporterPort is the gRPC port of the OTLP collector.
	ExporterPort int `yaml:"exporter_port" default:"4317"`

	// Tags is a map of custom key-value pairs added as resource attributes to all spans.
	Tags map[string]string `yaml:"tags"`
}
