package readout_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rise-and-shine/flatbread/readout"
	"github.com/rise-and-shine/flatbread/step"
)

// parseTimerLine splits "label name seconds" and parses the seconds.
func parseTimerLine(t *testing.T, line string) (string, string, float64) {
	t.Helper()

	fields := strings.Split(strings.TrimSuffix(line, "\n"), " ")
	require.Len(t, fields, 3, "readout %q", line)

	seconds, err := strconv.ParseFloat(fields[2], 64)
	require.NoError(t, err)

	return fields[0], fields[1], seconds
}

func TestTimer(t *testing.T) {
	var out bytes.Buffer
	wrapped := readout.Timer[string, int]("T", readout.WithWriter(&out))(step.Func[string, int](slowAnswer))

	result, err := wrapped.Execute(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	label, name, seconds := parseTimerLine(t, out.String())
	assert.Equal(t, "T", label)
	assert.Equal(t, "slowAnswer", name)
	assert.GreaterOrEqual(t, seconds, 0.1)
	assert.True(t, strings.HasPrefix(out.String(), "T slowAnswer "))
}

func TestTimerUsesDescribedName(t *testing.T) {
	var out bytes.Buffer
	orig := step.New("load_orders", "", step.Func[string, int](answer))

	// the printout in between must not hide the load step name
	wrapped := step.Chain(orig,
		readout.Timer[string, int]("orders", readout.WithWriter(&out)),
		readout.Printout[string, int]("loading", readout.Before, readout.WithWriter(&bytes.Buffer{})),
	)

	_, err := wrapped.Execute(t.Context(), "")
	require.NoError(t, err)

	label, name, seconds := parseTimerLine(t, out.String())
	assert.Equal(t, "orders", label)
	assert.Equal(t, "load_orders", name)
	assert.GreaterOrEqual(t, seconds, 0.0)
}

func TestTimerEmptyLabel(t *testing.T) {
	var out bytes.Buffer
	wrapped := readout.Timer[string, int]("", readout.WithWriter(&out))(step.Func[string, int](answer))

	_, err := wrapped.Execute(t.Context(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), " answer "))
}

func TestTimerStepFailure(t *testing.T) {
	var out bytes.Buffer
	wrapped := readout.Timer[string, int]("T", readout.WithWriter(&out))(step.Func[string, int](failing))

	_, err := wrapped.Execute(t.Context(), "")
	assert.Same(t, errBoom, err)
	assert.Empty(t, out.String())
}

func TestTimerWriteFailure(t *testing.T) {
	wrapped := readout.Timer[string, int]("T", readout.WithWriter(failingWriter{}))(step.Func[string, int](answer))

	result, err := wrapped.Execute(t.Context(), "")
	requireCode(t, err, readout.CodeWriteFailed)
	assert.Equal(t, 42, result)
}

func TestTimerSpanEvent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	ctx, span := provider.Tracer("readout_test").Start(t.Context(), "build")

	wrapped := readout.Timer[string, int]("orders", readout.WithWriter(&bytes.Buffer{}))(step.Func[string, int](answer))
	_, err := wrapped.Execute(ctx, "")
	require.NoError(t, err)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "readout.timer", events[0].Name)

	attrs := attribute.NewSet(events[0].Attributes...)
	table, ok := attrs.Value("table")
	require.True(t, ok)
	assert.Equal(t, "orders", table.AsString())

	name, ok := attrs.Value("step")
	require.True(t, ok)
	assert.Equal(t, "answer", name.AsString())

	_, ok = attrs.Value("elapsed_seconds")
	assert.True(t, ok)
}

func TestTimerPreservesIdentity(t *testing.T) {
	orig := step.New("load_orders", "Loads the orders table.", step.Func[string, int](answer))
	wrapped := readout.Timer[string, int]("T")(orig)

	assert.Equal(t, "load_orders", step.NameOf(wrapped))
	assert.Equal(t, "Loads the orders table.", step.DocOf(wrapped))
}
