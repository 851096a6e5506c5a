package readout

import (
	"context"
	"time"

	"github.com/rise-and-shine/flatbread/step"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const timerEvent = "readout.timer"

// TimerWrapper writes how long a step took.
type TimerWrapper[I, R any] struct {
	step.Transparent

	printer    printer
	next       step.Step[I, R]
	stepName   string
	tableLabel string
}

// Timer returns a decorator that measures the wall-clock time of the step and
// writes "<tableLabel> <step name> <elapsed seconds>". The step name is the one
// reported by step.NameOf for the undecorated step.
//
// Nothing is written when the step fails. When ctx carries a recording span,
// the measurement is also added to it as a "readout.timer" event.
func Timer[I, R any](tableLabel string, opts ...Option) step.WrapFunc[I, R] {
	return func(next step.Step[I, R]) step.Step[I, R] {
		return &TimerWrapper[I, R]{
			Transparent: step.Inherit(next),
			printer:     newPrinter("timer", opts),
			next:        next,
			stepName:    step.NameOf(next),
			tableLabel:  tableLabel,
		}
	}
}

func (w *TimerWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := w.next.Execute(ctx, input)

	elapsed := time.Since(start).Seconds()

	if err != nil {
		return result, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(timerEvent, trace.WithAttributes(
			attribute.String("table", w.tableLabel),
			attribute.String("step", w.stepName),
			attribute.Float64("elapsed_seconds", elapsed),
		))
	}

	if emitErr := w.printer.emit(ctx, w.tableLabel, w.stepName, formatValue(elapsed)); emitErr != nil {
		return result, emitErr
	}

	return result, nil
}
