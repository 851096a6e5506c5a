package readout

import (
	"context"

	"github.com/rise-and-shine/flatbread/step"
)

// When selects the moment a Printout message is written.
type When string

const (
	// Before writes the message before the step runs.
	Before When = "before"
	// After writes the message once the step has returned without error.
	After When = "after"
)

// PrintoutWrapper writes a fixed message around a step.
type PrintoutWrapper[I, R any] struct {
	step.Transparent

	printer printer
	next    step.Step[I, R]
	message string
	when    When
}

// Printout returns a decorator that writes message before or after the step.
//
// With Before the message is written even if the step then fails. With After it
// is written only if the step succeeds. Any other value of when writes nothing.
func Printout[I, R any](message string, when When, opts ...Option) step.WrapFunc[I, R] {
	return func(next step.Step[I, R]) step.Step[I, R] {
		p := newPrinter("printout", opts)

		if when != Before && when != After {
			// TODO: reject unknown values once no caller depends on the silent fallback.
			p.logger.With("when", string(when), "step", step.NameOf(next)).
				Warn("unknown printout timing, message will never be written")
		}

		return &PrintoutWrapper[I, R]{
			Transparent: step.Inherit(next),
			printer:     p,
			next:        next,
			message:     message,
			when:        when,
		}
	}
}

func (w *PrintoutWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	if w.when == Before {
		if err := w.printer.emit(ctx, w.message); err != nil {
			var zero R
			return zero, err
		}
	}

	result, err := w.next.Execute(ctx, input)
	if err != nil {
		return result, err
	}

	if w.when == After {
		if emitErr := w.printer.emit(ctx, w.message); emitErr != nil {
			return result, emitErr
		}
	}

	return result, nil
}
