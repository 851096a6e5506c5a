package readout

import (
	"context"

	"github.com/rise-and-shine/flatbread/step"
	"github.com/rise-and-shine/flatbread/table"
)

// ShapeWrapper writes the shape of the step's resulting table.
type ShapeWrapper[I any, R table.Tabular] struct {
	step.Transparent

	printer    printer
	next       step.Step[I, R]
	stepName   string
	tableLabel string
}

// Shape returns a decorator that, after the step returns a table, writes
// "<tableLabel> (rows, cols)". The label is written even when empty, so the
// readout then starts with a space.
func Shape[I any, R table.Tabular](tableLabel string, opts ...Option) step.WrapFunc[I, R] {
	return func(next step.Step[I, R]) step.Step[I, R] {
		return &ShapeWrapper[I, R]{
			Transparent: step.Inherit(next),
			printer:     newPrinter("shape", opts),
			next:        next,
			stepName:    step.NameOf(next),
			tableLabel:  tableLabel,
		}
	}
}

func (w *ShapeWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	result, err := w.next.Execute(ctx, input)
	if err != nil {
		return result, err
	}

	if isNil(result) {
		return result, notTabular(w.stepName)
	}

	if emitErr := w.printer.emit(ctx, w.tableLabel, result.Shape().String()); emitErr != nil {
		return result, emitErr
	}

	return result, nil
}
