package readout

import (
	"context"

	"github.com/rise-and-shine/flatbread/step"
	"github.com/rise-and-shine/flatbread/table"
)

// ColumnWrapper writes an aggregate of one column of the step's resulting table.
type ColumnWrapper[I any, R table.Tabular] struct {
	step.Transparent

	printer  printer
	next     step.Step[I, R]
	stepName string
	column   string
	agg      table.Agg
}

// Column returns a decorator that, after the step returns a table, computes agg
// over the named column and writes "<column> <value>".
//
// An empty agg means table.AggMax. tableLabel is not part of the readout; it only
// tags the library's log entries. The table is returned unmodified, also when the
// column is missing (table.CodeColumnNotFound) or the aggregate does not apply to
// its data (table.CodeUnsupportedAggregate).
func Column[I any, R table.Tabular](
	column string,
	agg table.Agg,
	tableLabel string,
	opts ...Option,
) step.WrapFunc[I, R] {
	if agg == "" {
		agg = table.AggMax
	}

	return func(next step.Step[I, R]) step.Step[I, R] {
		p := newPrinter("column", opts)
		p.logger = p.logger.With("table", tableLabel, "column", column, "aggregate", string(agg))

		return &ColumnWrapper[I, R]{
			Transparent: step.Inherit(next),
			printer:     p,
			next:        next,
			stepName:    step.NameOf(next),
			column:      column,
			agg:         agg,
		}
	}
}

func (w *ColumnWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	result, err := w.next.Execute(ctx, input)
	if err != nil {
		return result, err
	}

	if isNil(result) {
		return result, notTabular(w.stepName)
	}

	col, err := result.Column(w.column)
	if err != nil {
		return result, err
	}

	value, err := col.Agg(w.agg)
	if err != nil {
		return result, err
	}

	if emitErr := w.printer.emit(ctx, w.column, formatValue(value)); emitErr != nil {
		return result, emitErr
	}

	return result, nil
}
