// Package table defines the tabular result contract used by readouts and
// provides a small in-memory implementation of it.
//
// A tabular result exposes three capabilities: column lookup by label, a named
// aggregate over a column's values and its shape. Readouts that inspect results
// (column aggregates, shapes) accept anything that satisfies Tabular.
package table

import "fmt"

// Tabular is the capability contract of a tabular result.
type Tabular interface {
	// Column returns the column with the given label.
	// It returns an error with CodeColumnNotFound if there is no such column.
	Column(name string) (Aggregator, error)

	// Shape returns the row and column counts.
	Shape() Shape
}

// Aggregator reduces the values of a single column.
type Aggregator interface {
	// Agg computes the named aggregate over the column's values.
	// It returns an error with CodeUnsupportedAggregate if the aggregate is unknown
	// or not valid for the column's data.
	Agg(agg Agg) (any, error)
}

// Shape is the row/column count pair of a tabular result.
type Shape struct {
	Rows int
	Cols int
}

// String renders the shape as "(rows, cols)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}
