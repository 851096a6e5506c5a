package table

import (
	"slices"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

// Frame is an ordered set of equally long series. It implements Tabular.
type Frame struct {
	order  []string
	series map[string]*Series
	rows   int
}

// NewFrame builds a frame from the given series, keeping their order.
func NewFrame(series ...*Series) (*Frame, error) {
	f := &Frame{
		order:  make([]string, 0, len(series)),
		series: make(map[string]*Series, len(series)),
	}

	for i, s := range series {
		if i == 0 {
			f.rows = s.Len()
		}

		if s.Len() != f.rows {
			return nil, errx.New("[table]: columns have different lengths",
				errx.WithCode(CodeLengthMismatch),
				errx.WithType(errx.T_Validation),
				errx.WithDetails(errx.D{
					"column":   s.Name(),
					"length":   s.Len(),
					"expected": f.rows,
				}),
			)
		}

		if _, exists := f.series[s.Name()]; exists {
			return nil, errx.New("[table]: duplicate column",
				errx.WithCode(CodeDuplicateColumn),
				errx.WithType(errx.T_Validation),
				errx.WithDetails(errx.D{"column": s.Name()}),
			)
		}

		f.order = append(f.order, s.Name())
		f.series[s.Name()] = s
	}

	return f, nil
}

// Column returns the column with the given label as an Aggregator.
func (f *Frame) Column(name string) (Aggregator, error) {
	s, ok := f.Series(name)
	if !ok {
		return nil, errx.New("[table]: column not found",
			errx.WithCode(CodeColumnNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{
				"column":    name,
				"available": f.Columns(),
			}),
		)
	}
	return s, nil
}

// Series returns the series with the given label.
func (f *Frame) Series(name string) (*Series, bool) {
	s, ok := f.series[name]
	return s, ok
}

// Columns returns the column labels in frame order.
func (f *Frame) Columns() []string {
	return slices.Clone(f.order)
}

// Shape returns the row and column counts.
func (f *Frame) Shape() Shape {
	return Shape{Rows: f.rows, Cols: len(f.order)}
}

// Row returns the values of row i keyed by column label.
func (f *Frame) Row(i int) map[string]any {
	if i < 0 || i >= f.rows {
		return nil
	}
	return lo.SliceToMap(f.order, func(name string) (string, any) {
		return name, f.series[name].values[i]
	})
}
