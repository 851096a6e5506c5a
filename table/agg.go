package table

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

// Agg is the name of a reduction over a column's values.
type Agg string

// Supported aggregates.
const (
	AggMax     Agg = "max"
	AggMin     Agg = "min"
	AggSum     Agg = "sum"
	AggMean    Agg = "mean"
	AggMedian  Agg = "median"
	AggCount   Agg = "count"
	AggNUnique Agg = "nunique"
	AggStd     Agg = "std"
	AggVar     Agg = "var"
	AggProd    Agg = "prod"
)

// Aggs returns all supported aggregate names.
func Aggs() []Agg {
	aggs := lo.Keys(reducers)
	slices.Sort(aggs)
	return aggs
}

// Valid reports whether a is a known aggregate.
func (a Agg) Valid() bool {
	_, ok := reducers[a]
	return ok
}

type reducer func(s *Series) (any, error)

//nolint:gochecknoglobals // static lookup of aggregate implementations.
var reducers = map[Agg]reducer{
	AggMax:     func(s *Series) (any, error) { return extreme(s, AggMax) },
	AggMin:     func(s *Series) (any, error) { return extreme(s, AggMin) },
	AggSum:     sum,
	AggMean:    floatReducer(AggMean, mean),
	AggMedian:  floatReducer(AggMedian, median),
	AggStd:     floatReducer(AggStd, func(xs []float64) float64 { return math.Sqrt(variance(xs)) }),
	AggVar:     floatReducer(AggVar, variance),
	AggProd:    prod,
	AggCount:   func(s *Series) (any, error) { return len(s.present()), nil },
	AggNUnique: nunique,
}

func unsupported(s *Series, agg Agg, reason string) error {
	return errx.New(
		fmt.Sprintf("[table]: %s", reason),
		errx.WithCode(CodeUnsupportedAggregate),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{
			"column":    s.name,
			"kind":      string(s.kind),
			"aggregate": string(agg),
		}),
	)
}

func extreme(s *Series, agg Agg) (any, error) {
	switch s.kind {
	case KindInt:
		return pickExtreme(s.ints(), agg), nil

	case KindFloat:
		return pickExtreme(s.floats(), agg), nil

	case KindBool:
		xs := s.bools()
		if len(xs) == 0 {
			return math.NaN(), nil
		}
		if agg == AggMax {
			return slices.Contains(xs, true), nil
		}
		return !slices.Contains(xs, false), nil

	case KindString:
		return pickExtreme(s.strings(), agg), nil

	default:
		return nil, unsupported(s, agg, "aggregate is not supported for mixed data")
	}
}

func pickExtreme[T cmp.Ordered](xs []T, agg Agg) any {
	if len(xs) == 0 {
		return math.NaN()
	}
	if agg == AggMax {
		return slices.Max(xs)
	}
	return slices.Min(xs)
}

func sum(s *Series) (any, error) {
	switch s.kind {
	case KindInt, KindBool:
		return lo.Sum(s.ints()), nil
	case KindFloat:
		return lo.Sum(s.floats()), nil
	case KindString:
		return strings.Join(s.strings(), ""), nil
	default:
		return nil, unsupported(s, AggSum, "aggregate is not supported for mixed data")
	}
}

func prod(s *Series) (any, error) {
	switch s.kind {
	case KindInt, KindBool:
		p := int64(1)
		for _, x := range s.ints() {
			p *= x
		}
		return p, nil
	case KindFloat:
		p := 1.0
		for _, x := range s.floats() {
			p *= x
		}
		return p, nil
	default:
		return nil, unsupported(s, AggProd, "aggregate requires numeric data")
	}
}

func nunique(s *Series) (any, error) {
	if s.kind == KindInt {
		return len(lo.Uniq(s.ints())), nil
	}
	if s.numeric() {
		return len(lo.Uniq(s.floats())), nil
	}
	keys := lo.UniqBy(s.present(), func(v any) string {
		return fmt.Sprintf("%T\x00%v", v, v)
	})
	return len(keys), nil
}

func floatReducer(agg Agg, fn func([]float64) float64) reducer {
	return func(s *Series) (any, error) {
		if !s.numeric() {
			return nil, unsupported(s, agg, "aggregate requires numeric data")
		}
		return fn(s.floats()), nil
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return lo.Sum(xs) / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	mid := len(sorted) / 2 //nolint:mnd // middle index
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2 //nolint:mnd // average of the two middle values
}

// variance is the sample variance (one delta degree of freedom).
func variance(xs []float64) float64 {
	if len(xs) < 2 { //nolint:mnd // sample variance needs two values
		return math.NaN()
	}
	m := mean(xs)
	var acc float64
	for _, x := range xs {
		acc += (x - m) * (x - m)
	}
	return acc / float64(len(xs)-1)
}
