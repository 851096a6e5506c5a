package table

import (
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Kind is the inferred data kind of a series.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindString Kind = "string"
	// KindObject marks a series mixing kinds that have no common numeric form.
	KindObject Kind = "object"
)

// Series is a named column of values. A nil value is a missing value.
type Series struct {
	name   string
	kind   Kind
	values []any
}

// NewSeries creates a series and infers its kind from the non-missing values.
// Ints mixed with floats become KindFloat, any other mix becomes KindObject.
// A series without values is KindFloat, so numeric aggregates over it yield NaN.
func NewSeries(name string, values ...any) *Series {
	kind := Kind("")
	for _, v := range values {
		if v == nil {
			continue
		}
		kind = mergeKinds(kind, kindOf(v))
	}
	if kind == "" {
		kind = KindFloat
	}

	return &Series{
		name:   name,
		kind:   kind,
		values: slices.Clone(values),
	}
}

// Name returns the column label.
func (s *Series) Name() string { return s.name }

// Kind returns the inferred data kind.
func (s *Series) Kind() Kind { return s.kind }

// Len returns the number of values, missing ones included.
func (s *Series) Len() int { return len(s.values) }

// Values returns a copy of the values.
func (s *Series) Values() []any { return slices.Clone(s.values) }

// Agg computes the named aggregate over the non-missing values.
func (s *Series) Agg(agg Agg) (any, error) {
	reduce, ok := reducers[agg]
	if !ok {
		return nil, unsupported(s, agg, "unknown aggregate")
	}
	return reduce(s)
}

func (s *Series) present() []any {
	return lo.Filter(s.values, func(v any, _ int) bool {
		if v == nil {
			return false
		}
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			return false
		}
		if f, ok := v.(float32); ok && math.IsNaN(float64(f)) {
			return false
		}
		return true
	})
}

func (s *Series) numeric() bool {
	return s.kind == KindInt || s.kind == KindFloat || s.kind == KindBool
}

func (s *Series) floats() []float64 {
	return lo.Map(s.present(), func(v any, _ int) float64 {
		return cast.ToFloat64(v)
	})
}

func (s *Series) ints() []int64 {
	return lo.Map(s.present(), func(v any, _ int) int64 {
		return cast.ToInt64(v)
	})
}

func (s *Series) strings() []string {
	return lo.Map(s.present(), func(v any, _ int) string {
		return cast.ToString(v)
	})
}

func (s *Series) bools() []bool {
	return lo.Map(s.present(), func(v any, _ int) bool {
		return cast.ToBool(v)
	})
}

func kindOf(v any) Kind {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return KindInt
	case uint:
		return unsignedKind(uint64(x))
	case uint64:
		return unsignedKind(x)
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindString
	default:
		return KindObject
	}
}

// unsignedKind keeps values that fit in int64 as ints; larger ones become floats.
func unsignedKind(x uint64) Kind {
	if x > math.MaxInt64 {
		return KindFloat
	}
	return KindInt
}

func mergeKinds(a, b Kind) Kind {
	switch {
	case a == "":
		return b
	case a == b:
		return a
	case (a == KindInt && b == KindFloat) || (a == KindFloat && b == KindInt):
		return KindFloat
	default:
		return KindObject
	}
}
