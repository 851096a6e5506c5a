package table_test

import (
	"math"
	"strings"
	"testing"

	"github.com/code19m/errx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/flatbread/table"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, code, errx.AsErrorX(err).Code())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "(10, 3)", table.Shape{Rows: 10, Cols: 3}.String())
	assert.Equal(t, "(0, 0)", table.Shape{}.String())
}

func TestNewSeriesKind(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		expected table.Kind
	}{
		{name: "ints", values: []any{1, int64(5), uint8(3)}, expected: table.KindInt},
		{name: "floats", values: []any{1.5, float32(2)}, expected: table.KindFloat},
		{name: "ints and floats", values: []any{1, 2.5}, expected: table.KindFloat},
		{name: "uint above int64", values: []any{uint64(1), uint64(math.MaxUint64)}, expected: table.KindFloat},
		{name: "bools", values: []any{true, false}, expected: table.KindBool},
		{name: "strings", values: []any{"a", "b"}, expected: table.KindString},
		{name: "missing values are ignored", values: []any{nil, 1, nil}, expected: table.KindInt},
		{name: "strings and ints", values: []any{"a", 1}, expected: table.KindObject},
		{name: "no values", values: nil, expected: table.KindFloat},
		{name: "only missing", values: []any{nil, nil}, expected: table.KindFloat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, table.NewSeries("x", tc.values...).Kind())
		})
	}
}

func TestSeriesAgg(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		agg      table.Agg
		expected any
	}{
		{name: "max of ints", values: []any{1, 5, 3}, agg: table.AggMax, expected: int64(5)},
		{name: "min of ints", values: []any{1, 5, 3}, agg: table.AggMin, expected: int64(1)},
		{name: "sum of ints", values: []any{1, 5, 3}, agg: table.AggSum, expected: int64(9)},
		{name: "mean of ints", values: []any{1, 5, 3}, agg: table.AggMean, expected: 3.0},
		{name: "median odd", values: []any{1, 5, 3}, agg: table.AggMedian, expected: 3.0},
		{name: "median even", values: []any{4, 1, 3, 2}, agg: table.AggMedian, expected: 2.5},
		{name: "count skips missing", values: []any{1, nil, 3}, agg: table.AggCount, expected: 2},
		{name: "nunique", values: []any{1, 1, 2, nil}, agg: table.AggNUnique, expected: 2},
		{name: "nunique strings", values: []any{"a", "b", "a"}, agg: table.AggNUnique, expected: 2},
		{name: "var", values: []any{2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0}, agg: table.AggVar, expected: 32.0 / 7},
		{name: "prod of ints", values: []any{2, 3, 4}, agg: table.AggProd, expected: int64(24)},
		{name: "prod of floats", values: []any{0.5, 4.0}, agg: table.AggProd, expected: 2.0},
		{name: "max of floats skips NaN", values: []any{1.5, math.NaN(), 0.5}, agg: table.AggMax, expected: 1.5},
		{name: "max of mixed numbers", values: []any{1, 2.5}, agg: table.AggMax, expected: 2.5},
		{name: "max of strings", values: []any{"apple", "pear", "fig"}, agg: table.AggMax, expected: "pear"},
		{name: "min of strings", values: []any{"apple", "pear", "fig"}, agg: table.AggMin, expected: "apple"},
		{name: "sum of strings", values: []any{"a", "b", "c"}, agg: table.AggSum, expected: "abc"},
		{name: "max of bools", values: []any{false, true}, agg: table.AggMax, expected: true},
		{name: "min of bools", values: []any{false, true}, agg: table.AggMin, expected: false},
		{name: "sum of bools", values: []any{true, true, false}, agg: table.AggSum, expected: int64(2)},
		{name: "sum of nothing", values: nil, agg: table.AggSum, expected: 0.0},
		{name: "count of nothing", values: nil, agg: table.AggCount, expected: 0},
		{name: "count of mixed", values: []any{"a", 1}, agg: table.AggCount, expected: 2},
		{name: "max of uints above int64", values: []any{uint64(1), uint64(math.MaxUint64)}, agg: table.AggMax, expected: float64(math.MaxUint64)},
		{name: "sum of uints above int64", values: []any{uint64(1), uint64(math.MaxUint64)}, agg: table.AggSum, expected: float64(math.MaxUint64)},
		{name: "max of uints within int64", values: []any{uint(3), uint64(7)}, agg: table.AggMax, expected: int64(7)},
		{name: "nunique of large ints", values: []any{int64(1 << 53), int64(1<<53 + 1), int64(1 << 53)}, agg: table.AggNUnique, expected: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := table.NewSeries("x", tc.values...).Agg(tc.agg)
			require.NoError(t, err)

			if f, ok := tc.expected.(float64); ok {
				assert.InDelta(t, f, actual, 1e-9)
				return
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestSeriesAggEmptyIsNaN(t *testing.T) {
	for _, agg := range []table.Agg{table.AggMax, table.AggMin, table.AggMean, table.AggMedian, table.AggStd} {
		t.Run(string(agg), func(t *testing.T) {
			actual, err := table.NewSeries("x").Agg(agg)
			require.NoError(t, err)

			f, ok := actual.(float64)
			require.True(t, ok)
			assert.True(t, math.IsNaN(f))
		})
	}
}

func TestSeriesAggUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		agg    table.Agg
	}{
		{name: "unknown aggregate", values: []any{1, 2}, agg: "average"},
		{name: "empty aggregate name", values: []any{1, 2}, agg: ""},
		{name: "mean of strings", values: []any{"a", "b"}, agg: table.AggMean},
		{name: "std of strings", values: []any{"a", "b"}, agg: table.AggStd},
		{name: "prod of strings", values: []any{"a", "b"}, agg: table.AggProd},
		{name: "max of mixed data", values: []any{"a", 1}, agg: table.AggMax},
		{name: "sum of mixed data", values: []any{"a", 1}, agg: table.AggSum},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := table.NewSeries("x", tc.values...).Agg(tc.agg)
			requireCode(t, err, table.CodeUnsupportedAggregate)
		})
	}
}

func TestAggs(t *testing.T) {
	aggs := table.Aggs()

	assert.Len(t, aggs, 10)
	assert.Contains(t, aggs, table.AggMax)
	for _, a := range aggs {
		assert.True(t, a.Valid())
	}
	assert.False(t, table.Agg("average").Valid())
}

func TestNewSeriesCopiesValues(t *testing.T) {
	values := []any{1, 2, 3}
	s := table.NewSeries("x", values...)

	values[0] = 100

	if diff := cmp.Diff([]any{1, 2, 3}, s.Values()); diff != "" {
		t.Errorf("series values changed (-want +got):\n%s", diff)
	}
}

func TestNewFrame(t *testing.T) {
	t.Run("keeps column order and shape", func(t *testing.T) {
		f, err := table.NewFrame(
			table.NewSeries("b", 1, 2),
			table.NewSeries("a", "x", "y"),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"b", "a"}, f.Columns())
		assert.Equal(t, table.Shape{Rows: 2, Cols: 2}, f.Shape())
		assert.Equal(t, map[string]any{"b": 2, "a": "y"}, f.Row(1))
		assert.Nil(t, f.Row(2))
	})

	t.Run("empty frame", func(t *testing.T) {
		f, err := table.NewFrame()
		require.NoError(t, err)
		assert.Equal(t, table.Shape{}, f.Shape())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := table.NewFrame(
			table.NewSeries("a", 1, 2),
			table.NewSeries("b", 1),
		)
		requireCode(t, err, table.CodeLengthMismatch)
	})

	t.Run("duplicate column", func(t *testing.T) {
		_, err := table.NewFrame(
			table.NewSeries("a", 1),
			table.NewSeries("a", 2),
		)
		requireCode(t, err, table.CodeDuplicateColumn)
	})
}

func TestFrameColumn(t *testing.T) {
	f, err := table.NewFrame(table.NewSeries("x", 1, 5, 3))
	require.NoError(t, err)

	col, err := f.Column("x")
	require.NoError(t, err)

	v, err := col.Agg(table.AggMax)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	missing, err := f.Column("y")
	requireCode(t, err, table.CodeColumnNotFound)
	assert.Nil(t, missing)
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"id, price, name, active, note",
		"1, 2.5, apple, true, ",
		"2, 3, pear, FALSE, bruised",
		"3, , fig, true, 010",
	}, "\n")

	f, err := table.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, table.Shape{Rows: 3, Cols: 5}, f.Shape())
	assert.Equal(t, []string{"id", "price", "name", "active", "note"}, f.Columns())

	kinds := map[string]table.Kind{}
	for _, name := range f.Columns() {
		s, ok := f.Series(name)
		require.True(t, ok)
		kinds[name] = s.Kind()
	}
	assert.Equal(t, map[string]table.Kind{
		"id":     table.KindInt,
		"price":  table.KindFloat,
		"name":   table.KindString,
		"active": table.KindBool,
		"note":   table.KindString,
	}, kinds)

	price, _ := f.Series("price")
	if diff := cmp.Diff([]any{2.5, 3.0, nil}, price.Values()); diff != "" {
		t.Errorf("price values mismatch (-want +got):\n%s", diff)
	}

	id, _ := f.Series("id")
	if diff := cmp.Diff([]any{int64(1), int64(2), int64(3)}, id.Values()); diff != "" {
		t.Errorf("id values mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := table.ReadCSV(strings.NewReader(""))
		requireCode(t, err, table.CodeMalformedCSV)
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := table.ReadCSV(strings.NewReader("a,b\n1,2\n3\n"))
		requireCode(t, err, table.CodeMalformedCSV)
	})
}
