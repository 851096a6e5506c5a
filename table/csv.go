package table

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

// ReadCSV reads a frame from CSV input. The first record is the header.
//
// Each column gets the narrowest kind all of its non-empty cells parse as:
// int, then float, then bool ("true"/"false", any case), else string.
// Empty cells are missing values.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errx.New("[table]: csv input has no header",
			errx.WithCode(CodeMalformedCSV),
			errx.WithType(errx.T_Validation),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(CodeMalformedCSV), errx.WithType(errx.T_Validation))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(CodeMalformedCSV), errx.WithType(errx.T_Validation))
	}

	series := make([]*Series, len(header))
	for col, name := range header {
		cells := lo.Map(records, func(rec []string, _ int) string {
			return strings.TrimSpace(rec[col])
		})
		series[col] = NewSeries(strings.TrimSpace(name), parseCells(cells)...)
	}

	return NewFrame(series...)
}

func parseCells(cells []string) []any {
	filled := lo.Filter(cells, func(c string, _ int) bool { return c != "" })

	var parse func(string) any
	switch {
	case lo.EveryBy(filled, isInt):
		parse = func(c string) any {
			v, _ := strconv.ParseInt(c, 10, 64)
			return v
		}
	case lo.EveryBy(filled, isFloat):
		parse = func(c string) any {
			v, _ := strconv.ParseFloat(c, 64)
			return v
		}
	case lo.EveryBy(filled, isBool):
		parse = func(c string) any {
			return strings.EqualFold(c, "true")
		}
	default:
		parse = func(c string) any { return c }
	}

	return lo.Map(cells, func(c string, _ int) any {
		if c == "" {
			return nil
		}
		return parse(c)
	})
}

func isInt(c string) bool {
	_, err := strconv.ParseInt(c, 10, 64)
	return err == nil
}

func isFloat(c string) bool {
	_, err := strconv.ParseFloat(c, 64)
	return err == nil
}

func isBool(c string) bool {
	return strings.EqualFold(c, "true") || strings.EqualFold(c, "false")
}
