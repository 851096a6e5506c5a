// Package readout provides step decorators that print diagnostic readouts
// around data-processing steps.
//
// Readouts give direct visual feedback while a build runs. Each decorator is a
// step.WrapFunc and is applied on its own; several can be stacked with step.Chain.
//
//   - Printout writes a fixed message before or after the step.
//   - Column writes an aggregate of one column of the resulting table.
//   - Shape writes the resulting table's shape.
//   - Timer writes how long the step took.
//
// A readout is a single line of space-joined fields written to a sink, os.Stdout
// unless WithWriter is given. Decorators never change the step's result or error.
package readout

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/flatbread/logger"
)

// Options holds the settings shared by all readout decorators.
type Options struct {
	// Writer receives readout lines. Defaults to os.Stdout.
	Writer io.Writer

	// Logger receives the library's own diagnostics. Defaults to a no-op logger.
	Logger logger.Logger
}

// Option is a functional option for configuring a readout decorator.
type Option func(*Options)

// WithWriter sends readouts to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// WithLogger sets the logger for diagnostics about the readouts themselves.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Writer: os.Stdout,
		Logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

// printer writes readout lines to the configured sink.
type printer struct {
	out    io.Writer
	logger logger.Logger
}

func newPrinter(name string, opts []Option) printer {
	o := buildOptions(opts)
	return printer{
		out:    o.Writer,
		logger: o.Logger.Named("readout." + name),
	}
}

// emit writes fields joined by single spaces as one line.
func (p printer) emit(ctx context.Context, fields ...string) error {
	line := strings.Join(fields, " ")

	if _, err := fmt.Fprintln(p.out, line); err != nil {
		return errx.Wrap(err, errx.WithCode(CodeWriteFailed), errx.WithDetails(errx.D{"readout": line}))
	}

	p.logger.WithContext(ctx).With("readout", line).Debug("readout written")
	return nil
}

// isNil reports whether v is nil or a typed nil hidden behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func notTabular(stepName string) error {
	return errx.New("[readout]: step returned no table",
		errx.WithCode(CodeNotTabular),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"step": stepName}),
	)
}
