// Package step defines the unit of work that readouts decorate.
//
// A Step is any data-processing operation with a single input and a single result.
// Wrappers (see WrapFunc) add cross-cutting behaviour around a step without changing
// its input, its result or the error it returns.
package step

import "context"

// Step defines a single data-processing operation.
type Step[I, R any] interface {
	// Execute runs the step with the given input and returns its result or error.
	Execute(context.Context, I) (R, error)
}

// Func adapts an ordinary function to the Step interface.
type Func[I, R any] func(context.Context, I) (R, error)

// Execute calls f(ctx, input).
func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// WrapFunc defines a decorator for steps.
//
// It takes a Step and returns a wrapped Step with the same input and result types.
type WrapFunc[I, R any] func(Step[I, R]) Step[I, R]

// Chain decorates s with all wraps. The first wrap becomes the outermost one,
// so the order matches the order decorators are written in:
//
//	Chain(s, a, b) == a(b(s))
func Chain[I, R any](s Step[I, R], wraps ...WrapFunc[I, R]) Step[I, R] {
	for i := len(wraps) - 1; i >= 0; i-- {
		s = wraps[i](s)
	}
	return s
}

// New attaches a name and documentation to fn.
func New[I, R any](name, doc string, fn Func[I, R]) Step[I, R] {
	return &described[I, R]{name: name, doc: doc, fn: fn}
}

type described[I, R any] struct {
	name string
	doc  string
	fn   Func[I, R]
}

func (d *described[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return d.fn(ctx, input)
}

func (d *described[I, R]) Name() string { return d.name }

func (d *described[I, R]) Doc() string { return d.doc }
