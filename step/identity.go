package step

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Describer is implemented by steps that carry identity metadata.
type Describer interface {
	// Name returns the identifying name of the step.
	Name() string
	// Doc returns the documentation of the step, possibly empty.
	Doc() string
}

// Transparent makes a wrapper report the identity of the step it wraps.
// Wrappers embed it so decoration is invisible to NameOf and DocOf.
type Transparent struct {
	inner any
}

// Inherit returns a Transparent that delegates to inner.
func Inherit(inner any) Transparent {
	return Transparent{inner: inner}
}

// Name returns the name of the wrapped step.
func (t Transparent) Name() string {
	return NameOf(t.inner)
}

// Doc returns the documentation of the wrapped step.
func (t Transparent) Doc() string {
	return DocOf(t.inner)
}

// NameOf returns the identifying name of s.
//
// Steps implementing Describer report their own name. A function value reports
// its Go function name without the package path. Anything else is named after its type.
func NameOf(s any) string {
	if s == nil {
		return ""
	}

	if d, ok := s.(Describer); ok {
		return d.Name()
	}

	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return ""
		}
		if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
			return shortFuncName(fn.Name())
		}
	}

	return typeName(s)
}

// DocOf returns the documentation of s, or an empty string if it has none.
func DocOf(s any) string {
	if d, ok := s.(Describer); ok {
		return d.Doc()
	}
	return ""
}

// shortFuncName turns "github.com/org/repo/pkg.loadOrders.func1" into "loadOrders.func1".
func shortFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return full
}

func typeName(s any) string {
	fullType := fmt.Sprintf("%T", s)

	fullType = strings.TrimPrefix(fullType, "*")
	if i := strings.Index(fullType, "["); i >= 0 {
		fullType = fullType[:i]
	}

	parts := strings.Split(fullType, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return fullType
}
