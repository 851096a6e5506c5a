// Package meta carries run metadata through context so log entries can be correlated.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// RunID identifies a single run of a decorated pipeline.
	RunID ContextKey = "run_id"

	// Source names the input a run reads from, such as a file path.
	Source ContextKey = "source"

	// Table is the label of the table being produced.
	Table ContextKey = "table"

	// Step is the name of the step being executed.
	Step ContextKey = "step"
)

//nolint:gochecknoglobals // fixed set of keys extracted from context.
var keys = []ContextKey{RunID, Source, Table, Step}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all metadata from the provided context.
// Only non-empty string values of the predefined keys are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range keys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// ShouldGetMeta returns the string stored under key.
// It fails if the key is absent or holds a value of another type.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New("[meta]: key not found", errx.WithDetails(errx.D{"key": string(key)}))
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New("[meta]: type mismatch", errx.WithDetails(errx.D{"key": string(key)}))
	}

	return v, nil
}
