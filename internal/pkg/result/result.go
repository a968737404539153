// Package result is the uniform outcome of every mutating operation.
package result

import (
	"encoding/json"

	xerrors "crm-client/internal/pkg/errors"
)

// Result is either {success: true, <key>: value} or {success: false, error}.
// Key names the entity in the JSON form ("customer", "task", "email").
type Result[T any] struct {
	Success bool
	Key     string
	Value   T
	Error   string
}

func OK[T any](key string, v T) Result[T] {
	return Result[T]{Success: true, Key: key, Value: v}
}

func Fail[T any](key string, err error) Result[T] {
	return Result[T]{Key: key, Error: xerrors.MessageOrDefault(err, "unknown error")}
}

// Done is a success with no payload, used by status/assign/bulk updates.
func Done() Result[struct{}] {
	return Result[struct{}]{Success: true}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := map[string]any{"success": r.Success}
	if !r.Success {
		out["error"] = r.Error
		return json.Marshal(out)
	}
	if r.Key != "" {
		out[r.Key] = r.Value
	}
	return json.Marshal(out)
}
