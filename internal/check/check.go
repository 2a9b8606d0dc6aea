// Package check holds the reusable scalar checkers the content loaders are
// built from. Every checker records at most one issue per call and returns a
// sentinel on failure instead of panicking, so one field's failure never
// suppresses its siblings.
package check

import (
	"strconv"

	"starlint/internal/issue"
	"starlint/internal/jsondoc"
)

// String validates a non-empty string. Returns ("", false) on failure.
func String(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) (string, bool) {
	if v == nil || v.Kind() != jsondoc.String || v.Str() == "" {
		s.Recordf(file, at, "%s must be a non-empty string", what)
		return "", false
	}
	return v.Str(), true
}

// Bool validates a boolean.
func Bool(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) (bool, bool) {
	if v == nil || v.Kind() != jsondoc.Bool {
		s.Recordf(file, at, "%s must be true/false", what)
		return false, false
	}
	return v.BoolVal(), true
}

// Int validates an integer (a number written without fraction or exponent).
func Int(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) (int64, bool) {
	if v == nil {
		s.Recordf(file, at, "%s must be an integer", what)
		return 0, false
	}
	n, ok := v.Int64()
	if !ok {
		s.Recordf(file, at, "%s must be an integer", what)
		return 0, false
	}
	return n, true
}

// IntAtLeast validates an integer with an inclusive lower bound.
func IntAtLeast(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string, min int64) (int64, bool) {
	n, ok := Int(s, file, at, v, what)
	if !ok {
		return 0, false
	}
	if n < min {
		s.Recordf(file, at, "%s must be >= %d", what, min)
		return 0, false
	}
	return n, true
}

// Number validates a number, integral or fractional. Booleans are not
// numbers.
func Number(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) (float64, bool) {
	if v == nil || v.Kind() != jsondoc.Number {
		s.Recordf(file, at, "%s must be a number", what)
		return 0, false
	}
	f, ok := v.Float64()
	if !ok {
		s.Recordf(file, at, "%s must be a number", what)
		return 0, false
	}
	return f, true
}

// NumberAtLeast validates a number with an inclusive lower bound.
func NumberAtLeast(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string, min float64) (float64, bool) {
	f, ok := Number(s, file, at, v, what)
	if !ok {
		return 0, false
	}
	if f < min {
		s.Recordf(file, at, "%s must be >= %s", what, strconv.FormatFloat(min, 'g', -1, 64))
		return 0, false
	}
	return f, true
}

// Object validates that v is an object and returns it, or nil on failure.
// JSON object keys are strings by construction; loaders flag empty-id keys
// where a scope requires non-empty identifiers.
func Object(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) *jsondoc.Value {
	if v == nil || v.Kind() != jsondoc.Object {
		s.Recordf(file, at, "%s must be an object", what)
		return nil
	}
	return v
}

// Array validates that v is an array and returns its elements. The ok flag
// distinguishes an empty array from a failure.
func Array(s *issue.Sink, file string, at issue.Path, v *jsondoc.Value, what string) ([]*jsondoc.Value, bool) {
	if v == nil || v.Kind() != jsondoc.Array {
		s.Recordf(file, at, "%s must be an array", what)
		return nil, false
	}
	return v.Elems(), true
}
