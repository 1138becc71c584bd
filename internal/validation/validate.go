// Package validation checks user input against optional constraints.
//
// Validate is the boolean evaluator used by the board's input form. Constraints
// wraps the same checks as an ozzo-validation rule so request structs can be
// validated field by field.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Validatable bundles a value with the constraints to check it against.
// Nil constraint fields are absent; a pointer to zero is a present bound of zero.
type Validatable struct {
	Value     any
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// Validate reports whether every present constraint holds for v.Value.
// Length bounds apply only to strings and numeric bounds only to numbers;
// a constraint that does not apply to the value's type is skipped.
func Validate(v Validatable) bool {
	valid := true

	if v.Required {
		valid = valid && strings.TrimSpace(stringify(v.Value)) != ""
	}

	if text, ok := textual(v.Value); ok {
		length := utf8.RuneCountInString(text)
		if v.MinLength != nil {
			valid = valid && length >= *v.MinLength
		}
		if v.MaxLength != nil {
			valid = valid && length <= *v.MaxLength
		}
	}

	if number, ok := numeric(v.Value); ok {
		if v.Min != nil {
			valid = valid && number >= *v.Min
		}
		if v.Max != nil {
			valid = valid && number <= *v.Max
		}
	}

	return valid
}

// stringify mirrors how a form field renders its value; nil renders empty.
func stringify(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// textual returns the value as a string when its kind is string.
func textual(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// numeric converts any Go integer or float kind to float64.
func numeric(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// Int returns a pointer to n, for building Validatable literals.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for building Validatable literals.
func Float(f float64) *float64 { return &f }
