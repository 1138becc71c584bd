package validation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestValidateProperties checks the evaluator's invariants over generated input
func TestValidateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: a descriptor without constraints is always valid
	properties.Property("unconstrained text is valid", prop.ForAll(
		func(value string) bool {
			return Validate(Validatable{Value: value})
		},
		gen.AnyString(),
	))

	properties.Property("unconstrained number is valid", prop.ForAll(
		func(value float64) bool {
			return Validate(Validatable{Value: value})
		},
		gen.Float64Range(-1e9, 1e9),
	))

	// Property: required rejects text that trims to nothing
	properties.Property("required rejects blank text", prop.ForAll(
		func(spaces, tabs, newlines int) bool {
			value := strings.Repeat(" ", spaces) + strings.Repeat("\t", tabs) + strings.Repeat("\n", newlines)
			return !Validate(Validatable{Value: value, Required: true})
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	// Property: a value below a present minimum is rejected
	properties.Property("value below min is invalid", prop.ForAll(
		func(min, delta float64) bool {
			return !Validate(Validatable{Value: min - delta, Min: Float(min)})
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(0.5, 1000),
	))

	// Property: a zero minimum is a real bound, not an absent one
	properties.Property("zero min still applies", prop.ForAll(
		func(value int) bool {
			return !Validate(Validatable{Value: value, Min: Float(0)})
		},
		gen.IntRange(-10000, -1),
	))

	// Property: length bounds never reject numbers
	properties.Property("length bounds skip numbers", prop.ForAll(
		func(value, bound int) bool {
			return Validate(Validatable{Value: value, MinLength: Int(bound + 1), MaxLength: Int(bound)})
		},
		gen.Int(),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
