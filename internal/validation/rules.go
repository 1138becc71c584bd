package validation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed config/project_form.yaml
var projectFormConfig []byte

// Constraints is the optional-flag half of a Validatable. It implements
// ozzo's Rule interface, so it can be passed to ozzo.Field.
type Constraints struct {
	Required  bool     `yaml:"required"`
	MinLength *int     `yaml:"min_length"`
	MaxLength *int     `yaml:"max_length"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
}

// For binds the constraints to a value.
func (c Constraints) For(value any) Validatable {
	return Validatable{
		Value:     value,
		Required:  c.Required,
		MinLength: c.MinLength,
		MaxLength: c.MaxLength,
		Min:       c.Min,
		Max:       c.Max,
	}
}

// Validate implements ozzo.Rule
func (c Constraints) Validate(value interface{}) error {
	if Validate(c.For(value)) {
		return nil
	}
	return ozzo.NewError("validation_constraints", c.describe(value))
}

// describe names the constraints value fails.
func (c Constraints) describe(value any) string {
	var parts []string
	fail := func(v Validatable, msg string) {
		v.Value = value
		if !Validate(v) {
			parts = append(parts, msg)
		}
	}

	if c.Required {
		fail(Validatable{Required: true}, "cannot be blank")
	}
	if c.MinLength != nil {
		fail(Validatable{MinLength: c.MinLength}, fmt.Sprintf("must be at least %d characters", *c.MinLength))
	}
	if c.MaxLength != nil {
		fail(Validatable{MaxLength: c.MaxLength}, fmt.Sprintf("must be at most %d characters", *c.MaxLength))
	}
	if c.Min != nil {
		fail(Validatable{Min: c.Min}, fmt.Sprintf("must be no less than %g", *c.Min))
	}
	if c.Max != nil {
		fail(Validatable{Max: c.Max}, fmt.Sprintf("must be no greater than %g", *c.Max))
	}

	if len(parts) == 0 {
		return "is invalid"
	}
	return strings.Join(parts, ", ")
}

// check rejects bound pairs that no value could satisfy.
func (c Constraints) check() error {
	if c.MinLength != nil && *c.MinLength < 0 {
		return errors.New("min_length cannot be negative")
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fmt.Errorf("min_length %d exceeds max_length %d", *c.MinLength, *c.MaxLength)
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return fmt.Errorf("min %g exceeds max %g", *c.Min, *c.Max)
	}
	return nil
}

// FormRules holds the constraints for each field of the project input form.
type FormRules struct {
	Title       Constraints `yaml:"title"`
	Description Constraints `yaml:"description"`
	People      Constraints `yaml:"people"`
}

// DefaultFormRules loads the embedded project form constraints.
func DefaultFormRules() (*FormRules, error) {
	return ParseFormRules(projectFormConfig)
}

// ParseFormRules decodes form constraints from YAML. Unknown keys are rejected.
func ParseFormRules(data []byte) (*FormRules, error) {
	var rules FormRules
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil {
		return nil, fmt.Errorf("decode form rules: %w", err)
	}

	for field, c := range map[string]Constraints{
		"title":       rules.Title,
		"description": rules.Description,
		"people":      rules.People,
	} {
		if err := c.check(); err != nil {
			return nil, fmt.Errorf("form rules %s: %w", field, err)
		}
	}

	return &rules, nil
}
