package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// Type defines the contract for parameter validation.
type Type interface {
	// Name returns the parameter kind name (e.g., "text", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return string(domain.ParamText) }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return string(domain.ParamInt) }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return string(domain.ParamFloat) }

func (t *FloatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return string(domain.ParamBool) }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a text type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// File creates a file path validator.
func File() Type { return pathType(domain.ParamFile) }

// Path creates a directory path validator.
func Path() Type { return pathType(domain.ParamPath) }

func pathType(kind domain.ParamKind) Type {
	return Custom(string(kind), func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected path string, got %T", v)
		}
		if strings.ContainsRune(s, 0) {
			return fmt.Errorf("path contains a NUL byte")
		}
		return nil
	})
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForKind returns the validator of a parameter kind.
func ForKind(kind domain.ParamKind) (Type, error) {
	switch kind {
	case domain.ParamText, "":
		return String(), nil
	case domain.ParamFile:
		return File(), nil
	case domain.ParamPath:
		return Path(), nil
	case domain.ParamInt:
		return Int(), nil
	case domain.ParamFloat:
		return Float(), nil
	case domain.ParamBool:
		return Bool(), nil
	default:
		return nil, fmt.Errorf("unsupported parameter kind: %s", kind)
	}
}
