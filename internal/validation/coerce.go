package validation

import (
	"fmt"
	"strconv"
)

// FieldType declares how a raw cell value must coerce.
type FieldType string

const (
	FieldString         FieldType = "string"
	FieldRequiredString FieldType = "required-string"
	FieldBoolean        FieldType = "boolean"
	FieldNumeric        FieldType = "numeric"
)

// CoercionError describes a single failed coercion. It is a value, not a Go
// error: coercion failures are row data for the report, never control flow.
type CoercionError struct {
	Field    string
	Raw      string
	Expected FieldType
}

func (e *CoercionError) String() string {
	return fmt.Sprintf("field '%s' has value '%s' which is not a valid %s", e.Field, e.Raw, e.Expected)
}

// boolLiterals is the closed set of accepted boolean representations. The
// match is case-sensitive: spreadsheet decoders emit TRUE/FALSE for native
// boolean cells and the source files use lowercase literals, nothing else
// is accepted.
var boolLiterals = map[string]bool{
	"true":  true,
	"TRUE":  true,
	"false": false,
	"FALSE": false,
}

// CoerceBool coerces a boolean-like cell. Empty cells pass through as
// absent (nil, no error).
func CoerceBool(field, raw string) (*bool, *CoercionError) {
	if raw == "" {
		return nil, nil
	}
	v, ok := boolLiterals[raw]
	if !ok {
		return nil, &CoercionError{Field: field, Raw: raw, Expected: FieldBoolean}
	}
	return &v, nil
}

// CoerceNumeric coerces a numeric cell. Empty cells pass through as absent.
func CoerceNumeric(field, raw string) (*float64, *CoercionError) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &CoercionError{Field: field, Raw: raw, Expected: FieldNumeric}
	}
	return &v, nil
}

// Coerce applies the declared field type to a raw value and reports the
// outcome. Strings always coerce; required-string presence is checked by the
// validator, not here.
func Coerce(field, raw string, typ FieldType) *CoercionError {
	switch typ {
	case FieldBoolean:
		_, cerr := CoerceBool(field, raw)
		return cerr
	case FieldNumeric:
		_, cerr := CoerceNumeric(field, raw)
		return cerr
	}
	return nil
}
