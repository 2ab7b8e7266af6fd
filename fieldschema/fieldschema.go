// Package fieldschema validates custom field values against the field
// definitions of their inventory. Everything here is a pure read of the
// definition; it is safe to call concurrently.
package fieldschema

import (
	"fmt"
	"regexp"
	"strconv"

	"Gin_postgres_redis_catalog/models"
)

// ValidationError reports why a proposed value was rejected. It is user
// input gone wrong, never a system fault.
type ValidationError struct {
	FieldTitle string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.FieldTitle, e.Reason)
}

func fail(def *models.FieldDefinition, reason string) error {
	return &ValidationError{FieldTitle: def.Title, Reason: reason}
}

// Validate checks one proposed value against its definition, dispatching on
// the definition's type. Constraints that belong to a different type are
// ignored, never an error.
func Validate(v *models.CustomFieldValue, def *models.FieldDefinition) error {
	switch def.Type {
	case models.FieldString:
		return validateString(v.StringValue, def)
	case models.FieldInt:
		return validateInt(v.IntValue, def)
	case models.FieldBool:
		return validateBool(v.BoolValue, def)
	default:
		return fail(def, "unknown field type "+string(def.Type))
	}
}

func validateString(value *string, def *models.FieldDefinition) error {
	if def.IsRequired && (value == nil || *value == "") {
		return fail(def, "value is required")
	}
	if def.ValidationRegex != "" && value != nil && *value != "" {
		re, err := regexp.Compile(def.ValidationRegex)
		if err != nil {
			return fail(def, "invalid validation pattern")
		}
		// Unanchored: a substring match is accepted.
		if !re.MatchString(*value) {
			return fail(def, "value does not match the required pattern")
		}
	}
	return nil
}

func validateInt(value *int64, def *models.FieldDefinition) error {
	if def.IsRequired && value == nil {
		return fail(def, "value is required")
	}
	if value == nil {
		return nil
	}
	// Bounds apply only when set and parseable as integers.
	if min, ok := parseBound(def.ValidationMin); ok && *value < min {
		return fail(def, fmt.Sprintf("value must be at least %d", min))
	}
	if max, ok := parseBound(def.ValidationMax); ok && *value > max {
		return fail(def, fmt.Sprintf("value must be at most %d", max))
	}
	return nil
}

func validateBool(value *bool, def *models.FieldDefinition) error {
	if def.IsRequired && value == nil {
		return fail(def, "value is required")
	}
	return nil
}

func parseBound(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckRequired verifies that every required definition is represented in
// the proposed value set. Used by the item write path before any write.
func CheckRequired(defs []models.FieldDefinition, values []models.CustomFieldValue) error {
	provided := make(map[string]struct{}, len(values))
	for i := range values {
		provided[values[i].FieldDefinitionID] = struct{}{}
	}
	for i := range defs {
		def := &defs[i]
		if !def.IsRequired {
			continue
		}
		if _, ok := provided[def.ID]; !ok {
			return fail(def, "required field is missing")
		}
	}
	return nil
}

// ValidateAll runs Validate over every proposed value. A value referencing
// a definition that does not exist on the inventory is a hard failure.
func ValidateAll(defs []models.FieldDefinition, values []models.CustomFieldValue) error {
	byID := make(map[string]*models.FieldDefinition, len(defs))
	for i := range defs {
		byID[defs[i].ID] = &defs[i]
	}
	for i := range values {
		v := &values[i]
		def, ok := byID[v.FieldDefinitionID]
		if !ok {
			return &ValidationError{FieldTitle: v.FieldDefinitionID, Reason: "unknown field definition"}
		}
		if err := Validate(v, def); err != nil {
			return err
		}
	}
	return nil
}
