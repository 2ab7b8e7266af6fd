package fieldschema

import (
	"errors"
	"testing"

	"Gin_postgres_redis_catalog/models"
)

func strp(s string) *string { return &s }
func intp(n int64) *int64   { return &n }
func boolp(b bool) *bool    { return &b }

func TestValidateString_Required(t *testing.T) {
	def := &models.FieldDefinition{Title: "Name", Type: models.FieldString, IsRequired: true}

	if err := Validate(&models.CustomFieldValue{}, def); err == nil {
		t.Error("nil value for a required string should fail")
	}
	if err := Validate(&models.CustomFieldValue{StringValue: strp("")}, def); err == nil {
		t.Error("empty value for a required string should fail")
	}
	if err := Validate(&models.CustomFieldValue{StringValue: strp("ok")}, def); err != nil {
		t.Errorf("non-empty value should pass, got %v", err)
	}
}

func TestValidateString_RegexIsSubstringMatch(t *testing.T) {
	def := &models.FieldDefinition{Title: "SKU", Type: models.FieldString, ValidationRegex: `\d{3}`}

	// A match anywhere in the value is accepted.
	if err := Validate(&models.CustomFieldValue{StringValue: strp("abc123xyz")}, def); err != nil {
		t.Errorf("substring match should pass, got %v", err)
	}
	if err := Validate(&models.CustomFieldValue{StringValue: strp("abc12xyz")}, def); err == nil {
		t.Error("value without a matching substring should fail")
	}
}

func TestValidateString_RegexSkippedWhenEmpty(t *testing.T) {
	def := &models.FieldDefinition{Title: "SKU", Type: models.FieldString, ValidationRegex: `\d{3}`}

	// Optional field with no value: the pattern is not applied.
	if err := Validate(&models.CustomFieldValue{}, def); err != nil {
		t.Errorf("nil optional value should pass, got %v", err)
	}
	if err := Validate(&models.CustomFieldValue{StringValue: strp("")}, def); err != nil {
		t.Errorf("empty optional value should pass, got %v", err)
	}
}

func TestValidateString_BadPattern(t *testing.T) {
	def := &models.FieldDefinition{Title: "SKU", Type: models.FieldString, ValidationRegex: `[unclosed`}

	err := Validate(&models.CustomFieldValue{StringValue: strp("anything")}, def)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.FieldTitle != "SKU" {
		t.Errorf("error should name the field, got %q", ve.FieldTitle)
	}
}

func TestValidateInt_Bounds(t *testing.T) {
	def := &models.FieldDefinition{
		Title: "Qty", Type: models.FieldInt,
		ValidationMin: "1", ValidationMax: "100",
	}

	if err := Validate(&models.CustomFieldValue{IntValue: intp(50)}, def); err != nil {
		t.Errorf("in-range value should pass, got %v", err)
	}
	if err := Validate(&models.CustomFieldValue{IntValue: intp(0)}, def); err == nil {
		t.Error("value below min should fail")
	}
	if err := Validate(&models.CustomFieldValue{IntValue: intp(101)}, def); err == nil {
		t.Error("value above max should fail")
	}
	if err := Validate(&models.CustomFieldValue{IntValue: intp(1)}, def); err != nil {
		t.Errorf("boundary value should pass, got %v", err)
	}
}

func TestValidateInt_UnparseableBoundIgnored(t *testing.T) {
	def := &models.FieldDefinition{Title: "Qty", Type: models.FieldInt, ValidationMin: "many"}

	if err := Validate(&models.CustomFieldValue{IntValue: intp(-5)}, def); err != nil {
		t.Errorf("unparseable bound must be ignored, got %v", err)
	}
}

func TestValidateInt_NilOptional(t *testing.T) {
	def := &models.FieldDefinition{Title: "Qty", Type: models.FieldInt, ValidationMin: "1"}

	if err := Validate(&models.CustomFieldValue{}, def); err != nil {
		t.Errorf("nil optional int should pass, got %v", err)
	}
}

func TestValidateBool(t *testing.T) {
	req := &models.FieldDefinition{Title: "Active", Type: models.FieldBool, IsRequired: true}
	opt := &models.FieldDefinition{Title: "Active", Type: models.FieldBool}

	if err := Validate(&models.CustomFieldValue{}, req); err == nil {
		t.Error("nil value for a required bool should fail")
	}
	if err := Validate(&models.CustomFieldValue{BoolValue: boolp(false)}, req); err != nil {
		t.Errorf("false is a value, got %v", err)
	}
	if err := Validate(&models.CustomFieldValue{}, opt); err != nil {
		t.Errorf("nil optional bool should pass, got %v", err)
	}
}

func TestValidate_MismatchedConstraintsIgnored(t *testing.T) {
	// An int definition carrying a regex, or a string definition carrying
	// bounds, applies only the constraints of its own type.
	intDef := &models.FieldDefinition{Title: "Qty", Type: models.FieldInt, ValidationRegex: `^\d+$`}
	if err := Validate(&models.CustomFieldValue{IntValue: intp(7)}, intDef); err != nil {
		t.Errorf("regex on an int field must be ignored, got %v", err)
	}

	strDef := &models.FieldDefinition{Title: "Name", Type: models.FieldString, ValidationMin: "5"}
	if err := Validate(&models.CustomFieldValue{StringValue: strp("ab")}, strDef); err != nil {
		t.Errorf("bounds on a string field must be ignored, got %v", err)
	}
}

func TestCheckRequired(t *testing.T) {
	defs := []models.FieldDefinition{
		{ID: "f1", Title: "Name", Type: models.FieldString, IsRequired: true},
		{ID: "f2", Title: "Notes", Type: models.FieldString},
	}

	err := CheckRequired(defs, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("missing required field should fail, got %v", err)
	}
	if ve.FieldTitle != "Name" {
		t.Errorf("error should name the missing field, got %q", ve.FieldTitle)
	}

	vals := []models.CustomFieldValue{{FieldDefinitionID: "f1", StringValue: strp("x")}}
	if err := CheckRequired(defs, vals); err != nil {
		t.Errorf("all required fields present, got %v", err)
	}
}

func TestValidateAll_UnknownDefinition(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Name", Type: models.FieldString}}
	vals := []models.CustomFieldValue{{FieldDefinitionID: "ghost", StringValue: strp("x")}}

	if err := ValidateAll(defs, vals); err == nil {
		t.Error("value for an unknown definition should fail")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	def := &models.FieldDefinition{Title: "SKU", Type: models.FieldString, ValidationRegex: `^A`}
	v := &models.CustomFieldValue{StringValue: strp("A1")}

	for i := 0; i < 3; i++ {
		if err := Validate(v, def); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
}
