// Package dto holds the request payloads shared by controllers, validated
// with go-playground/validator. Per-field value validation against an
// inventory's schema lives in fieldschema; this layer only checks payload
// shape.
package dto

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"Gin_postgres_redis_catalog/customid"
	"Gin_postgres_redis_catalog/models"
)

type FieldDefinitionDTO struct {
	ID          string           `json:"id" validate:"omitempty,uuid4"`
	Title       string           `json:"title" validate:"required,max=50"`
	Type        models.FieldType `json:"type" validate:"required,oneof=string int bool"`
	IsRequired  bool             `json:"isRequired"`
	ShowInTable bool             `json:"showInTable"`
	Description string           `json:"description" validate:"max=256"`

	ValidationRegex string `json:"validationRegex" validate:"max=256"`
	ValidationMin   string `json:"validationMin" validate:"max=50"`
	ValidationMax   string `json:"validationMax" validate:"max=50"`
}

type InventoryDTO struct {
	Title          string               `json:"title" validate:"required,max=256"`
	Description    string               `json:"description" validate:"max=4000"`
	ImageURL       string               `json:"imageUrl" validate:"omitempty,url,max=2048"`
	CategoryID     string               `json:"categoryId" validate:"required,uuid4"`
	IsPublic       bool                 `json:"isPublic"`
	Tags           []string             `json:"tags" validate:"max=10,dive,max=64"`
	CustomIDFormat *customid.Format     `json:"customIdFormat"`
	Fields         []FieldDefinitionDTO `json:"fieldDefinitions" validate:"dive"`

	// ExpectedVersion is required on update; ignored on create.
	ExpectedVersion int64 `json:"expectedVersion"`
}

type CustomFieldValueDTO struct {
	FieldDefinitionID string  `json:"fieldDefinitionId" validate:"required,uuid4"`
	StringValue       *string `json:"stringValue" validate:"omitempty,max=256"`
	IntValue          *int64  `json:"intValue"`
	BoolValue         *bool   `json:"boolValue"`
}

type ItemDTO struct {
	CustomID        string                `json:"customId" validate:"max=50"`
	CustomFields    []CustomFieldValueDTO `json:"customFields" validate:"dive"`
	ExpectedVersion int64                 `json:"expectedVersion"`
}

type CommentDTO struct {
	Text string `json:"text" validate:"required,max=2048"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(fieldDefinitionRules, FieldDefinitionDTO{})
	return v
}

// Validate checks a DTO's shape rules. The returned error is safe to show
// to the caller.
func Validate(payload any) error {
	return validate.Struct(payload)
}

// fieldDefinitionRules covers what tags cannot express: the regex must
// compile, min/max must parse as integers, and min must not exceed max.
func fieldDefinitionRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(FieldDefinitionDTO)

	if f.ValidationRegex != "" {
		if _, err := regexp.Compile(f.ValidationRegex); err != nil {
			sl.ReportError(f.ValidationRegex, "validationRegex", "ValidationRegex", "regex", "")
		}
	}

	var min, max int64
	var hasMin, hasMax bool
	if f.ValidationMin != "" {
		n, err := strconv.ParseInt(f.ValidationMin, 10, 64)
		if err != nil {
			sl.ReportError(f.ValidationMin, "validationMin", "ValidationMin", "intstring", "")
		} else {
			min, hasMin = n, true
		}
	}
	if f.ValidationMax != "" {
		n, err := strconv.ParseInt(f.ValidationMax, 10, 64)
		if err != nil {
			sl.ReportError(f.ValidationMax, "validationMax", "ValidationMax", "intstring", "")
		} else {
			max, hasMax = n, true
		}
	}
	if hasMin && hasMax && min > max {
		sl.ReportError(f.ValidationMin, "validationMin", "ValidationMin", "minltemax", "")
	}
}

// Values converts the DTO slice into model rows for the write path. IDs
// are assigned by the repository.
func (d *ItemDTO) Values() []models.CustomFieldValue {
	out := make([]models.CustomFieldValue, 0, len(d.CustomFields))
	for _, cf := range d.CustomFields {
		out = append(out, models.CustomFieldValue{
			FieldDefinitionID: cf.FieldDefinitionID,
			StringValue:       cf.StringValue,
			IntValue:          cf.IntValue,
			BoolValue:         cf.BoolValue,
		})
	}
	return out
}
