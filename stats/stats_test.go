package stats

import (
	"reflect"
	"testing"

	"Gin_postgres_redis_catalog/models"
)

func strp(s string) *string { return &s }
func intp(n int64) *int64   { return &n }
func boolp(b bool) *bool    { return &b }

func intVals(id string, ns ...int64) []models.CustomFieldValue {
	out := make([]models.CustomFieldValue, 0, len(ns))
	for _, n := range ns {
		out = append(out, models.CustomFieldValue{FieldDefinitionID: id, IntValue: intp(n)})
	}
	return out
}

func strVals(id string, ss ...string) []models.CustomFieldValue {
	out := make([]models.CustomFieldValue, 0, len(ss))
	for _, s := range ss {
		out = append(out, models.CustomFieldValue{FieldDefinitionID: id, StringValue: strp(s)})
	}
	return out
}

func TestCompute_IntField(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Qty", Type: models.FieldInt}}

	got := Compute(defs, intVals("f1", 10, 20, 30), 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 field, got %d", len(got))
	}
	fs := got[0]
	if fs.MinValue == nil || *fs.MinValue != 10 {
		t.Errorf("min: expected 10, got %v", fs.MinValue)
	}
	if fs.MaxValue == nil || *fs.MaxValue != 30 {
		t.Errorf("max: expected 30, got %v", fs.MaxValue)
	}
	if fs.AverageValue == nil || *fs.AverageValue != 20.0 {
		t.Errorf("avg: expected 20.0, got %v", fs.AverageValue)
	}
}

func TestCompute_IntFieldEmpty(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Qty", Type: models.FieldInt}}

	fs := Compute(defs, nil, 5)[0]
	if fs.MinValue != nil || fs.MaxValue != nil || fs.AverageValue != nil {
		t.Errorf("numeric block must stay unset with no values: %+v", fs)
	}
}

func TestCompute_IntFieldSkipsNil(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Qty", Type: models.FieldInt}}
	vals := append(intVals("f1", 5), models.CustomFieldValue{FieldDefinitionID: "f1"})

	fs := Compute(defs, vals, 5)[0]
	if fs.AverageValue == nil || *fs.AverageValue != 5.0 {
		t.Errorf("nil values must not dilute the average, got %v", fs.AverageValue)
	}
}

func TestCompute_StringTopK(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Color", Type: models.FieldString}}
	vals := strVals("f1", "red", "blue", "red", "green", "blue", "red")

	fs := Compute(defs, vals, 2)[0]
	want := []string{"red", "blue"}
	if !reflect.DeepEqual(fs.MostPopularValues, want) {
		t.Errorf("expected %v, got %v", want, fs.MostPopularValues)
	}
}

func TestCompute_StringTieKeepsFirstSeen(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Color", Type: models.FieldString}}
	vals := strVals("f1", "blue", "red", "red", "blue")

	fs := Compute(defs, vals, 5)[0]
	want := []string{"blue", "red"}
	if !reflect.DeepEqual(fs.MostPopularValues, want) {
		t.Errorf("tie must keep first-encountered order, expected %v, got %v", want, fs.MostPopularValues)
	}
}

func TestCompute_BoolCounts(t *testing.T) {
	defs := []models.FieldDefinition{{ID: "f1", Title: "Active", Type: models.FieldBool}}
	vals := []models.CustomFieldValue{
		{FieldDefinitionID: "f1", BoolValue: boolp(true)},
		{FieldDefinitionID: "f1", BoolValue: boolp(true)},
		{FieldDefinitionID: "f1", BoolValue: boolp(false)},
		{FieldDefinitionID: "f1"},
	}

	fs := Compute(defs, vals, 5)[0]
	want := []string{"True: 2", "False: 1"}
	if !reflect.DeepEqual(fs.MostPopularValues, want) {
		t.Errorf("expected %v, got %v", want, fs.MostPopularValues)
	}
}

func TestCompute_DefinitionOrderPreserved(t *testing.T) {
	defs := []models.FieldDefinition{
		{ID: "f2", Title: "Color", Type: models.FieldString},
		{ID: "f1", Title: "Qty", Type: models.FieldInt},
	}

	got := Compute(defs, nil, 5)
	if got[0].Title != "Color" || got[1].Title != "Qty" {
		t.Errorf("fields must follow definition order, got %+v", got)
	}
}
