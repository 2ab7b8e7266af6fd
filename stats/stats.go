// Package stats aggregates per-field statistics across all items of an
// inventory. Pure computation over already-loaded rows.
package stats

import (
	"fmt"
	"sort"

	"Gin_postgres_redis_catalog/models"
)

type FieldStats struct {
	FieldDefinitionID string           `json:"fieldDefinitionId"`
	Title             string           `json:"title"`
	Type              models.FieldType `json:"type"`

	// Numeric block, unset when the field has no values.
	MinValue     *int64   `json:"minValue,omitempty"`
	MaxValue     *int64   `json:"maxValue,omitempty"`
	AverageValue *float64 `json:"averageValue,omitempty"`

	// Top-K distinct values for string fields; the two synthetic
	// "True: n" / "False: n" entries for bool fields.
	MostPopularValues []string `json:"mostPopularValues,omitempty"`
}

type InventoryStats struct {
	TotalItems int64        `json:"totalItems"`
	Fields     []FieldStats `json:"fieldStatistics"`
}

// Compute produces one FieldStats per definition, in definition order.
// topK bounds the string frequency ranking; ties keep first-encountered
// order.
func Compute(defs []models.FieldDefinition, values []models.CustomFieldValue, topK int) []FieldStats {
	byField := make(map[string][]*models.CustomFieldValue, len(defs))
	for i := range values {
		v := &values[i]
		byField[v.FieldDefinitionID] = append(byField[v.FieldDefinitionID], v)
	}

	out := make([]FieldStats, 0, len(defs))
	for i := range defs {
		def := &defs[i]
		fs := FieldStats{FieldDefinitionID: def.ID, Title: def.Title, Type: def.Type}
		vals := byField[def.ID]
		switch def.Type {
		case models.FieldInt:
			intStats(&fs, vals)
		case models.FieldString:
			fs.MostPopularValues = topValues(vals, topK)
		case models.FieldBool:
			fs.MostPopularValues = boolCounts(vals)
		}
		out = append(out, fs)
	}
	return out
}

func intStats(fs *FieldStats, vals []*models.CustomFieldValue) {
	var (
		count int64
		sum   int64
		min   int64
		max   int64
	)
	for _, v := range vals {
		if v.IntValue == nil {
			continue
		}
		n := *v.IntValue
		if count == 0 || n < min {
			min = n
		}
		if count == 0 || n > max {
			max = n
		}
		sum += n
		count++
	}
	if count == 0 {
		return
	}
	avg := float64(sum) / float64(count)
	fs.MinValue, fs.MaxValue, fs.AverageValue = &min, &max, &avg
}

func topValues(vals []*models.CustomFieldValue, topK int) []string {
	counts := make(map[string]int)
	var order []string // first-encountered order, the tie-break
	for _, v := range vals {
		if v.StringValue == nil {
			continue
		}
		s := *v.StringValue
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if topK >= 0 && len(order) > topK {
		order = order[:topK]
	}
	return order
}

func boolCounts(vals []*models.CustomFieldValue) []string {
	var trueCount, falseCount int
	for _, v := range vals {
		if v.BoolValue == nil {
			continue
		}
		if *v.BoolValue {
			trueCount++
		} else {
			falseCount++
		}
	}
	return []string{
		fmt.Sprintf("True: %d", trueCount),
		fmt.Sprintf("False: %d", falseCount),
	}
}
