package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intake/internal/types"
)

func TestNormalizeDedupSkills(t *testing.T) {
	attrs := Normalize(types.StructuredRecord{
		"skills": []any{"Go", "Python", "Go"},
	})

	assert.Equal(t, []string{"Go", "Python"}, attrs.Skills)
}

func TestDedupSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"Exact duplicates removed", []string{"Go", "Python", "Go"}, []string{"Go", "Python"}},
		{"First occurrence order kept", []string{"SQL", "Go", "SQL", "Docker", "Go"}, []string{"SQL", "Go", "Docker"}},
		{"Case-sensitive match", []string{"go", "Go"}, []string{"go", "Go"}},
		{"Whitespace trimmed before comparing", []string{" Go ", "Go"}, []string{"Go"}},
		{"Empty entries dropped", []string{"", "Go", "  "}, []string{"Go"}},
		{"Nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupSkills(tt.input))
		})
	}
}

func TestNormalizeExperienceYears(t *testing.T) {
	tests := []struct {
		name     string
		record   types.StructuredRecord
		expected float64
	}{
		{"Absent defaults to zero", types.StructuredRecord{}, 0},
		{"Negative clamps to zero", types.StructuredRecord{"total_years_of_experience": float64(-3)}, 0},
		{"Number passes through", types.StructuredRecord{"total_years_of_experience": 7.5}, 7.5},
		{"Numeric string coerced", types.StructuredRecord{"total_years_of_experience": "4.5"}, 4.5},
		{"Numeric string with spaces", types.StructuredRecord{"total_years_of_experience": " 3 "}, 3},
		{"Non-numeric string defaults", types.StructuredRecord{"total_years_of_experience": "about five"}, 0},
		{"Null defaults", types.StructuredRecord{"total_years_of_experience": nil}, 0},
		{"Wrong type defaults", types.StructuredRecord{"total_years_of_experience": []any{"5"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := Normalize(tt.record)
			assert.Equal(t, tt.expected, attrs.TotalYearsOfExperience)
		})
	}
}

func TestNormalizeStringDefaults(t *testing.T) {
	// Absent optional keys must default, never propagate null into stored fields.
	attrs := Normalize(types.StructuredRecord{})

	assert.Equal(t, "", attrs.Name)
	assert.Equal(t, "", attrs.Email)
	assert.Equal(t, "", attrs.Phone)
	assert.Equal(t, "", attrs.ProfileSummary)
	assert.Equal(t, []string{}, attrs.Skills)
	assert.Equal(t, []string{}, attrs.DomainClassification)
}

func TestNormalizeNullStringField(t *testing.T) {
	attrs := Normalize(types.StructuredRecord{"email": nil, "name": "Jane"})

	assert.Equal(t, "", attrs.Email)
	assert.Equal(t, "Jane", attrs.Name)
}

func TestNormalizeDomainClassificationOrderPreserved(t *testing.T) {
	attrs := Normalize(types.StructuredRecord{
		"domain_classification": []any{"Backend Developer", "DevOps Engineer"},
	})

	assert.Equal(t, []string{"Backend Developer", "DevOps Engineer"}, attrs.DomainClassification)
}

func TestNormalizeRetainsParsedDataVerbatim(t *testing.T) {
	record := types.StructuredRecord{
		"name":   "Jane",
		"skills": []any{"Go", "Go"},
		"extra":  map[string]any{"anything": true},
	}

	attrs := Normalize(record)

	// ParsedData is the record as recovered, not the normalized subset.
	require.Equal(t, record, attrs.ParsedData)
	assert.Equal(t, []any{"Go", "Go"}, attrs.ParsedData["skills"], "dedup must not mutate the retained record")
	assert.Equal(t, []string{"Go"}, attrs.Skills)
}

func TestNormalizeSkillsWithMixedTypes(t *testing.T) {
	attrs := Normalize(types.StructuredRecord{
		"skills": []any{"Go", float64(42), nil, "Python"},
	})

	assert.Equal(t, []string{"Go", "Python"}, attrs.Skills)
}

func TestNormalizeRoundTripNeverPanics(t *testing.T) {
	// Any record the recoverer produces must normalize without error.
	records := []types.StructuredRecord{
		{},
		{"skills": "not a list"},
		{"domain_classification": float64(3)},
		{"name": float64(1), "email": true, "phone": []any{}},
		{"projects": "free text", "experience": nil},
	}

	for _, record := range records {
		assert.NotPanics(t, func() { Normalize(record) })
	}
}
