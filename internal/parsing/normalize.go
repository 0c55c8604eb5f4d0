package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// Normalize promotes typed candidate attributes from a recovered structured
// record. The record itself is retained verbatim in ParsedData and never
// mutated; normalization only shapes the promoted copies.
//
// Defaults for absent or malformed values:
//   - string fields: ""
//   - skills, domain_classification: empty slice
//   - total_years_of_experience: 0
func Normalize(record types.StructuredRecord) types.CandidateAttributes {
	return types.CandidateAttributes{
		Name:                   stringField(record, "name"),
		Email:                  stringField(record, "email"),
		Phone:                  stringField(record, "phone"),
		ProfileSummary:         stringField(record, "profile_summary"),
		Skills:                 DedupSkills(stringListField(record, "skills")),
		DomainClassification:   stringListField(record, "domain_classification"),
		TotalYearsOfExperience: yearsField(record, "total_years_of_experience"),
		ParsedData:             record,
	}
}

// DedupSkills removes exact duplicates. Output order is first occurrence,
// which keeps results stable across runs regardless of map iteration order.
func DedupSkills(skills []string) []string {
	deduped := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		deduped = append(deduped, skill)
	}
	return deduped
}

func stringField(record types.StructuredRecord, key string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return ""
}

func stringListField(record types.StructuredRecord, key string) []string {
	raw, ok := record[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// yearsField coerces total experience to a non-negative decimal. The model
// sometimes emits a numeric string ("7.5") instead of a JSON number; both are
// accepted. Anything else, and any negative value, defaults to 0.
func yearsField(record types.StructuredRecord, key string) float64 {
	var years float64
	switch v := record[key].(type) {
	case float64:
		years = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		years = parsed
	default:
		return 0
	}
	if years < 0 {
		return 0
	}
	return years
}
