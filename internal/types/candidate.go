// Package types defines the shared domain types for the resume intake pipeline.
package types

// StructuredRecord is the JSON object recovered from an LLM extraction reply.
// Keys are the schema field names; values are whatever the model produced.
type StructuredRecord map[string]any

// CandidateAttributes holds the normalized fields promoted from a structured
// record, plus the record itself retained verbatim for audit.
type CandidateAttributes struct {
	Name                   string           `json:"name"`
	Email                  string           `json:"email"`
	Phone                  string           `json:"phone"`
	ProfileSummary         string           `json:"profile_summary"`
	Skills                 []string         `json:"skills"`
	DomainClassification   []string         `json:"domain_classification"`
	TotalYearsOfExperience float64          `json:"total_years_of_experience"`
	ResumeURL              string           `json:"resume_url"`
	ParsedData             StructuredRecord `json:"parsed_data"`
}

// DocumentRef identifies one resume document in the remote file store.
type DocumentRef struct {
	SiteID  string `json:"site_id"`
	DriveID string `json:"drive_id"`
	FileID  string `json:"file_id"`
}
