package db

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-intake/internal/types"
)

// Candidate is the persisted record summarizing one parsed resume.
// Exactly one row exists per file_id; resume_id is assigned once at creation
// and never reassigned.
type Candidate struct {
	ID                     uuid.UUID              `json:"id"`
	FileID                 string                 `json:"file_id"`
	ResumeID               string                 `json:"resume_id"`
	Name                   string                 `json:"name"`
	Email                  string                 `json:"email"`
	Phone                  string                 `json:"phone"`
	ProfileSummary         string                 `json:"profile_summary"`
	Skills                 []string               `json:"skills"`
	DomainClassification   []string               `json:"domain_classification"`
	TotalYearsOfExperience float64                `json:"total_years_of_experience"`
	ResumeURL              string                 `json:"resume_url"`
	ParsedData             types.StructuredRecord `json:"parsed_data"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// ParsedResume is a log-style record of a one-off extraction, kept
// independently of the candidate relational model.
type ParsedResume struct {
	ID             uuid.UUID `json:"id"`
	Filename       string    `json:"filename"`
	ProfileSummary string    `json:"profile_summary"`
	Skills         string    `json:"skills"`
	Projects       string    `json:"projects"`
	Experience     string    `json:"experience"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResumeIDGenerator produces a short opaque resume token.
type ResumeIDGenerator func() string

// NewResumeID is the default generator: a 12-character token derived from a
// random UUID, matching the width of the original identifiers.
func NewResumeID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
