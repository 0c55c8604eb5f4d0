// Package llm - extractor.go provides schema-driven structured extraction prompts.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", ["string"], etc.
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
// The input is embedded in a triple-quoted block so quote characters inside
// the resume cannot break the prompt structure.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent details.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// DomainLabels is the fixed vocabulary for domain classification.
var DomainLabels = []string{
	"Backend Developer",
	"Frontend Developer",
	"Full Stack Developer",
	"Mobile Developer",
	"Data Engineer",
	"Data Scientist",
	"Machine Learning Engineer",
	"DevOps Engineer",
	"Cloud Engineer",
	"QA Engineer",
	"Security Engineer",
	"Product Manager",
}

// ResumeProfileSchema returns the extraction schema for resume documents.
// The field set is the persistence contract: every key here may be promoted
// to a typed column by the normalizer.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeProfile",
		Description: `You are an expert resume parser.
Your task is to extract structured candidate information from raw resume text.
Use the existing profile summary if present, otherwise write a brief one based on the candidate's experience and education.`,
		Fields: []SchemaField{
			{
				Name:     "name",
				Type:     "\"string\"",
				Required: true,
			},
			{
				Name: "email",
				Type: "\"string\"",
			},
			{
				Name: "phone",
				Type: "\"string\"",
			},
			{
				Name:        "skills",
				Type:        "[\"string\"]",
				Description: "flat list of technical and soft skills",
				Required:    true,
			},
			{
				Name:        "projects",
				Type:        "[{\"name\": \"string\", \"description\": \"string\"}]",
				Description: "projects with a brief summary including the technical stack",
			},
			{
				Name: "education",
				Type: "[{\"degree\": \"string\", \"institution\": \"string\", \"duration\": \"string\"}]",
			},
			{
				Name:        "experience",
				Type:        "[{\"company\": \"string\", \"role\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\", \"description\": \"string\"}]",
				Description: "work experience in chronological order",
			},
			{
				Name: "profile_summary",
				Type: "\"string\"",
			},
			{
				Name:        "domain_classification",
				Type:        "[\"string\"]",
				Description: "role categories drawn from: " + strings.Join(DomainLabels, ", "),
			},
			{
				Name:        "total_years_of_experience",
				Type:        "number",
				Description: "total professional experience in years",
			},
		},
	}
}

// BuildResumePrompt renders the fixed resume extraction schema and the resume
// text into a single instruction string.
func BuildResumePrompt(resumeText string) string {
	return BuildExtractionPrompt(ResumeProfileSchema(), resumeText)
}
