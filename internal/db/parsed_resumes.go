package db

import (
	"context"

	"github.com/google/uuid"
)

// InsertParsedResume appends a one-off extraction result. There is no
// uniqueness constraint; this is a log-style record.
func (db *DB) InsertParsedResume(ctx context.Context, r ParsedResume) (*ParsedResume, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (id, filename, profile_summary, skills, projects, experience)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		r.ID, r.Filename, r.ProfileSummary, r.Skills, r.Projects, r.Experience,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, &StorageError{Message: "failed to insert parsed resume", Cause: err}
	}
	return &r, nil
}

// ListParsedResumes returns extraction log records, newest first.
func (db *DB) ListParsedResumes(ctx context.Context) ([]ParsedResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, profile_summary, skills, projects, experience, created_at
		 FROM parsed_resumes ORDER BY created_at DESC`)
	if err != nil {
		return nil, &StorageError{Message: "failed to list parsed resumes", Cause: err}
	}
	defer rows.Close()

	records := []ParsedResume{}
	for rows.Next() {
		var r ParsedResume
		if err := rows.Scan(&r.ID, &r.Filename, &r.ProfileSummary, &r.Skills, &r.Projects, &r.Experience, &r.CreatedAt); err != nil {
			return nil, &StorageError{Message: "failed to scan parsed resume", Cause: err}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Message: "failed to read parsed resumes", Cause: err}
	}
	return records, nil
}
