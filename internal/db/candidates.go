package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/resume-intake/internal/types"
)

const uniqueViolation = "23505"

const candidateColumns = `id, file_id, resume_id, name, email, phone, profile_summary,
	skills, domain_classification, total_years_of_experience, resume_url, parsed_data,
	created_at, updated_at`

// UpsertCandidate inserts a candidate for file_id or, when a row already
// exists, overwrites every attribute except file_id and resume_id. The write
// is a single conditional insert guarded by the unique constraint, retried
// once on a uniqueness violation (a racing insert can still collide on the
// freshly generated resume_id).
func (db *DB) UpsertCandidate(ctx context.Context, fileID string, gen ResumeIDGenerator, attrs types.CandidateAttributes) (*Candidate, error) {
	if gen == nil {
		gen = NewResumeID
	}

	candidate, err := db.upsertCandidateOnce(ctx, fileID, gen(), attrs)
	if err == nil {
		return candidate, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		candidate, err = db.upsertCandidateOnce(ctx, fileID, gen(), attrs)
		if err == nil {
			return candidate, nil
		}
	}
	if errors.As(err, &pgErr) {
		return nil, &StorageError{Message: "failed to upsert candidate", Cause: err}
	}
	return nil, err
}

func (db *DB) upsertCandidateOnce(ctx context.Context, fileID, resumeID string, attrs types.CandidateAttributes) (*Candidate, error) {
	parsedData, err := json.Marshal(attrs.ParsedData)
	if err != nil {
		return nil, &StorageError{Message: "failed to marshal parsed_data", Cause: err}
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, file_id, resume_id, name, email, phone, profile_summary,
			skills, domain_classification, total_years_of_experience, resume_url, parsed_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (file_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			profile_summary = EXCLUDED.profile_summary,
			skills = EXCLUDED.skills,
			domain_classification = EXCLUDED.domain_classification,
			total_years_of_experience = EXCLUDED.total_years_of_experience,
			resume_url = EXCLUDED.resume_url,
			parsed_data = EXCLUDED.parsed_data,
			updated_at = NOW()
		 RETURNING `+candidateColumns,
		uuid.New(), fileID, resumeID, attrs.Name, attrs.Email, attrs.Phone, attrs.ProfileSummary,
		attrs.Skills, attrs.DomainClassification, attrs.TotalYearsOfExperience, attrs.ResumeURL, parsedData,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, err
		}
		return nil, &StorageError{Message: "failed to upsert candidate", Cause: err}
	}
	return candidate, nil
}

// GetCandidateByFileID retrieves a candidate by its source file identity.
// Returns nil when no candidate exists for the file.
func (db *DB) GetCandidateByFileID(ctx context.Context, fileID string) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE file_id = $1`, fileID)

	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &StorageError{Message: "failed to get candidate", Cause: err}
	}
	return candidate, nil
}

// SearchCandidates returns candidates whose retained structured record
// contains the keyword, case-insensitively.
func (db *DB) SearchCandidates(ctx context.Context, keyword string) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE parsed_data::text ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC`,
		keyword,
	)
	if err != nil {
		return nil, &StorageError{Message: "failed to search candidates", Cause: err}
	}
	defer rows.Close()

	return collectCandidates(rows)
}

// ListCandidates returns all candidates, newest first.
func (db *DB) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, &StorageError{Message: "failed to list candidates", Cause: err}
	}
	defer rows.Close()

	return collectCandidates(rows)
}

func collectCandidates(rows pgx.Rows) ([]Candidate, error) {
	candidates := []Candidate{}
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, &StorageError{Message: "failed to scan candidate", Cause: err}
		}
		candidates = append(candidates, *candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Message: "failed to read candidates", Cause: err}
	}
	return candidates, nil
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var parsedData []byte
	err := row.Scan(
		&c.ID, &c.FileID, &c.ResumeID, &c.Name, &c.Email, &c.Phone, &c.ProfileSummary,
		&c.Skills, &c.DomainClassification, &c.TotalYearsOfExperience, &c.ResumeURL, &parsedData,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(parsedData, &c.ParsedData); err != nil {
		return nil, err
	}
	return &c, nil
}
