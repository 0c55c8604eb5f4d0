package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/pipeline"
	"github.com/jonathan/resume-intake/internal/types"
)

// SiteIDRequest represents the request body for /api/get-site-id
type SiteIDRequest struct {
	SiteURL string `json:"site_url" validate:"required"`
}

// DrivesRequest represents the request body for /api/get-drives
type DrivesRequest struct {
	SiteID string `json:"site_id" validate:"required"`
}

// FolderRequest represents the request body for /api/fetch-resumes and
// /api/parse-folder
type FolderRequest struct {
	SiteID  string `json:"site_id" validate:"required"`
	DriveID string `json:"drive_id" validate:"required"`
}

// ParseResumeRequest represents the request body for /api/parse-resume
type ParseResumeRequest struct {
	SiteID  string `json:"site_id" validate:"required"`
	DriveID string `json:"drive_id" validate:"required"`
	FileID  string `json:"file_id" validate:"required"`
}

// CandidateSummary is the listing/search projection of a candidate
type CandidateSummary struct {
	ResumeID   string                 `json:"resume_id"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	Summary    string                 `json:"summary"`
	ResumeURL  string                 `json:"resume_url"`
	ParsedData types.StructuredRecord `json:"parsed_data"`
}

// FileParseResult is one entry of the /api/parse-folder response
type FileParseResult struct {
	FileID    string        `json:"file_id"`
	Name      string        `json:"name"`
	Candidate *db.Candidate `json:"candidate,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// decodeAndValidate decodes the JSON body into req and runs struct validation.
// It writes the error response itself and reports whether to continue.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// bearerToken extracts the caller's bearer token, falling back to the
// configured tenant credentials when the header is absent.
func (s *Server) bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			s.errorResponse(w, http.StatusUnauthorized, "Malformed authorization header")
			return "", false
		}
		return token, true
	}

	if s.tokens.Configured() {
		token, err := s.tokens.Token(r.Context())
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), "Token exchange failed: "+err.Error())
			return "", false
		}
		return token, true
	}

	s.errorResponse(w, http.StatusUnauthorized, "No authorization header")
	return "", false
}

// handleGetSiteID resolves a SharePoint site URL to its site ID
func (s *Server) handleGetSiteID(w http.ResponseWriter, r *http.Request) {
	var req SiteIDRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}

	siteID, err := s.graph.GetSiteID(r.Context(), token, req.SiteURL)
	if err != nil {
		log.Printf("Error fetching site ID: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"site_id": siteID})
}

// handleGetDrives lists the document libraries of a site
func (s *Server) handleGetDrives(w http.ResponseWriter, r *http.Request) {
	var req DrivesRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}

	drives, err := s.graph.ListDrives(r.Context(), token, req.SiteID)
	if err != nil {
		log.Printf("Error fetching drives: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"drives": drives})
}

// handleFetchResumes lists the files in the Resume folder
func (s *Server) handleFetchResumes(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}

	folder, err := s.graph.GetFolderByPath(r.Context(), token, req.SiteID, req.DriveID, pipeline.ResumeFolderName)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	files, err := s.graph.ListChildren(r.Context(), token, req.SiteID, req.DriveID, folder.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, files)
}

// handleParseResume runs the full pipeline for one document
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req ParseResumeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}

	candidate, err := s.parser.Run(r.Context(), token, types.DocumentRef{
		SiteID:  req.SiteID,
		DriveID: req.DriveID,
		FileID:  req.FileID,
	})
	if err != nil {
		log.Printf("Error parsing resume %s: %v", req.FileID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleParseFolder parses every supported file in the Resume folder
func (s *Server) handleParseFolder(w http.ResponseWriter, r *http.Request) {
	var req FolderRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}

	results, err := s.parser.ParseFolder(r.Context(), token, req.SiteID, req.DriveID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	response := make([]FileParseResult, 0, len(results))
	for _, result := range results {
		entry := FileParseResult{
			FileID:    result.FileID,
			Name:      result.Name,
			Candidate: result.Candidate,
		}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		response = append(response, entry)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": response})
}

// handleSearchCandidates searches the retained structured records
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		s.errorResponse(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	candidates, err := s.db.SearchCandidates(r.Context(), keyword)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": summarize(candidates)})
}

// handleListCandidates lists all parsed candidates
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.db.ListCandidates(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": summarize(candidates)})
}

// handleListParsedResumes lists the one-off extraction log
func (s *Server) handleListParsedResumes(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListParsedResumes(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"parsed_resumes": records})
}

func summarize(candidates []db.Candidate) []CandidateSummary {
	summaries := make([]CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, CandidateSummary{
			ResumeID:   c.ResumeID,
			Name:       c.Name,
			Email:      c.Email,
			Phone:      c.Phone,
			Summary:    c.ProfileSummary,
			ResumeURL:  c.ResumeURL,
			ParsedData: c.ParsedData,
		})
	}
	return summaries
}
