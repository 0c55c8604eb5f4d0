// Package server provides the HTTP REST API for the resume intake pipeline.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/extract"
	"github.com/jonathan/resume-intake/internal/graph"
	"github.com/jonathan/resume-intake/internal/llm"
	"github.com/jonathan/resume-intake/internal/parsing"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error
func HTTPStatus(err error) int {
	var (
		fetchErr    *graph.Error
		unsupported *extract.UnsupportedFormatError
		upstream    *llm.UpstreamError
		malformed   *llm.UpstreamMalformedError
		recovery    *parsing.ParseRecoveryError
		storage     *db.StorageError
	)
	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr), errors.As(err, &upstream),
		errors.As(err, &malformed), errors.As(err, &recovery):
		return http.StatusBadGateway
	case errors.As(err, &storage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
