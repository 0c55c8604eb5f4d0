// Package extract converts raw resume document bytes into plain text.
// Extraction strategies are registered per file-name extension so new
// formats can be added without touching the pipeline.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Func is a single-format extraction strategy.
type Func func(data []byte) (string, error)

// UnsupportedFormatError indicates the file extension matches no registered
// extraction strategy.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format: %q", e.Format)
}

// Extractor dispatches raw document bytes to a format-specific strategy.
type Extractor struct {
	strategies map[string]Func
}

// New returns an Extractor with the default pdf and docx strategies registered.
func New() *Extractor {
	e := &Extractor{strategies: make(map[string]Func)}
	e.Register("pdf", PDF)
	e.Register("docx", DOCX)
	return e
}

// Register adds or replaces the strategy for a format. The format is an
// extension without the leading dot, case-insensitive.
func (e *Extractor) Register(format string, fn Func) {
	e.strategies[strings.ToLower(format)] = fn
}

// Supports reports whether a strategy is registered for the format.
func (e *Extractor) Supports(format string) bool {
	_, ok := e.strategies[strings.ToLower(format)]
	return ok
}

// Text extracts plain text from document bytes using the strategy for the
// given format. Returns UnsupportedFormatError for unknown formats.
func (e *Extractor) Text(data []byte, format string) (string, error) {
	fn, ok := e.strategies[strings.ToLower(format)]
	if !ok {
		return "", &UnsupportedFormatError{Format: format}
	}
	return fn(data)
}

// FormatFromFilename derives the format hint from a file name extension.
func FormatFromFilename(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
