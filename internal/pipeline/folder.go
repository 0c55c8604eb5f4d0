package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/extract"
	"github.com/jonathan/resume-intake/internal/types"
)

// ResumeFolderName is the drive folder scanned for resume documents.
const ResumeFolderName = "Resume"

// defaultParseConcurrency bounds how many documents are parsed at once; each
// parse holds an LLM call open, so this is effectively the in-flight request
// cap against the provider.
const defaultParseConcurrency = 3

// FileResult is the outcome of one document within a folder parse. Failures
// are per-file; one bad document does not abort its siblings.
type FileResult struct {
	FileID    string
	Name      string
	Candidate *db.Candidate
	Err       error
}

// ParseFolder parses every supported document in the Resume folder, running
// invocations concurrently with a bounded limit. Results come back in the
// folder's listing order.
func (p *Parser) ParseFolder(ctx context.Context, token, siteID, driveID string) ([]FileResult, error) {
	folder, err := p.files.GetFolderByPath(ctx, token, siteID, driveID, ResumeFolderName)
	if err != nil {
		return nil, err
	}

	items, err := p.files.ListChildren(ctx, token, siteID, driveID, folder.ID)
	if err != nil {
		return nil, err
	}

	var candidates []FileResult
	for _, item := range items {
		if item.IsFolder() || !p.extractor.Supports(extract.FormatFromFilename(item.Name)) {
			continue
		}
		candidates = append(candidates, FileResult{FileID: item.ID, Name: item.Name})
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(defaultParseConcurrency)
	for i := range candidates {
		i := i
		g.Go(func() error {
			result := &candidates[i]
			result.Candidate, result.Err = p.Run(gCtx, token, types.DocumentRef{
				SiteID:  siteID,
				DriveID: driveID,
				FileID:  result.FileID,
			})
			return nil
		})
	}
	_ = g.Wait()

	return candidates, nil
}
