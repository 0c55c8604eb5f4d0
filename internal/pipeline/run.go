// Package pipeline provides the high-level orchestration for resume intake:
// document fetch, text extraction, LLM extraction, recovery, normalization
// and idempotent persistence.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/extract"
	"github.com/jonathan/resume-intake/internal/graph"
	"github.com/jonathan/resume-intake/internal/llm"
	"github.com/jonathan/resume-intake/internal/parsing"
	"github.com/jonathan/resume-intake/internal/types"
)

// State identifies where an invocation is in its run. Every state before
// Persisting performs no durable write, so a failure there leaves no trace.
type State string

// Pipeline states in execution order.
const (
	StateFetching    State = "fetching"
	StateExtracting  State = "extracting"
	StatePrompting   State = "prompting"
	StateAwaitingLLM State = "awaiting_llm"
	StateRecovering  State = "recovering"
	StateNormalizing State = "normalizing"
	StatePersisting  State = "persisting"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// StateCallback is invoked on every state transition.
type StateCallback func(state State)

// FileStore is the remote file-store collaborator.
type FileStore interface {
	GetItem(ctx context.Context, token, siteID, driveID, itemID string) (*graph.Item, error)
	Download(ctx context.Context, token, siteID, driveID, itemID string) ([]byte, error)
	GetFolderByPath(ctx context.Context, token, siteID, driveID, path string) (*graph.Item, error)
	ListChildren(ctx context.Context, token, siteID, driveID, folderID string) ([]graph.Item, error)
}

// CandidateStore persists parsed candidates.
type CandidateStore interface {
	UpsertCandidate(ctx context.Context, fileID string, gen db.ResumeIDGenerator, attrs types.CandidateAttributes) (*db.Candidate, error)
}

// Options holds the collaborators for a Parser.
type Options struct {
	Files     FileStore
	LLM       llm.Client
	Store     CandidateStore
	Extractor *extract.Extractor
	ResumeIDs db.ResumeIDGenerator
	OnState   StateCallback
	Verbose   bool
}

// Parser runs the ingestion pipeline. It holds no per-invocation state, so
// one Parser serves concurrent invocations.
type Parser struct {
	files     FileStore
	llm       llm.Client
	store     CandidateStore
	extractor *extract.Extractor
	resumeIDs db.ResumeIDGenerator
	onState   StateCallback
	verbose   bool
}

// New creates a Parser.
func New(opts Options) (*Parser, error) {
	if opts.Files == nil {
		return nil, fmt.Errorf("file store is required")
	}
	if opts.LLM == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("candidate store is required")
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New()
	}
	resumeIDs := opts.ResumeIDs
	if resumeIDs == nil {
		resumeIDs = db.NewResumeID
	}
	return &Parser{
		files:     opts.Files,
		llm:       opts.LLM,
		store:     opts.Store,
		extractor: extractor,
		resumeIDs: resumeIDs,
		onState:   opts.OnState,
		verbose:   opts.Verbose,
	}, nil
}

// Run executes one pipeline invocation for the referenced document. Any
// failure is terminal for the invocation; nothing is persisted unless the
// final upsert succeeds.
func (p *Parser) Run(ctx context.Context, token string, ref types.DocumentRef) (*db.Candidate, error) {
	p.setState(StateFetching)
	item, err := p.files.GetItem(ctx, token, ref.SiteID, ref.DriveID, ref.FileID)
	if err != nil {
		return nil, p.fail(StateFetching, err)
	}
	data, err := p.files.Download(ctx, token, ref.SiteID, ref.DriveID, ref.FileID)
	if err != nil {
		return nil, p.fail(StateFetching, err)
	}

	p.setState(StateExtracting)
	format := extract.FormatFromFilename(item.Name)
	text, err := p.extractor.Text(data, format)
	if err != nil {
		return nil, p.fail(StateExtracting, err)
	}
	p.debugf("extracted %d characters from %s", len(text), item.Name)

	p.setState(StatePrompting)
	prompt := llm.BuildResumePrompt(text)

	p.setState(StateAwaitingLLM)
	raw, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, p.fail(StateAwaitingLLM, err)
	}

	p.setState(StateRecovering)
	record, err := parsing.Recover(raw)
	if err != nil {
		return nil, p.fail(StateRecovering, err)
	}

	p.setState(StateNormalizing)
	attrs := parsing.Normalize(record)
	attrs.ResumeURL = item.WebURL

	p.setState(StatePersisting)
	candidate, err := p.store.UpsertCandidate(ctx, ref.FileID, p.resumeIDs, attrs)
	if err != nil {
		return nil, p.fail(StatePersisting, err)
	}

	p.setState(StateDone)
	p.debugf("parsed %s into candidate %s", item.Name, candidate.ResumeID)
	return candidate, nil
}

func (p *Parser) setState(state State) {
	if p.onState != nil {
		p.onState(state)
	}
	p.debugf("state: %s", state)
}

func (p *Parser) fail(state State, err error) error {
	if p.onState != nil {
		p.onState(StateFailed)
	}
	log.Printf("pipeline failed in state %s: %v", state, err)
	return err
}

func (p *Parser) debugf(format string, args ...any) {
	if p.verbose {
		log.Printf("pipeline: "+format, args...)
	}
}
