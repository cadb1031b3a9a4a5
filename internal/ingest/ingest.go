// Package ingest runs the full caller-side flow: fetch a notification dump,
// run the extraction pipeline over it, and persist the batch and run
// bookkeeping to the sink.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkhanna/txnsight/internal/pipeline"
)

// TextSource yields raw multi-line notification text for a URI.
type TextSource interface {
	FetchText(ctx context.Context, uri string) (string, error)
}

// RecordSink persists run bookkeeping and record batches.
type RecordSink interface {
	StartAnalysisRun(ctx context.Context, runID, extractorType string) error
	InsertRecords(ctx context.Context, runID string, records []pipeline.Transaction) error
	MarkAnalysisRunSucceeded(ctx context.Context, runID string, res *pipeline.Result) error
	MarkAnalysisRunFailed(ctx context.Context, runID string, runErr error)
}

// State holds the shared state across all ingest steps.
type State struct {
	URI     string
	RunID   string
	RawText string
	Result  *pipeline.Result
}

// Step is a single step in the ingest job.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// FetchTextStep downloads the notification dump from the source.
type FetchTextStep struct {
	Source TextSource
}

func (s *FetchTextStep) Execute(ctx context.Context, state *State) error {
	rawText, err := s.Source.FetchText(ctx, state.URI)
	if err != nil {
		return err
	}
	state.RawText = rawText
	return nil
}

// StartRunStep records the run (status=RUNNING) in the sink.
type StartRunStep struct {
	Sink          RecordSink
	ExtractorType string
}

func (s *StartRunStep) Execute(ctx context.Context, state *State) error {
	state.RunID = uuid.NewString()
	return s.Sink.StartAnalysisRun(ctx, state.RunID, s.ExtractorType)
}

// AnalyzeStep runs the extraction pipeline over the fetched text.
type AnalyzeStep struct {
	Sink RecordSink
	Opts pipeline.Options
}

func (s *AnalyzeStep) Execute(ctx context.Context, state *State) error {
	opts := s.Opts
	opts.RunID = state.RunID

	res, err := pipeline.Run(ctx, state.RawText, opts)
	if err != nil {
		s.Sink.MarkAnalysisRunFailed(ctx, state.RunID, err)
		return err
	}
	state.Result = res
	return nil
}

// PersistRecordsStep writes the batch to the sink.
type PersistRecordsStep struct {
	Sink RecordSink
}

func (s *PersistRecordsStep) Execute(ctx context.Context, state *State) error {
	if err := s.Sink.InsertRecords(ctx, state.RunID, state.Result.Records); err != nil {
		s.Sink.MarkAnalysisRunFailed(ctx, state.RunID, err)
		return err
	}
	return nil
}

// MarkSuccessStep closes the run with its summary figures.
type MarkSuccessStep struct {
	Sink RecordSink
}

func (s *MarkSuccessStep) Execute(ctx context.Context, state *State) error {
	return s.Sink.MarkAnalysisRunSucceeded(ctx, state.RunID, state.Result)
}

// Job executes a sequence of steps in order.
type Job struct {
	steps []Step
}

// NewJob creates a job from the given steps.
func NewJob(steps ...Step) *Job {
	return &Job{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (j *Job) Execute(ctx context.Context, state *State) error {
	for i, step := range j.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("ingest step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewIngestJob builds the standard 5-step job for one notification dump.
func NewIngestJob(source TextSource, sink RecordSink, opts pipeline.Options) *Job {
	extractorType := "REGEX"
	if opts.Sessions != nil {
		extractorType = "GEMINI_CHAT"
	}
	return NewJob(
		&FetchTextStep{Source: source},
		&StartRunStep{Sink: sink, ExtractorType: extractorType},
		&AnalyzeStep{Sink: sink, Opts: opts},
		&PersistRecordsStep{Sink: sink},
		&MarkSuccessStep{Sink: sink},
	)
}

// Run is a convenience wrapper that builds and executes the standard job.
func Run(ctx context.Context, uri string, source TextSource, sink RecordSink, opts pipeline.Options) (*pipeline.Result, error) {
	state := &State{URI: uri}
	if err := NewIngestJob(source, sink, opts).Execute(ctx, state); err != nil {
		return nil, err
	}
	return state.Result, nil
}
