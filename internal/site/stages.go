package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput  StageName = "prepare_output"
	StageDiscoverDocs   StageName = "discover_docs"
	StageLoadSidebars   StageName = "load_sidebars"
	StageContentPlugins StageName = "content_plugins"
	StageRenderMarkdown StageName = "render_markdown"
	StageCheckLinks     StageName = "check_links"
	StageWritePages     StageName = "write_pages"
	StageSearchIndex    StageName = "search_index"
	StageStaticAssets   StageName = "static_assets"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *buildState) error

type stageDef struct {
	name StageName
	fn   Stage
}

func pipeline() []stageDef {
	return []stageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StageDiscoverDocs, stageDiscoverDocs},
		{StageLoadSidebars, stageLoadSidebars},
		{StageContentPlugins, stageContentPlugins},
		{StageRenderMarkdown, stageRenderMarkdown},
		{StageCheckLinks, stageCheckLinks},
		{StageWritePages, stageWritePages},
		{StageSearchIndex, stageSearchIndex},
		{StageStaticAssets, stageStaticAssets},
	}
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError ties a failure to the stage it happened in.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newStageError(stage StageName, err error) *StageError {
	kind := StageErrorFatal
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = StageErrorCanceled
	}
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// runStages executes stages in order, recording timing and stopping on the
// first error. Cancellation is checked between stages.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := &StageError{Kind: StageErrorCanceled, Stage: st.name, Err: err}
			bs.report.recordStage(st.name, 0, se, bs.recorder)
			return se
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.recorder.ObserveStageDuration(string(st.name), dur)

		if err != nil {
			se := newStageError(st.name, err)
			bs.report.recordStage(st.name, dur, se, bs.recorder)
			return se
		}
		bs.report.recordStage(st.name, dur, nil, bs.recorder)
		bs.logger.Debug("stage complete",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}

func resultLabel(se *StageError) metrics.ResultLabel {
	switch {
	case se == nil:
		return metrics.ResultSuccess
	case se.Kind == StageErrorCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

// stageLogger returns the builder's logger tagged with a stage.
func stageLogger(bs *buildState, stage StageName) *slog.Logger {
	return bs.logger.With(logfields.Stage(string(stage)))
}
