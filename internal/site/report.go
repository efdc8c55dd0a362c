package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"git.home.luguber.info/inful/docsite/internal/buildstore"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ReportFileName is the build report written into the published output.
const ReportFileName = "build-report.json"

// Outcome is the final state of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageResult is the recorded result of one stage.
type StageResult struct {
	Duration time.Duration
	Result   metrics.ResultLabel
	Error    string
}

// ImportRecord is one code import spliced into a page.
type ImportRecord struct {
	Document  string `json:"document"`
	Reference string `json:"reference"`
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Report captures what a build did.
type Report struct {
	SchemaVersion int
	BuildID       string
	Start         time.Time
	End           time.Time
	Outcome       Outcome
	Locales       []string
	Documents     int
	BlogPosts     int
	Pages         int
	DocsHash      string
	Imports       []ImportRecord
	BrokenLinks   []linkcheck.BrokenLink
	SearchIndexes map[string]string
	// Changes is set when a build store holds a previous published build.
	Changes  *buildstore.Changes
	Stages   map[StageName]StageResult
	Warnings []string
	Errors   []error
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{
		SchemaVersion: 1,
		BuildID:       buildID,
		Start:         start,
		Stages:        map[StageName]StageResult{},
		SearchIndexes: map[string]string{},
	}
}

func (r *Report) recordStage(name StageName, d time.Duration, se *StageError, recorder metrics.Recorder) {
	res := StageResult{Duration: d, Result: resultLabel(se)}
	if se != nil {
		res.Error = se.Err.Error()
		r.Errors = append(r.Errors, se)
	}
	r.Stages[name] = res
	recorder.IncStageResult(string(name), res.Result)
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) finish(end time.Time) {
	r.End = end
	r.Outcome = OutcomeSuccess
	for _, err := range r.Errors {
		if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	}
}

// Published reports whether the build's output was promoted.
func (r *Report) Published() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeWarning
}

// ImportedFiles lists the distinct source files spliced into pages.
func (r *Report) ImportedFiles() []string {
	seen := map[string]bool{}
	var out []string
	for _, imp := range r.Imports {
		if !seen[imp.Path] {
			seen[imp.Path] = true
			out = append(out, imp.Path)
		}
	}
	sort.Strings(out)
	return out
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s outcome=%s locales=%d docs=%d posts=%d pages=%d imports=%d broken_links=%d duration=%s",
		r.BuildID, r.Outcome, len(r.Locales), r.Documents, r.BlogPosts, r.Pages, len(r.Imports), len(r.BrokenLinks),
		r.End.Sub(r.Start).Truncate(time.Millisecond))
}

// MarshalJSON encodes the report with durations in milliseconds and errors as strings.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.serializable())
}

func (r *Report) serializable() reportJSON {
	stages := make(map[string]stageJSON, len(r.Stages))
	for name, st := range r.Stages {
		stages[string(name)] = stageJSON{
			DurationMS: float64(st.Duration.Microseconds()) / 1000,
			Result:     string(st.Result),
			Error:      st.Error,
		}
	}
	errs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err.Error()
	}
	out := reportJSON{
		SchemaVersion: r.SchemaVersion,
		BuildID:       r.BuildID,
		Start:         r.Start,
		End:           r.End,
		Outcome:       string(r.Outcome),
		Locales:       r.Locales,
		Documents:     r.Documents,
		BlogPosts:     r.BlogPosts,
		Pages:         r.Pages,
		DocsHash:      r.DocsHash,
		Imports:       r.Imports,
		BrokenLinks:   r.BrokenLinks,
		SearchIndexes: r.SearchIndexes,
		Changes:       r.Changes,
		Stages:        stages,
		Warnings:      r.Warnings,
		Errors:        errs,
	}
	if out.Imports == nil {
		out.Imports = []ImportRecord{}
	}
	if out.BrokenLinks == nil {
		out.BrokenLinks = []linkcheck.BrokenLink{}
	}
	return out
}

type reportJSON struct {
	SchemaVersion int                    `json:"schema_version"`
	BuildID       string                 `json:"build_id"`
	Start         time.Time              `json:"start"`
	End           time.Time              `json:"end"`
	Outcome       string                 `json:"outcome"`
	Locales       []string               `json:"locales"`
	Documents     int                    `json:"documents"`
	BlogPosts     int                    `json:"blog_posts"`
	Pages         int                    `json:"pages"`
	DocsHash      string                 `json:"docs_hash"`
	Imports       []ImportRecord         `json:"imports"`
	BrokenLinks   []linkcheck.BrokenLink `json:"broken_links"`
	SearchIndexes map[string]string      `json:"search_indexes,omitempty"`
	Changes       *buildstore.Changes    `json:"changes,omitempty"`
	Stages        map[string]stageJSON   `json:"stages"`
	Warnings      []string               `json:"warnings,omitempty"`
	Errors        []string               `json:"errors,omitempty"`
}

type stageJSON struct {
	DurationMS float64 `json:"duration_ms"`
	Result     string  `json:"result"`
	Error      string  `json:"error,omitempty"`
}

// Persist writes the report into root atomically.
func (r *Report) Persist(root string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	path := filepath.Join(root, ReportFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}
	return nil
}
