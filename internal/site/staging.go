package site

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// staging writes a build next to the output directory and promotes it only
// when every stage succeeded.
type staging struct {
	outputDir string
	dir       string
	logger    *slog.Logger
}

// StageDir is the sibling directory a build of outputDir is written to.
func StageDir(outputDir string) string { return outputDir + "_stage" }

// BackupDir holds the previously published output after a promotion.
func BackupDir(outputDir string) string { return outputDir + ".prev" }

func (s *staging) begin() error {
	dir := StageDir(s.outputDir)
	// A leftover from an interrupted build is never promoted.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove stale staging directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	s.dir = dir
	s.logger.Debug("initialized staging directory", slog.String("staging", dir), logfields.Output(s.outputDir))
	return nil
}

// promote moves the current output to the backup directory and renames the
// staging directory into place.
func (s *staging) promote() error {
	if s.dir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := BackupDir(s.outputDir)
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	if _, err := os.Stat(s.outputDir); err == nil {
		if err := os.Rename(s.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(s.dir, s.outputDir); err != nil {
		// Put the previous output back so the site stays served.
		if _, statErr := os.Stat(prev); statErr == nil {
			_ = os.Rename(prev, s.outputDir)
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	s.dir = ""
	s.logger.Info("promoted staging directory", logfields.Output(s.outputDir))
	return nil
}

// abort removes the staging directory after a failed build.
func (s *staging) abort() {
	if s.dir == "" {
		return
	}
	dir := s.dir
	s.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Warn("failed to remove staging directory after abort", slog.String("staging", dir), logfields.Error(err))
		return
	}
	s.logger.Debug("removed staging directory after abort", slog.String("staging", dir))
}
