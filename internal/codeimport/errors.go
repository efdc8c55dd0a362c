package codeimport

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// NotFoundError reports a reference whose target file does not exist.
type NotFoundError struct {
	ResolvedPath string
	Document     string
	Reference    string
	Err          error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("code import %q in %s: file not found: %s", e.Reference, e.Document, e.ResolvedPath)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Unwrap() error                  { return e.Err }
func (e *NotFoundError) Category() errors.ErrorCategory { return errors.CategoryImport }

// RangeError reports a selector that does not fit the referenced file.
type RangeError struct {
	Path      string
	Document  string
	Reference string
	Selector  string
	Lines     int
	Reason    string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("code import %q in %s: selector %q on %s (%d lines): %s",
		e.Reference, e.Document, e.Selector, e.Path, e.Lines, e.Reason)
}

func (e *RangeError) Category() errors.ErrorCategory { return errors.CategoryImport }

// OutsideRootError reports a resolved path that escapes the root directory
// while importing from outside is not allowed.
type OutsideRootError struct {
	ResolvedPath string
	RootDir      string
	Document     string
	Reference    string
}

func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("code import %q in %s: %s is outside root directory %s",
		e.Reference, e.Document, e.ResolvedPath, e.RootDir)
}

func (e *OutsideRootError) Category() errors.ErrorCategory { return errors.CategoryImport }
