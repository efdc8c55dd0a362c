package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Violation is one configuration problem.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string { return v.Field + ": " + v.Message }

// ConfigurationError carries every violation found by Validate.
type ConfigurationError struct {
	Path       string
	Violations []Violation
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "invalid configuration %s", e.Path)
	} else {
		b.WriteString("invalid configuration")
	}
	fmt.Fprintf(&b, " (%d problem", len(e.Violations))
	if len(e.Violations) != 1 {
		b.WriteString("s")
	}
	b.WriteString("):")
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}
	return b.String()
}

func (e *ConfigurationError) Category() errors.ErrorCategory { return errors.CategoryValidation }

// Fields returns the fields with at least one violation, in report order.
func (e *ConfigurationError) Fields() []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range e.Violations {
		if !seen[v.Field] {
			seen[v.Field] = true
			out = append(out, v.Field)
		}
	}
	return out
}
