package plugin

import "fmt"

// Type identifies the category of plugin.
type Type string

const (
	// TypeContent modifies markdown before rendering.
	TypeContent Type = "content"

	// TypeTheme contributes build artifacts such as a search index.
	TypeTheme Type = "theme"
)

// IsValid returns true if the plugin type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypeContent, TypeTheme:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t Type) String() string {
	return string(t)
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation string

	// Document is the source the plugin was working on, if any.
	Document string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("plugin %s failed during %s of %s: %v", e.PluginName, e.Operation, e.Document, e.Err)
	}
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
