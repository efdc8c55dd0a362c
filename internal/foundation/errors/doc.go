// Package errors provides the classified error primitives shared by every docsite package.
//
// A ClassifiedError carries a category (config, validation, import, links, build, ...),
// a severity and structured context. Domain packages keep their own concrete error
// types (for example codeimport.NotFoundError) and expose a Category method so the
// CLI adapter can map any error chain onto an exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "read sidebar file").
//		WithContext("path", sidebarPath).
//		Build()
package errors
