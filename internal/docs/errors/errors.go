// Package errors provides sentinel errors for documentation discovery operations.
package errors

import "errors"

var (
	// ErrDocsPathNotFound indicates a configured documentation path does not exist.
	ErrDocsPathNotFound = errors.New("documentation path not found")

	// ErrDocsDirWalkFailed indicates the glob walk of a content directory failed.
	ErrDocsDirWalkFailed = errors.New("documentation directory walk failed")

	// ErrFileReadFailed indicates reading content from a discovered documentation file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")

	// ErrFrontmatterInvalid indicates a document's frontmatter could not be decoded.
	ErrFrontmatterInvalid = errors.New("invalid frontmatter")

	// ErrInvalidRelativePath indicates calculating relative path from docs base failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")

	// ErrRouteCollision indicates multiple documents map to the same route.
	ErrRouteCollision = errors.New("route collision detected")
)
