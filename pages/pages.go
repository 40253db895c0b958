// Package pages exports the memory page domain contracts for module consumers.
package pages

import (
	internal "github.com/memoriasite/memoria/internal/pages"
)

// Service describes the memory page use-cases.
type Service = internal.Service

// MemoryPage is the canonical page record.
type MemoryPage = internal.MemoryPage

// CreatePageRequest captures the payload required to create a page.
type CreatePageRequest = internal.CreatePageRequest

// UpdatePageRequest captures the mutable fields for an existing page.
type UpdatePageRequest = internal.UpdatePageRequest

// Upload carries one incoming file.
type Upload = internal.Upload

// PageRepository abstracts page persistence.
type PageRepository = internal.PageRepository

// NotFoundError reports a missing page.
type NotFoundError = internal.NotFoundError

// ValidationError aggregates field-level validation failures.
type ValidationError = internal.ValidationError

var (
	ErrDedicatedTextRequired = internal.ErrDedicatedTextRequired
	ErrTooManyImages         = internal.ErrTooManyImages
	ErrNoFilesProvided       = internal.ErrNoFilesProvided
	ErrEmptyFile             = internal.ErrEmptyFile
	ErrSlugExhausted         = internal.ErrSlugExhausted
	ErrUploadFailed          = internal.ErrUploadFailed
	ErrQRRenderFailed        = internal.ErrQRRenderFailed
)

// MaxImages caps the image list for a page.
const MaxImages = internal.MaxImages

// MaxSlugLength bounds every generated slug.
const MaxSlugLength = internal.MaxSlugLength

// SanitizeSlug normalizes free text into a URL-safe slug candidate.
func SanitizeSlug(input string) string {
	return internal.SanitizeSlug(input)
}
