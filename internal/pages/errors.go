package pages

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDedicatedTextRequired = errors.New("pages: dedicated text is required")
	ErrTooManyImages         = errors.New("pages: a page holds at most 7 images")
	ErrNoFilesProvided       = errors.New("pages: at least one file is required")
	ErrEmptyFile             = errors.New("pages: file has no content")
	ErrSlugExhausted         = errors.New("pages: unable to determine unique slug")
	ErrUploadFailed          = errors.New("pages: file upload failed")
	ErrQRRenderFailed        = errors.New("pages: qr code rendering failed")
)

// NotFoundError reports a missing page for a slug lookup.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Slug == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Slug)
}

// ValidationError aggregates field-level validation failures into a map of
// field name to message, surfaced verbatim in 400 responses.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "pages: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "pages: validation failed: " + strings.Join(parts, "; ")
}
