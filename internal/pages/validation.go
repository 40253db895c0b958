package pages

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MaxImages caps the image list for a page, uploads included.
const MaxImages = 7

func validateCreate(req CreatePageRequest) error {
	errs := validation.Errors{}
	if strings.TrimSpace(req.DedicatedText) == "" {
		errs["dedicatedText"] = validation.NewError("memoria.pages.dedicated_text_required", "dedicated text must not be blank")
	}
	if len(req.ImageURLs) > MaxImages {
		errs["imageUrls"] = validation.NewError("memoria.pages.too_many_images", "a page holds at most 7 images")
	}
	if err := validateMusicURL(req.MusicURL); err != nil {
		errs["musicUrl"] = err
	}
	if len(req.SuggestedSlug) > MaxSlugLength {
		errs["suggestedSlug"] = validation.NewError("memoria.pages.suggested_slug_too_long", "suggested slug exceeds 50 characters")
	}
	return fieldErrors(errs)
}

func validateUpdate(req UpdatePageRequest) error {
	errs := validation.Errors{}
	if req.DedicatedText != nil && strings.TrimSpace(*req.DedicatedText) == "" {
		errs["dedicatedText"] = validation.NewError("memoria.pages.dedicated_text_required", "dedicated text must not be blank")
	}
	if len(req.ImageURLs) > MaxImages {
		errs["imageUrls"] = validation.NewError("memoria.pages.too_many_images", "a page holds at most 7 images")
	}
	if err := validateMusicURL(req.MusicURL); err != nil {
		errs["musicUrl"] = err
	}
	return fieldErrors(errs)
}

func validateMusicURL(raw *string) validation.Error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	if err := validation.Validate(*raw, is.URL); err != nil {
		return validation.NewError("memoria.pages.music_url_invalid", "music url must be a well-formed URL")
	}
	return nil
}

// fieldErrors converts aggregated ozzo errors into the typed ValidationError
// carried through the service boundary.
func fieldErrors(errs validation.Errors) error {
	if len(errs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			fields[field] = err.Error()
		}
	}
	return &ValidationError{Fields: fields}
}
