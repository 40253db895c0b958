package httpapi

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/memoriasite/memoria/internal/pages"
)

type pageCreatePayload struct {
	DedicatedText string     `json:"dedicatedText"`
	ImageURLs     []string   `json:"imageUrls,omitempty"`
	MusicURL      *string    `json:"musicUrl,omitempty"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	SuggestedSlug string     `json:"suggestedSlug,omitempty"`
}

type pageUpdatePayload struct {
	DedicatedText *string    `json:"dedicatedText,omitempty"`
	ImageURLs     []string   `json:"imageUrls,omitempty"`
	MusicURL      *string    `json:"musicUrl,omitempty"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
}

func (api *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}

	record, err := api.pages.Create(r.Context(), pages.CreatePageRequest{
		DedicatedText: payload.DedicatedText,
		ImageURLs:     payload.ImageURLs,
		MusicURL:      payload.MusicURL,
		TargetDate:    payload.TargetDate,
		SuggestedSlug: payload.SuggestedSlug,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := api.pages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*pages.MemoryPage{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.pages.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}

	record, err := api.pages.Update(r.Context(), r.PathValue("slug"), pages.UpdatePageRequest{
		DedicatedText: payload.DedicatedText,
		ImageURLs:     payload.ImageURLs,
		MusicURL:      payload.MusicURL,
		TargetDate:    payload.TargetDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := api.pages.Delete(r.Context(), r.PathValue("slug")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := api.pages.GenerateQRCode(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (api *API) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	headers, err := api.formFiles(w, r, "files")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid multipart payload"})
		return
	}
	if len(headers) == 0 {
		writeError(w, pages.ErrNoFilesProvided)
		return
	}

	uploads := make([]pages.Upload, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, pages.ErrUploadFailed)
			return
		}
		closers = append(closers, file)
		uploads = append(uploads, pages.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		})
	}

	urls, err := api.pages.UploadImages(r.Context(), r.PathValue("slug"), uploads)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, urls)
}

func (api *API) handleAttachMusic(w http.ResponseWriter, r *http.Request) {
	headers, err := api.formFiles(w, r, "musicFile")
	if err != nil || len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "music file is required"})
		return
	}

	header := headers[0]
	file, err := header.Open()
	if err != nil {
		writeError(w, pages.ErrUploadFailed)
		return
	}
	defer file.Close()

	url, err := api.pages.AttachMusic(r.Context(), r.PathValue("slug"), pages.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, url)
}

// formFiles parses the multipart body, bounded by the configured upload cap,
// and returns the file headers for the given field.
func (api *API) formFiles(w http.ResponseWriter, r *http.Request, field string) ([]*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, api.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}
	if r.MultipartForm == nil {
		return nil, nil
	}
	return r.MultipartForm.File[field], nil
}
