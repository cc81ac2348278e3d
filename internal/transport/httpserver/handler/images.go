package handler

import (
	"errors"
	"net/http"
	"net/url"

	imagesdomain "church-app-go/internal/domain/images"
	"github.com/go-chi/chi/v5"
)

const imageField = "image"

// UploadImage returns a handler for POST .../upload-image that answers with
// message on success. The image is not attached to any record.
func (h *Handlers) UploadImage(op, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadSize)

		file, header, err := r.FormFile(imageField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if !errors.As(err, &tooLarge) {
				err = errors.Join(imagesdomain.ErrNoFile, err)
			}
			h.fail(w, op, err)
			return
		}
		defer file.Close()

		img, err := h.Images.Upload(r.Context(), file, header.Filename)
		if err != nil {
			h.fail(w, op, err, "file", header.Filename)
			return
		}
		writeSuccess(w, http.StatusOK, message, envelope{
			"imageUrl": img.URL,
			"publicId": img.PublicID,
		})
	}
}

// DeleteImage handles DELETE .../delete-image/{publicId}. A full id such as
// "church/abc" arrives as "church%2Fabc" and is decoded before lookup.
func (h *Handlers) DeleteImage(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "publicId")
		publicID, err := url.PathUnescape(raw)
		if err != nil {
			h.log.BusinessError(op+": bad image id", err, "public_id", raw)
			writeError(w, http.StatusBadRequest, "invalid_request", "Invalid image ID")
			return
		}
		if err = h.Images.Delete(r.Context(), publicID); err != nil {
			h.fail(w, op, err, "public_id", publicID)
			return
		}
		writeSuccess(w, http.StatusOK, "Image removed successfully.", nil)
	}
}
