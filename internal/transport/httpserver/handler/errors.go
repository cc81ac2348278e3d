package handler

import (
	"errors"
	"net/http"

	admindomain "church-app-go/internal/domain/admin"
	calendardomain "church-app-go/internal/domain/calendar"
	"church-app-go/internal/domain/cascade"
	familydomain "church-app-go/internal/domain/family"
	groupdomain "church-app-go/internal/domain/group"
	imagesdomain "church-app-go/internal/domain/images"
	memberdomain "church-app-go/internal/domain/member"
	"church-app-go/internal/domain/validation"
)

type knownError struct {
	target  error
	status  int
	code    string
	message string
}

var knownErrors = []knownError{
	{groupdomain.ErrGroupNotFound, http.StatusNotFound, "group_not_found", "Group not found"},
	{familydomain.ErrFamilyNotFound, http.StatusNotFound, "family_not_found", "Family not found"},
	{memberdomain.ErrMemberNotFound, http.StatusNotFound, "member_not_found", "Member not found"},
	{calendardomain.ErrEventNotFound, http.StatusNotFound, "event_not_found", "Event not found"},
	{admindomain.ErrAccountNotFound, http.StatusNotFound, "account_not_found", "No user found with this email address"},
	{admindomain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"},
	{admindomain.ErrUnauthenticated, http.StatusUnauthorized, "invalid_token", "Invalid token"},
	{admindomain.ErrForbidden, http.StatusForbidden, "forbidden", "Access denied. Admin privileges required."},
	{admindomain.ErrEmailTaken, http.StatusBadRequest, "account_exists", "Existing account"},
	{admindomain.ErrInvalidResetToken, http.StatusBadRequest, "invalid_reset_token", "Invalid or expired reset token"},
	{imagesdomain.ErrNoFile, http.StatusBadRequest, "no_image", "No image file provided."},
	{imagesdomain.ErrInvalidImage, http.StatusBadRequest, "invalid_image", "The uploaded file is not a supported image."},
	{imagesdomain.ErrEmptyPublicID, http.StatusBadRequest, "invalid_request", "No image ID provided"},
	{imagesdomain.ErrImageNotFound, http.StatusNotFound, "image_not_found", "Image not found or already deleted."},
}

// fail answers err with the matching status. Expected failures are logged as
// business errors, everything else as internal errors with a generic body.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	if verr, ok := validation.As(err); ok {
		h.log.BusinessError(op+": validation failed", err, args...)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: verr.Error(),
			Code:    "validation_error",
			Errors:  verr.Fields,
		})
		return
	}

	var partial *cascade.PartialError
	if errors.As(err, &partial) {
		h.log.InternalError(op+": partial delete", err, args...)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Delete stopped part way, some records were already removed",
			Code:    "partial_delete",
			Details: map[string]any{
				"completedSteps": partial.Completed,
				"failedStep":     partial.Failed,
			},
		})
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.log.BusinessError(op+": body too large", err, args...)
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Uploaded file is too large.")
		return
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			h.log.BusinessError(op+": "+known.code, err, args...)
			writeError(w, known.status, known.code, known.message)
			return
		}
	}

	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// failDecode answers a body that could not be parsed.
func (h *Handlers) failDecode(w http.ResponseWriter, op string, err error) {
	if _, ok := validation.As(err); ok {
		h.fail(w, op, err)
		return
	}
	h.log.BusinessError(op+": invalid json", err)
	writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
}
