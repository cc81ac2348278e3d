package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"church-app-go/internal/domain/validation"
)

const maxJSONBody = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// envelope is the payload merged into every success response next to
// "success" and "message".
type envelope map[string]any

type errorResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Code    string                  `json:"code"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
	Details map[string]any          `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, message string, payload envelope) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Message: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads one JSON document. Unknown fields are ignored, the admin
// console posts whole records back on update.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}
