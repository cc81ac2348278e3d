package handler

import (
	"net/http"
	"time"

	calendardomain "church-app-go/internal/domain/calendar"
	"github.com/go-chi/chi/v5"
)

type eventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        FlexDate `json:"date"`
	Time        string   `json:"time"`
	Type        string   `json:"type"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Calendar.List(r.Context())
	if err != nil {
		h.fail(w, "calendar.list", err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	writeSuccess(w, http.StatusOK, "", envelope{"events": out})
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeEvent(w, r, "calendar.create")
	if !ok {
		return
	}
	created, err := h.Calendar.Create(r.Context(), input)
	if err != nil {
		h.fail(w, "calendar.create", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "", envelope{"event": toEventResponse(*created)})
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	input, ok := h.decodeEvent(w, r, "calendar.update")
	if !ok {
		return
	}
	updated, err := h.Calendar.Update(r.Context(), id, input)
	if err != nil {
		h.fail(w, "calendar.update", err, "event_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"event": toEventResponse(*updated)})
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Calendar.Delete(r.Context(), id); err != nil {
		h.fail(w, "calendar.delete", err, "event_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"eventId": id})
}

func (h *Handlers) decodeEvent(w http.ResponseWriter, r *http.Request, op string) (calendardomain.Input, bool) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, op, err)
		return calendardomain.Input{}, false
	}
	date, _, err := req.Date.Parse("date")
	if err != nil {
		h.fail(w, op, err)
		return calendardomain.Input{}, false
	}
	return calendardomain.Input{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Type:        req.Type,
	}, true
}

func toEventResponse(e calendardomain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.UTC().Format(time.RFC3339),
		Time:        e.Time,
		Type:        string(e.Type),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
