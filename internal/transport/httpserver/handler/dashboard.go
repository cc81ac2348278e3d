package handler

import "net/http"

func (h *Handlers) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Stats.Summary(r.Context())
	if err != nil {
		h.fail(w, "dashboard.summary", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"summary": summary})
}
