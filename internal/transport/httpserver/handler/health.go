package handler

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Redis    string `json:"redis"`
	Database string `json:"database"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Redis: "not configured", Database: "up"}
	if h.opts.RedisConfigured {
		resp.Redis = "configured"
	}

	status := http.StatusOK
	if h.opts.DatabasePing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.opts.DatabasePing(ctx); err != nil {
			h.log.InternalError("health: database ping failed", err)
			resp.Status = "degraded"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, resp)
}
