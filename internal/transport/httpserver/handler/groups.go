package handler

import (
	"net/http"
	"time"

	groupdomain "church-app-go/internal/domain/group"
	"github.com/go-chi/chi/v5"
)

type groupResponse struct {
	ID            string    `json:"id"`
	GroupName     string    `json:"groupName"`
	LeaderName    string    `json:"leaderName"`
	SecretaryName string    `json:"secretaryName"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl"`
	PublicID      string    `json:"publicId"`
	TotalFamilies *int64    `json:"totalFamilies,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.fail(w, "groups.list", err)
		return
	}
	if len(groups) == 0 {
		writeError(w, http.StatusNotFound, "groups_not_found", "No groups found")
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp := toGroupResponse(g.Group)
		total := g.TotalFamilies
		resp.TotalFamilies = &total
		out = append(out, resp)
	}
	writeSuccess(w, http.StatusOK, "", envelope{"groups": out})
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupdomain.CreateInput
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "groups.create", err)
		return
	}

	created, err := h.Groups.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "groups.create", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Group Created", envelope{"group": toGroupResponse(*created)})
}

func (h *Handlers) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req groupdomain.UpdateInput
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "groups.update", err)
		return
	}

	updated, err := h.Groups.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, "groups.update", err, "group_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Group updated successfully", envelope{"group": toGroupResponse(*updated)})
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groupId")
	report, err := h.Groups.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, "groups.delete", err, "group_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Group deleted successfully", envelope{"report": report})
}

func toGroupResponse(g groupdomain.Group) groupResponse {
	return groupResponse{
		ID:            g.ID,
		GroupName:     g.GroupName,
		LeaderName:    g.LeaderName,
		SecretaryName: g.SecretaryName,
		Location:      g.Location,
		ImageURL:      g.ImageURL,
		PublicID:      g.PublicID,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
