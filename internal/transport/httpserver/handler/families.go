package handler

import (
	"net/http"
	"time"

	familydomain "church-app-go/internal/domain/family"
	"github.com/go-chi/chi/v5"
)

type familyResponse struct {
	ID           string    `json:"id"`
	FamilyName   string    `json:"familyName"`
	HeadOfFamily string    `json:"headOfFamily"`
	ContactNo    string    `json:"contactNo"`
	Location     string    `json:"location"`
	Address      string    `json:"address"`
	ImageURL     string    `json:"imageUrl"`
	PublicID     string    `json:"publicId"`
	Group        string    `json:"group"`
	DisplayName  string    `json:"displayName"`
	TotalMembers *int64    `json:"totalMembers,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.Families.List(r.Context())
	if err != nil {
		h.fail(w, "families.list", err)
		return
	}
	if len(families) == 0 {
		writeError(w, http.StatusNotFound, "families_not_found", "No families found")
		return
	}

	out := make([]familyResponse, 0, len(families))
	for _, f := range families {
		resp := toFamilyResponse(f.Family)
		total := f.TotalMembers
		resp.TotalMembers = &total
		out = append(out, resp)
	}
	writeSuccess(w, http.StatusOK, "", envelope{"families": out})
}

func (h *Handlers) ListFamiliesByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	families, err := h.Families.ListByGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, "families.list_by_group", err, "group_id", groupID)
		return
	}

	out := make([]familyResponse, 0, len(families))
	for _, f := range families {
		out = append(out, toFamilyResponse(f))
	}
	writeSuccess(w, http.StatusOK, "", envelope{"data": out})
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req familydomain.CreateInput
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "families.create", err)
		return
	}

	created, err := h.Families.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "families.create", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Family created", envelope{"newFamily": toFamilyResponse(*created)})
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "familyId")
	var req familydomain.UpdateInput
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "families.update", err)
		return
	}

	updated, err := h.Families.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, "families.update", err, "family_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Family Updated", envelope{"family": toFamilyResponse(*updated)})
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "familyId")
	report, err := h.Families.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, "families.delete", err, "family_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Family Deleted Successfully", envelope{"report": report})
}

func toFamilyResponse(f familydomain.Family) familyResponse {
	return familyResponse{
		ID:           f.ID,
		FamilyName:   f.FamilyName,
		HeadOfFamily: f.HeadOfFamily,
		ContactNo:    f.ContactNo,
		Location:     f.Location,
		Address:      f.Address,
		ImageURL:     f.ImageURL,
		PublicID:     f.PublicID,
		Group:        f.GroupID,
		DisplayName:  f.DisplayName(),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFamilyPtr(f *familydomain.Family) *familyResponse {
	if f == nil {
		return nil
	}
	resp := toFamilyResponse(*f)
	return &resp
}
