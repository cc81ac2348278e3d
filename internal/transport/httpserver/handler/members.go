package handler

import (
	"net/http"
	"strings"
	"time"

	memberdomain "church-app-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// memberRequest is shared by create and update. The admin console sends
// booleans and dates as strings and empty strings for unset fields.
type memberRequest struct {
	Name         *string    `json:"name"`
	Sex          *string    `json:"sex"`
	BaptismName  *string    `json:"baptismName"`
	IsActive     FlexBool   `json:"isActive"`
	Role         *string    `json:"role"`
	Married      FlexBool   `json:"married"`
	BaptismDate  FlexDate   `json:"baptismDate"`
	DateOfBirth  FlexDate   `json:"dateOfBirth"`
	MarriageDate FlexDate   `json:"marriageDate"`
	DateOfDeath  FlexDate   `json:"dateOfDeath"`
	Family       FlexString `json:"family"`
	Group        FlexString `json:"group"`
	ImageURL     *string    `json:"imageUrl"`
	PublicID     *string    `json:"publicId"`
}

type memberResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Sex          string          `json:"sex"`
	BaptismName  string          `json:"baptismName"`
	BaptismDate  *string         `json:"baptismDate"`
	DateOfBirth  *string         `json:"dateOfBirth"`
	Married      *bool           `json:"married"`
	MarriageDate *string         `json:"marriageDate"`
	DateOfDeath  *string         `json:"dateOfDeath"`
	IsActive     bool            `json:"isActive"`
	Role         string          `json:"role"`
	FamilyID     *string         `json:"familyId"`
	Family       *familyResponse `json:"family"`
	Group        *string         `json:"group"`
	ImageURL     string          `json:"imageUrl"`
	PublicID     string          `json:"publicId"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type birthdayResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DateOfBirth *string         `json:"dateOfBirth"`
	Family      *familyResponse `json:"family"`
	Role        string          `json:"role"`
}

type publicMemberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.List(r.Context())
	if err != nil {
		h.fail(w, "members.list", err)
		return
	}
	out := lo.Map(members, func(m memberdomain.MemberWithFamily, _ int) memberResponse {
		return toMemberWithFamilyResponse(m)
	})
	writeSuccess(w, http.StatusOK, "", envelope{"members": out})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	member, err := h.Members.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "members.get", err, "member_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "", envelope{"data": toMemberWithFamilyResponse(*member)})
}

func (h *Handlers) ListMembersByFamily(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")
	members, err := h.Members.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.fail(w, "members.list_by_family", err, "family_id", familyID)
		return
	}
	out := lo.Map(members, func(m memberdomain.Member, _ int) memberResponse {
		return toMemberResponse(m)
	})
	writeSuccess(w, http.StatusOK, "", envelope{"members": out})
}

func (h *Handlers) ListBirthdays(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.Birthdays(r.Context())
	if err != nil {
		h.fail(w, "members.birthdays", err)
		return
	}
	out := lo.Map(members, func(m memberdomain.MemberWithFamily, _ int) birthdayResponse {
		return birthdayResponse{
			ID:          m.ID,
			Name:        m.Name,
			DateOfBirth: formatDate(m.DateOfBirth),
			Family:      toFamilyPtr(m.Family),
			Role:        string(m.Role),
		}
	})
	writeSuccess(w, http.StatusOK, "", envelope{"members": out})
}

func (h *Handlers) ListPublicMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Members.PublicMembers(r.Context())
	if err != nil {
		h.fail(w, "members.public", err)
		return
	}
	out := lo.Map(members, func(m memberdomain.Member, _ int) publicMemberResponse {
		return publicMemberResponse{ID: m.ID, Name: m.Name, Role: string(m.Role), ImageURL: m.ImageURL}
	})
	writeSuccess(w, http.StatusOK, "", envelope{"members": out})
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "members.create", err)
		return
	}
	input, err := req.createInput()
	if err != nil {
		h.fail(w, "members.create", err)
		return
	}

	created, err := h.Members.Create(r.Context(), input)
	if err != nil {
		h.fail(w, "members.create", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Member created successfully", envelope{"data": toMemberWithFamilyResponse(*created)})
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req memberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "members.update", err)
		return
	}
	input, err := req.updateInput()
	if err != nil {
		h.fail(w, "members.update", err, "member_id", id)
		return
	}

	updated, err := h.Members.Update(r.Context(), id, input)
	if err != nil {
		h.fail(w, "members.update", err, "member_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Member updated successfully", envelope{"data": toMemberWithFamilyResponse(*updated)})
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := h.Members.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, "members.delete", err, "member_id", id)
		return
	}
	writeSuccess(w, http.StatusOK, "Member deleted successfully", envelope{"report": report})
}

func (req memberRequest) createInput() (memberdomain.CreateInput, error) {
	var (
		input memberdomain.CreateInput
		err   error
	)
	input.Name = lo.FromPtr(req.Name)
	input.Sex = lo.FromPtr(req.Sex)
	input.BaptismName = lo.FromPtr(req.BaptismName)
	input.Role = lo.FromPtr(req.Role)
	input.ImageURL = lo.FromPtr(req.ImageURL)
	input.PublicID = lo.FromPtr(req.PublicID)

	if input.IsActive, _, err = req.IsActive.Parse("isActive"); err != nil {
		return input, err
	}
	if input.Married, _, err = req.Married.Parse("married"); err != nil {
		return input, err
	}
	if input.BaptismDate, _, err = req.BaptismDate.Parse("baptismDate"); err != nil {
		return input, err
	}
	if input.DateOfBirth, _, err = req.DateOfBirth.Parse("dateOfBirth"); err != nil {
		return input, err
	}
	if input.MarriageDate, _, err = req.MarriageDate.Parse("marriageDate"); err != nil {
		return input, err
	}
	if input.DateOfDeath, _, err = req.DateOfDeath.Parse("dateOfDeath"); err != nil {
		return input, err
	}

	familyID, _, err := req.Family.Parse("family")
	if err != nil {
		return input, err
	}
	groupID, _, err := req.Group.Parse("group")
	if err != nil {
		return input, err
	}
	input.FamilyID = lo.FromPtr(familyID)
	input.GroupID = lo.FromPtr(groupID)
	return input, nil
}

func (req memberRequest) updateInput() (memberdomain.UpdateInput, error) {
	input := memberdomain.UpdateInput{
		Name:        req.Name,
		Sex:         req.Sex,
		BaptismName: req.BaptismName,
		ImageURL:    req.ImageURL,
		PublicID:    req.PublicID,
	}
	if req.Role != nil && strings.TrimSpace(*req.Role) != "" {
		input.Role = req.Role
	}

	active, _, err := req.IsActive.Parse("isActive")
	if err != nil {
		return input, err
	}
	input.IsActive = active

	if input.Married, err = nullableOf[bool](req.Married.Parse("married")); err != nil {
		return input, err
	}
	if input.BaptismDate, err = nullableOf[time.Time](req.BaptismDate.Parse("baptismDate")); err != nil {
		return input, err
	}
	if input.DateOfBirth, err = nullableOf[time.Time](req.DateOfBirth.Parse("dateOfBirth")); err != nil {
		return input, err
	}
	if input.MarriageDate, err = nullableOf[time.Time](req.MarriageDate.Parse("marriageDate")); err != nil {
		return input, err
	}
	if input.DateOfDeath, err = nullableOf[time.Time](req.DateOfDeath.Parse("dateOfDeath")); err != nil {
		return input, err
	}
	if input.FamilyID, err = nullableOf[string](req.Family.Parse("family")); err != nil {
		return input, err
	}
	if input.GroupID, err = nullableOf[string](req.Group.Parse("group")); err != nil {
		return input, err
	}
	return input, nil
}

func nullableOf[T any](value *T, set bool, err error) (memberdomain.Nullable[T], error) {
	if err != nil || !set {
		return memberdomain.Nullable[T]{}, err
	}
	if value == nil {
		return memberdomain.Null[T](), nil
	}
	return memberdomain.Value(*value), nil
}

func toMemberResponse(m memberdomain.Member) memberResponse {
	return memberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Sex:          m.Sex,
		BaptismName:  m.BaptismName,
		BaptismDate:  formatDate(m.BaptismDate),
		DateOfBirth:  formatDate(m.DateOfBirth),
		Married:      m.Married,
		MarriageDate: formatDate(m.MarriageDate),
		DateOfDeath:  formatDate(m.DateOfDeath),
		IsActive:     m.IsActive,
		Role:         string(m.Role),
		FamilyID:     m.FamilyID,
		Group:        m.GroupID,
		ImageURL:     m.ImageURL,
		PublicID:     m.PublicID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toMemberWithFamilyResponse(m memberdomain.MemberWithFamily) memberResponse {
	resp := toMemberResponse(m.Member)
	resp.Family = toFamilyPtr(m.Family)
	return resp
}
