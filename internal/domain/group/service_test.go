package group

import (
	"context"
	"errors"
	"testing"

	"church-app-go/internal/domain/cascade"
	"church-app-go/internal/domain/images"
	"church-app-go/internal/domain/validation"
	"church-app-go/pkg/logger"
)

type fakeRepo struct {
	groups    map[string]Group
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{groups: make(map[string]Group)}
}

func (r *fakeRepo) Create(ctx context.Context, group *Group) error {
	r.groups[group.ID] = *group
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &g, nil
}

func (r *fakeRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.groups[id]
	return ok, nil
}

func (r *fakeRepo) ListWithStats(ctx context.Context) ([]GroupWithStats, error) {
	out := make([]GroupWithStats, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, GroupWithStats{Group: g})
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, changes map[string]any) (*Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, ErrGroupNotFound
	}
	for column, value := range changes {
		v := value.(string)
		switch column {
		case "group_name":
			g.GroupName = v
		case "leader_name":
			g.LeaderName = v
		case "secretary_name":
			g.SecretaryName = v
		case "location":
			g.Location = v
		case "image_url":
			g.ImageURL = v
		case "public_id":
			g.PublicID = v
		}
	}
	r.groups[id] = g
	return &g, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

// fakeDependents stores rows as id -> (group id, public id).
type fakeDependents struct {
	groupOf   map[string]string
	imageOf   map[string]string
	deleteErr error
}

func newFakeDependents() *fakeDependents {
	return &fakeDependents{groupOf: make(map[string]string), imageOf: make(map[string]string)}
}

func (d *fakeDependents) add(id, groupID, publicID string) {
	d.groupOf[id] = groupID
	d.imageOf[id] = publicID
}

func (d *fakeDependents) PublicIDsByGroup(ctx context.Context, groupID string) ([]string, error) {
	var ids []string
	for id, g := range d.groupOf {
		if g == groupID && d.imageOf[id] != "" {
			ids = append(ids, d.imageOf[id])
		}
	}
	return ids, nil
}

func (d *fakeDependents) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	if d.deleteErr != nil {
		return 0, d.deleteErr
	}
	var n int64
	for id, g := range d.groupOf {
		if g == groupID {
			delete(d.groupOf, id)
			delete(d.imageOf, id)
			n++
		}
	}
	return n, nil
}

type fakeCleaner struct {
	cleaned []string
	failing map[string]bool
}

func (c *fakeCleaner) Cleanup(ctx context.Context, publicID string, report *images.CleanupReport) {
	if publicID == "" {
		return
	}
	c.cleaned = append(c.cleaned, publicID)
	if c.failing[publicID] {
		report.Failed = append(report.Failed, publicID)
		return
	}
	report.Deleted++
}

type fixture struct {
	repo     *fakeRepo
	families *fakeDependents
	members  *fakeDependents
	cleaner  *fakeCleaner
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		families: newFakeDependents(),
		members:  newFakeDependents(),
		cleaner:  &fakeCleaner{failing: make(map[string]bool)},
	}
	f.svc = NewService(f.repo, f.families, f.members, f.cleaner, logger.Discard())
	return f
}

func validInput() CreateInput {
	return CreateInput{
		GroupName:     "St. Mary Youth",
		LeaderName:    "Anna",
		SecretaryName: "Ben",
		Location:      "North Hall",
	}
}

func TestCreateTrimsAndAssignsID(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.GroupName = "  St. Mary Youth  "

	g, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if g.ID == "" {
		t.Fatalf("expected generated id")
	}
	if g.GroupName != "St. Mary Youth" {
		t.Fatalf("expected trimmed name, got %q", g.GroupName)
	}
}

func TestCreateMissingFields(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{GroupName: "x", LeaderName: "  "})
	verr, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := "Missing required fields: leaderName, secretaryName, location"
	if verr.Error() != want {
		t.Fatalf("expected %q, got %q", want, verr.Error())
	}
}

func TestUpdateAppliesOnlySubmittedFields(t *testing.T) {
	f := newFixture()
	g, _ := f.svc.Create(context.Background(), validInput())

	location := " South Hall "
	updated, err := f.svc.Update(context.Background(), g.ID, UpdateInput{Location: &location})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Location != "South Hall" || updated.LeaderName != "Anna" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	blank := "   "
	if _, err := f.svc.Update(context.Background(), g.ID, UpdateInput{LeaderName: &blank}); err == nil {
		t.Fatalf("expected validation error for blank leader name")
	}
}

func TestUpdateMissingGroup(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Update(context.Background(), "missing", UpdateInput{}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestDeleteCascadesFamiliesAndMembers(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.PublicID = "church/group"
	g, _ := f.svc.Create(context.Background(), in)

	f.families.add("f1", g.ID, "church/f1")
	f.families.add("f2", g.ID, "")
	f.families.add("other", "g-other", "church/other")
	f.members.add("m1", g.ID, "church/m1")

	report, err := f.svc.Delete(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.FamiliesDeleted != 2 || report.MembersDeleted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Images.Deleted != 3 {
		t.Fatalf("expected 3 images cleaned, got %+v", report.Images)
	}
	if len(f.families.groupOf) != 1 {
		t.Fatalf("expected unrelated family kept, got %v", f.families.groupOf)
	}
	if _, err := f.repo.GetByID(context.Background(), g.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected group removed")
	}

	if _, err := f.svc.Delete(context.Background(), g.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound on second delete, got %v", err)
	}
}

func TestDeleteReportsImageFailures(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.PublicID = "church/group"
	g, _ := f.svc.Create(context.Background(), in)
	f.cleaner.failing["church/group"] = true

	report, err := f.svc.Delete(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("expected image failure not to fail delete, got %v", err)
	}
	if !report.Images.HasFailures() || report.Images.Failed[0] != "church/group" {
		t.Fatalf("expected failed image in report, got %+v", report.Images)
	}
}

func TestDeletePartialFailure(t *testing.T) {
	f := newFixture()
	g, _ := f.svc.Create(context.Background(), validInput())
	f.families.add("f1", g.ID, "")
	f.members.deleteErr = errors.New("connection reset")

	report, err := f.svc.Delete(context.Background(), g.ID)
	var partial *cascade.PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialError, got %v", err)
	}
	if partial.Failed != "members" {
		t.Fatalf("expected members step to fail, got %q", partial.Failed)
	}
	if report.FamiliesDeleted != 1 {
		t.Fatalf("expected families step to have run, got %+v", report)
	}
	if _, err := f.repo.GetByID(context.Background(), g.ID); err != nil {
		t.Fatalf("expected group row kept after partial failure, got %v", err)
	}
}
