package calendar

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"church-app-go/internal/domain/validation"
)

type fakeRepo struct {
	events map[string]Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: make(map[string]Event)}
}

func (r *fakeRepo) Create(ctx context.Context, event *Event) error {
	r.events[event.ID] = *event
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &e, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Event, error) {
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeRepo) Save(ctx context.Context, event *Event) error {
	r.events[event.ID] = *event
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateDefaultsType(t *testing.T) {
	svc := NewService(newFakeRepo())

	event, err := svc.Create(context.Background(), Input{Title: "Feast", Date: date(2026, 8, 15), Time: "10:00"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.Type != TypeGeneral {
		t.Fatalf("expected general, got %q", event.Type)
	}
}

func TestCreateRequiredFields(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Input{Title: "  ", Date: date(2026, 8, 15), Time: "10:00"})
	verr, ok := validation.As(err)
	if !ok || verr.Error() != "Please fill in all required fields" {
		t.Fatalf("expected required fields error, got %v", err)
	}

	_, err = svc.Create(context.Background(), Input{Title: "Feast", Time: "10:00"})
	if _, ok := validation.As(err); !ok {
		t.Fatalf("expected validation error for missing date, got %v", err)
	}

	_, err = svc.Create(context.Background(), Input{Title: "Feast", Date: date(2026, 8, 15), Time: "10:00", Type: "party"})
	if _, ok := validation.As(err); !ok {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}

func TestUpdateKeepsTypeWhenOmitted(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	created, _ := svc.Create(context.Background(), Input{Title: "Mass", Date: date(2026, 9, 1), Time: "07:00", Type: "mass"})

	updated, err := svc.Update(context.Background(), created.ID, Input{Title: "Morning Mass", Date: date(2026, 9, 2), Time: "07:30"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Type != TypeMass || updated.Title != "Morning Mass" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(context.Background(), "missing", Input{}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	created, _ := svc.Create(context.Background(), Input{Title: "Choir", Date: date(2026, 9, 1), Time: "18:00"})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
