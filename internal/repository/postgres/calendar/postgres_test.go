package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	calendardomain "church-app-go/internal/domain/calendar"
	"church-app-go/internal/repository/postgres/testdb"
	"github.com/google/uuid"
)

func TestListOrdersByDate(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	for _, e := range []calendardomain.Event{
		{ID: uuid.NewString(), Title: "Later", Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), Time: "10:00", Type: calendardomain.TypeMass},
		{ID: uuid.NewString(), Title: "Sooner", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Time: "18:00", Type: calendardomain.TypeGeneral},
	} {
		event := e
		if err := repo.Create(context.Background(), &event); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	events, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 2 || events[0].Title != "Sooner" {
		t.Fatalf("expected events sorted by date, got %+v", events)
	}
}

func TestSaveAndDelete(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	event := &calendardomain.Event{ID: uuid.NewString(), Title: "Choir", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Time: "18:00", Type: calendardomain.TypeGeneral}
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("create event: %v", err)
	}

	event.Title = "Choir practice"
	if err := repo.Save(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := repo.GetByID(context.Background(), event.ID)
	if err != nil || got.Title != "Choir practice" {
		t.Fatalf("expected saved title, got %+v, %v", got, err)
	}

	if err := repo.Delete(context.Background(), event.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Delete(context.Background(), event.ID); !errors.Is(err, calendardomain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
