package scheduler

import (
	"context"
	"testing"
	"time"

	"church-app-go/pkg/logger"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(logger.Discard())

	if err := s.Add("broken", "not a cron spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
	if err := s.Add("purge", "@hourly", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Add("reconcile", "15 2 * * *", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", s.Len())
	}
}

func TestJobRuns(t *testing.T) {
	s := New(logger.Discard())
	ran := make(chan struct{}, 1)

	if err := s.Add("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected job to run")
	}
}
