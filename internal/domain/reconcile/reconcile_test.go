package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"church-app-go/internal/domain/images"
	"church-app-go/pkg/logger"
)

type fakeStore struct {
	assets    []images.Asset
	destroyed []string
	failOn    map[string]bool
	prefix    string
}

func (s *fakeStore) ListAssets(ctx context.Context, prefix string) ([]images.Asset, error) {
	s.prefix = prefix
	return s.assets, nil
}

func (s *fakeStore) Destroy(ctx context.Context, publicID string) (bool, error) {
	if s.failOn[publicID] {
		return false, errors.New("upstream 500")
	}
	s.destroyed = append(s.destroyed, publicID)
	return true, nil
}

type staticSource []string

func (s staticSource) PublicIDs(ctx context.Context) ([]string, error) {
	return s, nil
}

var now = time.Date(2026, 5, 1, 2, 15, 0, 0, time.UTC)

func newReconciler(store *fakeStore, opts Options, sources ...ReferenceSource) *Reconciler {
	r := New(store, sources, opts, logger.Discard())
	r.now = func() time.Time { return now }
	return r
}

func TestRunDeletesOnlyOldUnreferencedAssets(t *testing.T) {
	store := &fakeStore{assets: []images.Asset{
		{PublicID: "church/group", CreatedAt: now.Add(-72 * time.Hour)},
		{PublicID: "church/family", CreatedAt: now.Add(-72 * time.Hour)},
		{PublicID: "church/orphan-old", CreatedAt: now.Add(-48 * time.Hour)},
		{PublicID: "church/orphan-new", CreatedAt: now.Add(-time.Hour)},
	}}
	r := newReconciler(store, Options{},
		staticSource{"church/group", ""},
		staticSource{"family", "church/group"},
	)

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.prefix != "church/" {
		t.Fatalf("expected folder prefix, got %q", store.prefix)
	}
	if report.Scanned != 4 || report.Referenced != 2 || report.Orphaned != 1 || report.Deleted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != "church/orphan-old" {
		t.Fatalf("expected only old orphan destroyed, got %v", store.destroyed)
	}
}

func TestRunDryRunDestroysNothing(t *testing.T) {
	store := &fakeStore{assets: []images.Asset{
		{PublicID: "church/orphan", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	r := newReconciler(store, Options{DryRun: true})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Orphaned != 1 || len(report.Orphans) != 1 || len(store.destroyed) != 0 {
		t.Fatalf("expected orphan reported but kept, got %+v", report)
	}
}

func TestRunCountsFailures(t *testing.T) {
	store := &fakeStore{
		assets: []images.Asset{
			{PublicID: "church/a", CreatedAt: now.Add(-48 * time.Hour)},
			{PublicID: "church/b", CreatedAt: now.Add(-48 * time.Hour)},
		},
		failOn: map[string]bool{"church/a": true},
	}
	r := newReconciler(store, Options{MinAge: -1})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Failed != 1 || report.Deleted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}
