package images

import (
	"context"
	"io"
	"time"
)

const DefaultFolder = "church"

type Image struct {
	URL      string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

type Asset struct {
	PublicID  string
	CreatedAt time.Time
}

// Store is the external image host. Destroy reports false when the asset did
// not exist.
type Store interface {
	Upload(ctx context.Context, data io.Reader, filename string) (Image, error)
	Destroy(ctx context.Context, publicID string) (bool, error)
}

type Lister interface {
	ListAssets(ctx context.Context, prefix string) ([]Asset, error)
}

// CleanupReport tallies image deletions attempted while removing entities.
type CleanupReport struct {
	Deleted int      `json:"deleted"`
	Missing int      `json:"missing"`
	Failed  []string `json:"failed,omitempty"`
}

func (r CleanupReport) HasFailures() bool {
	return len(r.Failed) > 0
}
