package inmemory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"church-app-go/internal/domain/images"
	"github.com/google/uuid"
)

// ImageStore keeps uploads in memory. It backs local runs without
// Cloudinary credentials and the HTTP tests.
type ImageStore struct {
	mu      sync.RWMutex
	folder  string
	baseURL string
	assets  map[string]storedImage
	now     func() time.Time
}

type storedImage struct {
	data      []byte
	createdAt time.Time
}

func NewImageStore(folder string) *ImageStore {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = images.DefaultFolder
	}
	return &ImageStore{
		folder:  folder,
		baseURL: "memory://images/",
		assets:  make(map[string]storedImage),
		now:     time.Now,
	}
}

func (s *ImageStore) Upload(ctx context.Context, data io.Reader, filename string) (images.Image, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return images.Image{}, fmt.Errorf("read image: %w", err)
	}

	publicID := s.folder + "/" + uuid.NewString()
	s.mu.Lock()
	s.assets[publicID] = storedImage{data: raw, createdAt: s.now()}
	s.mu.Unlock()

	return images.Image{URL: s.baseURL + publicID, PublicID: publicID}, nil
}

func (s *ImageStore) Destroy(ctx context.Context, publicID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[publicID]; !ok {
		return false, nil
	}
	delete(s.assets, publicID)
	return true, nil
}

func (s *ImageStore) ListAssets(ctx context.Context, prefix string) ([]images.Asset, error) {
	s.mu.RLock()
	out := make([]images.Asset, 0, len(s.assets))
	for id, img := range s.assets {
		if strings.HasPrefix(id, prefix) {
			out = append(out, images.Asset{PublicID: id, CreatedAt: img.createdAt})
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].PublicID < out[j].PublicID })
	return out, nil
}

// Put registers an asset directly, bypassing Upload.
func (s *ImageStore) Put(publicID string, createdAt time.Time) {
	s.mu.Lock()
	s.assets[publicID] = storedImage{createdAt: createdAt}
	s.mu.Unlock()
}

func (s *ImageStore) Has(publicID string) bool {
	s.mu.RLock()
	_, ok := s.assets[publicID]
	s.mu.RUnlock()
	return ok
}

func (s *ImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}
