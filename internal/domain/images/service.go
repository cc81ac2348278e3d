package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"church-app-go/pkg/logger"
)

const defaultMaxDimension = 1600

type Options struct {
	Folder       string
	MaxDimension int
}

type Service struct {
	store        Store
	folder       string
	maxDimension int
	log          logger.Logger
}

func NewService(store Store, opts Options, log logger.Logger) *Service {
	folder := strings.Trim(opts.Folder, "/")
	if folder == "" {
		folder = DefaultFolder
	}
	maxDimension := opts.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &Service{store: store, folder: folder, maxDimension: maxDimension, log: log}
}

func (s *Service) Folder() string {
	return s.folder
}

// Upload checks that data is a decodable image, shrinks it to fit the
// configured bounding box and hands it to the store.
func (s *Service) Upload(ctx context.Context, data io.Reader, filename string) (Image, error) {
	if data == nil {
		return Image{}, ErrNoFile
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return Image{}, ErrNoFile
	}

	payload, err := fitImage(raw, s.maxDimension)
	if err != nil {
		return Image{}, err
	}

	img, err := s.store.Upload(ctx, bytes.NewReader(payload), filename)
	if err != nil {
		return Image{}, fmt.Errorf("upload image: %w", err)
	}
	s.log.Info("images: uploaded", "public_id", img.PublicID, "bytes", len(payload))
	return img, nil
}

// Delete removes an image by id. The id may or may not carry the folder
// prefix.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return ErrEmptyPublicID
	}

	qualified := NormalizePublicID(s.folder, publicID)
	removed, err := s.store.Destroy(ctx, qualified)
	if err != nil {
		return fmt.Errorf("destroy image %s: %w", qualified, err)
	}
	if !removed {
		return ErrImageNotFound
	}
	s.log.Info("images: destroyed", "public_id", qualified)
	return nil
}

// Cleanup is the cascade flavour of Delete: failures are logged and counted
// instead of returned.
func (s *Service) Cleanup(ctx context.Context, publicID string, report *CleanupReport) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return
	}

	qualified := NormalizePublicID(s.folder, publicID)
	removed, err := s.store.Destroy(ctx, qualified)
	switch {
	case err != nil:
		s.log.InternalError("images.cleanup: destroy failed", err, "public_id", qualified)
		report.Failed = append(report.Failed, qualified)
	case !removed:
		s.log.Warn("images.cleanup: image already gone", "public_id", qualified)
		report.Missing++
	default:
		report.Deleted++
	}
}

// NormalizePublicID strips one leading "<folder>/" and re-adds it, so ids
// with and without the prefix address the same asset.
func NormalizePublicID(folder, publicID string) string {
	publicID = strings.TrimPrefix(strings.TrimSpace(publicID), "/")
	prefix := folder + "/"
	return prefix + strings.TrimPrefix(publicID, prefix)
}
