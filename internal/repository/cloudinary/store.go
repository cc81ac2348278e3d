package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/domain/images"
	"church-app-go/pkg/logger"
	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	destroyOK     = "ok"
	listPageSize  = 500
	defaultFolder = images.DefaultFolder
)

var ErrNotConfigured = errors.New("cloudinary credentials not configured")

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type adminAPI interface {
	Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error)
}

// Store talks to Cloudinary. It satisfies images.Store and the reconcile
// job's listing interface.
type Store struct {
	upload  uploadAPI
	admin   adminAPI
	folder  string
	timeout time.Duration
	log     logger.Logger
}

func New(cfg config.ImagesConfig, log logger.Logger) (*Store, error) {
	var (
		client *cld.Cloudinary
		err    error
	)
	switch {
	case cfg.CloudinaryURL != "":
		client, err = cld.NewFromURL(cfg.CloudinaryURL)
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		client, err = cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	client.Config.URL.Secure = true

	return newStore(&client.Upload, &client.Admin, cfg.Folder, cfg.UploadTimeout, log), nil
}

func newStore(up uploadAPI, adm adminAPI, folder string, timeout time.Duration, log logger.Logger) *Store {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = defaultFolder
	}
	return &Store{upload: up, admin: adm, folder: folder, timeout: timeout, log: log}
}

func (s *Store) Upload(ctx context.Context, data io.Reader, filename string) (images.Image, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.upload.Upload(ctx, data, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return images.Image{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return images.Image{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	s.log.Debug("cloudinary: uploaded", "file", filename, "public_id", res.PublicID)
	return images.Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy reports false when Cloudinary answers anything other than "ok",
// which is what it does for unknown ids.
func (s *Store) Destroy(ctx context.Context, publicID string) (bool, error) {
	res, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return false, fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return false, fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != destroyOK {
		s.log.Debug("cloudinary: destroy returned", "public_id", publicID, "result", res.Result)
		return false, nil
	}
	return true, nil
}

func (s *Store) ListAssets(ctx context.Context, prefix string) ([]images.Asset, error) {
	var (
		out    []images.Asset
		cursor string
	)
	for {
		res, err := s.admin.Assets(ctx, admin.AssetsParams{
			AssetType:    api.Image,
			DeliveryType: string(api.Upload),
			Prefix:       prefix,
			MaxResults:   listPageSize,
			NextCursor:   cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("cloudinary list assets: %w", err)
		}
		if res.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary list assets: %s", res.Error.Message)
		}
		for _, asset := range res.Assets {
			out = append(out, images.Asset{PublicID: asset.PublicID, CreatedAt: asset.CreatedAt})
		}
		if res.NextCursor == "" {
			return out, nil
		}
		cursor = res.NextCursor
	}
}
