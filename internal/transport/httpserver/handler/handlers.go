package handler

import (
	"context"

	admindomain "church-app-go/internal/domain/admin"
	calendardomain "church-app-go/internal/domain/calendar"
	familydomain "church-app-go/internal/domain/family"
	groupdomain "church-app-go/internal/domain/group"
	imagesdomain "church-app-go/internal/domain/images"
	memberdomain "church-app-go/internal/domain/member"
	statsdomain "church-app-go/internal/domain/stats"
	"church-app-go/pkg/logger"
)

const defaultMaxUpload = 10 << 20

type Services struct {
	Groups   *groupdomain.Service
	Families *familydomain.Service
	Members  *memberdomain.Service
	Calendar *calendardomain.Service
	Admin    *admindomain.Service
	Images   *imagesdomain.Service
	Stats    *statsdomain.Service
}

type CookieOptions struct {
	Name   string
	Secure bool
}

// PingFunc reports whether a backing store is reachable.
type PingFunc func(ctx context.Context) error

type Options struct {
	Cookie          CookieOptions
	MaxUploadSize   int64
	DatabasePing    PingFunc
	RedisConfigured bool
}

type Handlers struct {
	Groups   *groupdomain.Service
	Families *familydomain.Service
	Members  *memberdomain.Service
	Calendar *calendardomain.Service
	Admin    *admindomain.Service
	Images   *imagesdomain.Service
	Stats    *statsdomain.Service

	opts Options
	log  logger.Logger
}

func New(services Services, opts Options, log logger.Logger) *Handlers {
	if opts.Cookie.Name == "" {
		opts.Cookie.Name = "token"
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUpload
	}
	return &Handlers{
		Groups:   services.Groups,
		Families: services.Families,
		Members:  services.Members,
		Calendar: services.Calendar,
		Admin:    services.Admin,
		Images:   services.Images,
		Stats:    services.Stats,
		opts:     opts,
		log:      log,
	}
}

func (h *Handlers) CookieName() string {
	return h.opts.Cookie.Name
}
