package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/db"
	admindomain "church-app-go/internal/domain/admin"
	calendardomain "church-app-go/internal/domain/calendar"
	familydomain "church-app-go/internal/domain/family"
	groupdomain "church-app-go/internal/domain/group"
	imagesdomain "church-app-go/internal/domain/images"
	memberdomain "church-app-go/internal/domain/member"
	"church-app-go/internal/domain/reconcile"
	statsdomain "church-app-go/internal/domain/stats"
	"church-app-go/internal/repository/cloudinary"
	"church-app-go/internal/repository/inmemory"
	adminrepo "church-app-go/internal/repository/postgres/admin"
	calendarrepo "church-app-go/internal/repository/postgres/calendar"
	familyrepo "church-app-go/internal/repository/postgres/family"
	grouprepo "church-app-go/internal/repository/postgres/group"
	memberrepo "church-app-go/internal/repository/postgres/member"
	statsrepo "church-app-go/internal/repository/postgres/stats"
	"church-app-go/internal/scheduler"
	"church-app-go/internal/transport/httpserver"
	"church-app-go/internal/transport/httpserver/handler"
	"church-app-go/migrations"
	"church-app-go/pkg/cache"
	"church-app-go/pkg/email"
	"church-app-go/pkg/logger"
	"church-app-go/pkg/token"
	"gorm.io/gorm"
)

const bootstrapTimeout = 10 * time.Second

// store is the shared surface of the Redis and in-process caches.
type store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type imageStore interface {
	imagesdomain.Store
	imagesdomain.Lister
}

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	redis      *cache.Redis
	scheduler  *scheduler.Scheduler
	reconciler *reconcile.Reconciler
	admin      *admindomain.Service
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log, db: dbConn}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn, migrations.FS, log); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	kv, err := a.initCache()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	imgStore, err := a.initImageStore()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	log.Info("app: initializing services")
	groups := grouprepo.NewPostgres(dbConn)
	families := familyrepo.NewPostgres(dbConn)
	members := memberrepo.NewPostgres(dbConn)

	imagesSvc := imagesdomain.NewService(imgStore, imagesdomain.Options{
		Folder:       cfg.Images.Folder,
		MaxDimension: cfg.Images.MaxDimension,
	}, log)
	a.admin = admindomain.NewService(
		adminrepo.NewPostgres(dbConn),
		token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		email.NewSender(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			DevMode:  !cfg.IsProduction() && cfg.Email.Username == "",
		}, log),
		admindomain.Options{ClientURL: cfg.ClientURL, ResetTokenTTL: cfg.Auth.ResetTokenTTL},
		log,
	)

	services := handler.Services{
		Groups:   groupdomain.NewService(groups, families, members, imagesSvc, log),
		Families: familydomain.NewService(families, groups, members, imagesSvc, log),
		Members:  memberdomain.NewService(members, families, groups, imagesSvc, log),
		Calendar: calendardomain.NewService(calendarrepo.NewPostgres(dbConn)),
		Admin:    a.admin,
		Images:   imagesSvc,
		Stats:    statsdomain.NewService(statsrepo.NewPostgres(dbConn), kv, cfg.Redis.StatsTTL, log),
	}

	a.reconciler = reconcile.New(imgStore, []reconcile.ReferenceSource{groups, families, members}, reconcile.Options{
		Folder: cfg.Images.Folder,
		MinAge: cfg.Reconcile.MinAge,
		DryRun: cfg.Reconcile.DryRun,
	}, log)

	if err := a.bootstrapAdmin(); err != nil {
		_ = a.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	handlers := handler.New(services, handler.Options{
		Cookie:        handler.CookieOptions{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure},
		MaxUploadSize: cfg.Images.MaxUploadSize,
		DatabasePing: func(ctx context.Context) error {
			return db.Ping(ctx, dbConn)
		},
		RedisConfigured: a.redis != nil,
	}, log)
	router := httpserver.NewRouter(cfg, handlers, httpserver.Dependencies{
		Auth:     a.admin,
		Counters: kv,
		Cache:    kv,
	}, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	log.Info("app: initializing scheduler")
	if err := a.initScheduler(); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) initCache() (store, error) {
	if a.cfg.Redis.URL == "" {
		a.log.Warn("app: REDIS_URL not set, using in-process cache")
		return inmemory.NewCache(), nil
	}

	a.log.Info("app: connecting to redis")
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()
	client, err := cache.NewRedis(ctx, a.cfg.Redis.URL, a.cfg.Redis.KeyPrefix, a.log)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.redis = client
	return client, nil
}

func (a *App) initImageStore() (imageStore, error) {
	if !a.cfg.Images.CloudinaryConfigured() {
		if a.cfg.IsProduction() {
			return nil, fmt.Errorf("images: %w", cloudinary.ErrNotConfigured)
		}
		a.log.Warn("app: cloudinary not configured, images are kept in memory")
		return inmemory.NewImageStore(a.cfg.Images.Folder), nil
	}

	a.log.Info("app: initializing cloudinary")
	return cloudinary.New(a.cfg.Images, a.log)
}

func (a *App) bootstrapAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	created, err := a.admin.EnsureAdmin(ctx, admindomain.CreateInput{
		UserName: a.cfg.Bootstrap.AdminUserName,
		Email:    a.cfg.Bootstrap.AdminEmail,
		Password: a.cfg.Bootstrap.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		a.log.Info("app: bootstrap admin created", "email", a.cfg.Bootstrap.AdminEmail)
	}
	return nil
}

func (a *App) initScheduler() error {
	a.scheduler = scheduler.New(a.log)

	if a.cfg.Reconcile.TokenPurgeEvery != "" {
		err := a.scheduler.Add("purge_reset_tokens", a.cfg.Reconcile.TokenPurgeEvery, func(ctx context.Context) error {
			n, err := a.admin.PurgeExpiredResetTokens(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				a.log.Info("auth: expired reset tokens cleared", "count", n)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if a.cfg.Reconcile.Enabled {
		err := a.scheduler.Add("reconcile_images", a.cfg.Reconcile.Schedule, func(ctx context.Context) error {
			_, err := a.reconciler.Run(ctx)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Start runs the periodic jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	if a.scheduler != nil && a.scheduler.Len() > 0 {
		a.scheduler.Start()
	}
}

// Reconcile runs one orphaned-image sweep.
func (a *App) Reconcile(ctx context.Context) (reconcile.Report, error) {
	return a.reconciler.Run(ctx)
}

func (a *App) Close() error {
	if a.scheduler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		a.scheduler.Stop(ctx)
		cancel()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("app: redis close failed", "err", err)
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
