package httpserver

import (
	"net/http"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/transport/httpserver/handler"
	authmw "church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const statsCachePrefix = "stats:"

// Dependencies are the stores the middleware stack runs on.
type Dependencies struct {
	Auth     authmw.Authenticator
	Counters authmw.Counter
	Cache    authmw.ResponseStore
}

func NewRouter(cfg config.Config, handlers *handler.Handlers, deps Dependencies, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.Compress(5))
	r.Use(authmw.NewCORS([]string{cfg.ClientURL, "http://localhost:5173"}))

	r.Get("/health", handlers.Health)

	limit := func(rule authmw.RateLimit) func(http.Handler) http.Handler {
		if !cfg.RateLimit.Enabled {
			return func(next http.Handler) http.Handler { return next }
		}
		return authmw.NewRateLimiter(deps.Counters, rule, log)
	}
	authLimit := limit(authmw.RateLimit{
		Name:    "auth",
		Limit:   cfg.RateLimit.AuthLimit,
		Window:  cfg.RateLimit.AuthWindow,
		Message: "Too many login attempts, please try again later.",
	})
	uploadLimit := limit(authmw.RateLimit{
		Name:    "upload",
		Limit:   cfg.RateLimit.UploadLimit,
		Window:  cfg.RateLimit.UploadWindow,
		Message: "Too many file uploads, please try again later.",
	})

	cache := authmw.NewResponseCache(deps.Cache, cfg.Redis.CacheTTL, log, statsCachePrefix)
	admin := authmw.NewAdminAuth(deps.Auth, cfg.Auth.CookieName, log).Middleware

	r.Route("/church", func(r chi.Router) {
		r.Use(limit(authmw.RateLimit{
			Name:   "api",
			Limit:  cfg.RateLimit.GlobalLimit,
			Window: cfg.RateLimit.GlobalWindow,
		}))
		r.Use(cache.Invalidate)

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimit).Post("/login", handlers.Login)
			r.With(authLimit).Post("/forgot-password", handlers.ForgotPassword)
			r.With(authLimit).Post("/reset-password", handlers.ResetPassword)
			r.Post("/logout", handlers.Logout)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/create-admin", handlers.CreateAdmin)
				r.Get("/check-auth", handlers.CheckAuth)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", handlers.ListGroups)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/create-group", handlers.CreateGroup)
				r.With(uploadLimit).Post("/upload-image", handlers.UploadImage("groups.upload_image", "Group image uploaded successfully"))
				r.Put("/update/{id}", handlers.UpdateGroup)
				r.Delete("/delete/{groupId}", handlers.DeleteGroup)
				r.Delete("/delete-image/{publicId}", handlers.DeleteImage("groups.delete_image"))
			})
		})

		r.Route("/families", func(r chi.Router) {
			r.Get("/", handlers.ListFamilies)
			r.Get("/{groupId}/families", handlers.ListFamiliesByGroup)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/create-family", handlers.CreateFamily)
				r.With(uploadLimit).Post("/upload-image", handlers.UploadImage("families.upload_image", "Family Image uploaded"))
				r.Put("/update/{familyId}", handlers.UpdateFamily)
				r.Delete("/delete/{familyId}", handlers.DeleteFamily)
				r.Delete("/delete-image/{publicId}", handlers.DeleteImage("families.delete_image"))
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.With(cache.Cached).Get("/birthdays", handlers.ListBirthdays)
			r.With(cache.Cached).Get("/public-members", handlers.ListPublicMembers)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", handlers.ListMembers)
				r.Get("/members/{id}", handlers.GetMember)
				r.Get("/{familyId}/members", handlers.ListMembersByFamily)
				r.Post("/members", handlers.CreateMember)
				r.Put("/members/update/{id}", handlers.UpdateMember)
				r.Delete("/members/{id}", handlers.DeleteMember)
				r.With(uploadLimit).Post("/upload-image", handlers.UploadImage("members.upload_image", "Image uploaded successfully."))
				r.Delete("/delete-image/{publicId}", handlers.DeleteImage("members.delete_image"))
			})
		})

		r.Route("/calendar", func(r chi.Router) {
			r.With(cache.Cached).Get("/events", handlers.ListEvents)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/events", handlers.CreateEvent)
				r.Put("/events/{id}", handlers.UpdateEvent)
				r.Delete("/events/{id}", handlers.DeleteEvent)
			})
		})

		r.With(admin).Get("/dashboard/summary", handlers.DashboardSummary)
	})

	return r
}
