package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"church-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const responsePrefix = "resp:"

type ResponseStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ResponseCache keeps successful public GET responses by URL. Any
// successful mutation drops every cached response and the prefixes listed
// in invalidate.
type ResponseCache struct {
	store      ResponseStore
	ttl        time.Duration
	invalidate []string
	log        logger.Logger
}

func NewResponseCache(store ResponseStore, ttl time.Duration, log logger.Logger, invalidate ...string) *ResponseCache {
	return &ResponseCache{
		store:      store,
		ttl:        ttl,
		invalidate: append([]string{responsePrefix}, invalidate...),
		log:        log,
	}
}

func (c *ResponseCache) Cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || c.ttl <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := responsePrefix + r.URL.RequestURI()
		if body, err := c.store.GetBytes(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		var buf bytes.Buffer
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&buf)
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(ww, r)

		if ww.Status() == http.StatusOK && buf.Len() > 0 {
			if err := c.store.SetBytes(r.Context(), key, buf.Bytes(), c.ttl); err != nil {
				c.log.InternalError("cache: store response failed", err, "key", key)
			}
		}
	})
}

func (c *ResponseCache) Invalidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if !mutated(r.Method, ww.Status()) {
			return
		}
		for _, prefix := range c.invalidate {
			if err := c.store.DeletePrefix(r.Context(), prefix); err != nil {
				c.log.InternalError("cache: invalidate failed", err, "prefix", prefix)
			}
		}
	})
}

// mutated reports whether a write may have changed stored data. A DELETE
// that failed with a server error can still have removed rows part way.
func mutated(method string, status int) bool {
	switch {
	case status == 0:
		return false
	case status < http.StatusBadRequest:
		return true
	case status >= http.StatusInternalServerError:
		return method == http.MethodDelete
	default:
		return false
	}
}
