package cache

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"angodata/internal/platform/metrics"
)

// ResponseCache caches successful GET responses keyed by URL. Mutating
// handlers call Invalidate with their entity prefix afterwards.
type ResponseCache struct {
	cache   Cache
	ttl     time.Duration
	suffix  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewResponseCache builds the middleware holder. The suffix distinguishes
// JSON-mode from DB-mode entries so a backend switch never serves stale
// rows from the other store.
func NewResponseCache(c Cache, ttl time.Duration, useDatabase bool, logger *slog.Logger, m *metrics.Metrics) *ResponseCache {
	suffix := ":json"
	if useDatabase {
		suffix = ":db"
	}
	return &ResponseCache{cache: c, ttl: ttl, suffix: suffix, logger: logger, metrics: m}
}

// Middleware serves GETs from cache when possible and stores fresh 200
// responses under the entity prefix. Cache errors degrade to a normal
// handler call; a flaky cache must never fail a read.
func (rc *ResponseCache) Middleware(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rc == nil || rc.cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := rc.key(prefix, r)
			if body, ok, err := rc.cache.Get(r.Context(), key); err == nil && ok {
				if rc.metrics != nil {
					rc.metrics.CacheHits.Inc()
				}
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			} else if err != nil {
				rc.logger.WarnContext(r.Context(), "cache read failed", "key", key, "error", err)
			}

			if rc.metrics != nil {
				rc.metrics.CacheMisses.Inc()
			}
			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				if err := rc.cache.Set(r.Context(), key, rec.body.Bytes(), rc.ttl); err != nil {
					rc.logger.WarnContext(r.Context(), "cache write failed", "key", key, "error", err)
				}
			}
		})
	}
}

// Invalidate drops every cached response under the entity prefix.
func (rc *ResponseCache) Invalidate(ctx context.Context, prefix string) {
	if rc == nil || rc.cache == nil {
		return
	}
	if err := rc.cache.DeletePrefix(ctx, prefix+":"); err != nil {
		rc.logger.WarnContext(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
	}
}

func (rc *ResponseCache) key(prefix string, r *http.Request) string {
	return prefix + ":" + r.URL.Path + "?" + r.URL.RawQuery + rc.suffix
}

type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == http.StatusOK {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}
