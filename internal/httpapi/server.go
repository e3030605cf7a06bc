package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"evald/internal/gateway"
	"evald/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Complete(ctx context.Context, req types.CompleteRequest) (types.CompleteResponse, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the chi router for the daemon: POST+OPTIONS /complete,
// GET /status, /healthz, /readyz, /metrics, and the optional swagger mount.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Permissive CORS: browser eval harnesses call /complete cross-origin.
	// The middleware also answers the OPTIONS preflight.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Post("/complete", func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.CompleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		if lvl >= LevelInfo {
			logStart(r, len(req.Contexts))
		}
		// Join server base context with request context so shutdown cancels
		// the blocked wait too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Complete(joinedCtx, req)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			if status == http.StatusServiceUnavailable && gateway.IsQueueFull(err) {
				IncrementBackpressure("queue_full")
			}
			writeJSONError(w, status, err.Error())
			if lvl >= LevelInfo {
				logEnd(r, status, time.Since(start), err)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		if lvl >= LevelInfo {
			logEnd(r, http.StatusOK, time.Since(start), nil)
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// statusForError maps well-known gateway errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case gateway.IsInvalidJob(err):
		return http.StatusBadRequest
	case gateway.IsQueueFull(err):
		return http.StatusServiceUnavailable
	case gateway.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	case gateway.IsEngineFailure(err):
		return http.StatusInternalServerError
	case gateway.IsResultAbandoned(err), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logStart(r *http.Request, contexts int) {
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int("contexts", contexts)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("complete start")
		return
	}
	log.Printf("complete start path=%s contexts=%d", r.URL.Path, contexts)
}

func logEnd(r *http.Request, status int, dur time.Duration, err error) {
	if zlog != nil {
		z := zlog.Info().Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("complete end")
		return
	}
	if err != nil {
		log.Printf("complete end status=%d dur=%s err=%v", status, dur, err)
		return
	}
	log.Printf("complete end status=%d dur=%s", status, dur)
}
