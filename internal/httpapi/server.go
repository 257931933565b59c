package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"cvard/internal/cvar"
	"cvard/internal/guard"
	"cvard/pkg/types"
)

// Rounds is the slice of the guard the HTTP layer drives: the host invokes
// the lifecycle boundary through POST /round/end.
type Rounds interface {
	OnRoundEnd()
}

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

func snapshotInfo(s cvar.Snapshot) types.CvarInfo {
	return types.CvarInfo{Name: s.Name, Value: s.Value, Default: s.Default, Help: s.Help}
}

func varInfo(v *cvar.Var) types.CvarInfo {
	return types.CvarInfo{Name: v.Name(), Value: v.Int(), Default: v.Default(), Help: v.Help()}
}

// NewMux builds the admin router. ws, when non-nil, is mounted at /ws for
// broadcast subscribers.
func NewMux(reg *cvar.Registry, rounds Rounds, ws http.Handler) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Get("/cvars", func(w http.ResponseWriter, r *http.Request) {
		snaps := reg.List()
		resp := types.CvarsResponse{Cvars: make([]types.CvarInfo, 0, len(snaps))}
		for _, s := range snaps {
			resp.Cvars = append(resp.Cvars, snapshotInfo(s))
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/cvars/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		v, ok := reg.Lookup(name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "unknown cvar: "+name)
			return
		}
		writeJSON(w, http.StatusOK, varInfo(v))
	})

	r.Put("/cvars/{name}", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.SetCvarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		name := chi.URLParam(r, "name")
		v, ok := reg.Lookup(name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "unknown cvar: "+name)
			return
		}
		start := time.Now()
		// Guards subscribed to the variable run inside this call, so the
		// value read below is the effective one, clamps included.
		v.SetInt(req.Value)
		eff := v.Int()
		if zlog != nil {
			z := zlog.Info().Str("cvar", name).Int64("requested", req.Value).Int64("effective", eff).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("cvar set")
		} else {
			log.Printf("cvar set name=%s requested=%d effective=%d", name, req.Value, eff)
		}
		writeJSON(w, http.StatusOK, varInfo(v))
	})

	r.Post("/round/end", func(w http.ResponseWriter, r *http.Request) {
		rounds.OnRoundEnd()
		v, ok := reg.Lookup(guard.VarName)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "guarded cvar missing from registry")
			return
		}
		writeJSON(w, http.StatusOK, types.RoundEndResponse{Cvar: v.Name(), Value: v.Int()})
	})

	if ws != nil {
		r.Get("/ws", ws.ServeHTTP)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := reg.Lookup(guard.VarName); ok {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unbound"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
