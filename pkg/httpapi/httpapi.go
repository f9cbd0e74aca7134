// Package httpapi serves the profile analysis over HTTP.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codeGROOVE-dev/stackscope/pkg/analyzer"
	"github.com/codeGROOVE-dev/stackscope/pkg/profile"
)

const maxRequestBodySize = 64 << 10

// Service is the analysis backend.
type Service interface {
	Summary(ctx context.Context, req analyzer.Request) (string, error)
	Analyze(ctx context.Context, req analyzer.Request) (*profile.AnalysisResult, error)
}

// Deps holds the handler dependencies.
type Deps struct {
	Service Service
	Logger  *slog.Logger
	// Token, when set, is required as a bearer token on /v1 routes.
	Token string
}

// SummaryResponse is the default response of POST /v1/analyze.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// NewHandler returns the router:
//
//	GET  /healthz
//	POST /v1/analyze              {"summary": "..."}
//	POST /v1/analyze?format=full  full analysis result
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(bearerAuth(deps.Token))
		}
		r.Post("/analyze", handleAnalyze(deps))
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // best effort
}

func handleAnalyze(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close() //nolint:errcheck // request body

		var req analyzer.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		ctx := r.Context()
		var (
			body any
			err  error
		)
		switch format := r.URL.Query().Get("format"); format {
		case "", "summary":
			var s string
			s, err = deps.Service.Summary(ctx, req)
			body = SummaryResponse{Summary: s}
		case "full":
			body, err = deps.Service.Analyze(ctx, req)
		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown format %q", format)
			return
		}

		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		case err != nil:
			deps.Logger.ErrorContext(ctx, "analysis failed",
				"request_id", middleware.GetReqID(ctx), "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "analysis failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			deps.Logger.WarnContext(ctx, "write response", "error", err)
		}
	}
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) || subtle.ConstantTimeCompare([]byte(auth[len(prefix):]), []byte(token)) != 1 {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func httpError(w http.ResponseWriter, code int, errType, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck // best effort
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}
