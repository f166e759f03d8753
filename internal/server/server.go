// ABOUTME: HTTP transport for the legal crew: POST /legal-advice and GET /health
// ABOUTME: Huma operations on a chi router; each request gets its own pipeline run
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/models"
)

// Asker runs one question through the deliberation pipeline
type Asker interface {
	Run(ctx context.Context, q models.Question) crew.Result
}

// Config for the HTTP API handler
type Config struct {
	Asker   Asker
	Version string
	Logger  *log.Logger
	// RequestTimeout bounds a single run; zero means no limit
	RequestTimeout time.Duration
}

type adviceInput struct {
	Body struct {
		Question string `json:"question" minLength:"1" doc:"The legal question"`
		Document string `json:"document,omitempty" required:"false" doc:"Optional rental contract text"`
	}
}

type adviceOutput struct {
	Body crew.Report
}

type healthOutput struct {
	Body struct {
		Status  string `json:"status" example:"ok"`
		Version string `json:"version"`
	}
}

// New returns an HTTP handler exposing the legal advice API
func New(cfg Config) http.Handler {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(cfg.Logger))
	router.Use(allowAnyOrigin)

	hcfg := huma.DefaultConfig("Legal Crew API", cfg.Version)
	api := humachi.New(router, hcfg)

	registerHealth(api, cfg.Version)
	registerAdvice(api, cfg)

	return router
}

func registerHealth(api huma.API, version string) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*healthOutput, error) {
		out := &healthOutput{}
		out.Body.Status = "ok"
		out.Body.Version = version
		return out, nil
	})
}

func registerAdvice(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "legal-advice",
		Method:      http.MethodPost,
		Path:        "/legal-advice",
		Summary:     "Ask a legal question",
		Description: "Runs the question (and optional contract) through the deliberation pipeline. " +
			"The run's outcome is in the status field: success, contract_needed or error.",
		Errors: []int{http.StatusBadRequest, http.StatusUnprocessableEntity},
	}, func(ctx context.Context, input *adviceInput) (*adviceOutput, error) {
		question := strings.TrimSpace(input.Body.Question)
		if question == "" {
			return nil, huma.Error400BadRequest("question must not be blank")
		}

		if cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}

		result := cfg.Asker.Run(ctx, models.Question{Text: question, Document: input.Body.Document})
		return &adviceOutput{Body: result.Report()}, nil
	})
}

// requestLogger logs one line per request
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if logger != nil {
				logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration", time.Since(start).Round(time.Millisecond),
					"request_id", middleware.GetReqID(r.Context()))
			}
		})
	}
}

// allowAnyOrigin answers CORS preflights so browser front ends can call the API
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs the handler on addr until ctx is canceled
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
