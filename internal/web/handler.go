package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ghsum/ghsum/internal/domain"
)

// Logger interface for logging operations.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Aggregator is the profile summary entry point the handler depends on.
type Aggregator interface {
	Aggregate(ctx context.Context, rawInput string) (*domain.ProfileSummary, error)
}

// Handler handles HTTP requests for the analyzer.
type Handler struct {
	renderer   Renderer
	logger     Logger
	aggregator Aggregator
}

// NewHandler creates a new Handler with injected dependencies.
func NewHandler(renderer Renderer, logger Logger, aggregator Aggregator) *Handler {
	return &Handler{
		renderer:   renderer,
		logger:     logger,
		aggregator: aggregator,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/analyze", h.handleAnalyze)
	mux.HandleFunc("/api/health", h.handleHealth)
}

// handleIndex serves the analyzer form.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w); err != nil {
		h.logger.Printf("failed to render index: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.renderer.RenderHealth(w); err != nil {
		h.logger.Printf("failed to render health: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// analyzeRequest is the JSON body posted by the page script.
type analyzeRequest struct {
	GitHubURL string `json:"github_url"`
}

// handleAnalyze runs the aggregation for a submitted profile URL and answers
// with either the summary or a user-readable error message as JSON.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		h.renderError(w, http.StatusMethodNotAllowed, "Use POST to analyze a profile.")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, http.StatusBadRequest, "Request body must be JSON with a github_url field.")
		return
	}
	if req.GitHubURL == "" {
		h.renderError(w, http.StatusBadRequest, "GitHub URL is required.")
		return
	}

	summary, err := h.aggregator.Aggregate(r.Context(), req.GitHubURL)
	if err != nil {
		status, message := classifyError(err)
		h.logger.Printf("analyze %q failed: %v", req.GitHubURL, err)
		h.renderError(w, status, message)
		return
	}

	h.logger.Printf("analyzed profile %s", summary.Username)
	if err := h.renderer.RenderSummaryJSON(w, summary); err != nil {
		h.logger.Printf("failed to render summary: %v", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := h.renderer.RenderErrorJSON(w, message); err != nil {
		h.logger.Printf("failed to render error: %v", err)
	}
}

// classifyError maps the domain error taxonomy to an HTTP status and a
// user-readable message. Everything coming out of the aggregator falls into
// one of these categories; nothing propagates unhandled.
func classifyError(err error) (int, string) {
	var rateErr *domain.RateLimitedError
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, "Not a valid GitHub profile URL or username."
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "GitHub profile not found."
	case errors.As(err, &rateErr):
		if rateErr.RetryAfter > 0 {
			return http.StatusTooManyRequests, fmt.Sprintf("GitHub API rate limit exceeded. Try again in %s.", rateErr.RetryAfter.Round(time.Second))
		}
		return http.StatusTooManyRequests, "GitHub API rate limit exceeded. Try again later."
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "GitHub API rate limit exceeded. Try again later."
	case errors.Is(err, domain.ErrAuth):
		return http.StatusBadGateway, "GitHub rejected the configured API token. Contact the operator."
	default:
		return http.StatusBadGateway, "Could not reach GitHub. Please try again."
	}
}
