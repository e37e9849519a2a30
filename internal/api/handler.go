// Package api provides the HTTP handlers for the docs analytics service:
// the public ingestion endpoints and the authenticated dashboard API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"

	"docsight/internal/access"
	"docsight/internal/classify"
	"docsight/internal/domain"
	"docsight/internal/events"
	"docsight/internal/gateway"
	"docsight/internal/middleware"
	"docsight/internal/query"
)

// Handler holds the service dependencies for all HTTP endpoints.
type Handler struct {
	writer  *events.Writer
	catalog *query.Catalog
	store   domain.AnalyticsStore
	gateway *gateway.Gateway
	access  *access.Service
	domains domain.VerifiedDomainRepo
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	writer *events.Writer,
	catalog *query.Catalog,
	store domain.AnalyticsStore,
	gw *gateway.Gateway,
	accessSvc *access.Service,
	domains domain.VerifiedDomainRepo,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		writer:  writer,
		catalog: catalog,
		store:   store,
		gateway: gw,
		access:  accessSvc,
		domains: domains,
		logger:  logger.With("component", "api"),
	}
}

// RouterConfig carries the transport-level settings the router needs.
type RouterConfig struct {
	QuerySecret        string
	JWTSecret          []byte
	CORSAllowedOrigins []string
	RateLimit          middleware.RateLimitConfig
}

// Router builds the chi router: public ingestion endpoints at the root,
// JWT-protected dashboard endpoints under /v1.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Secret", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimiter(cfg.RateLimit))

	r.Get("/health", h.handleHealth)
	r.Post("/track", h.handleTrack)
	r.Get("/detect", h.handleDetect)
	r.With(middleware.SecretAuth(cfg.QuerySecret)).Get("/query", h.handleQuery)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/analytics/query", h.handleAnalyticsQuery)
		r.Get("/me", h.handleMe)
		r.Get("/domains", h.handleListDomains)
		r.Post("/domains", h.handleAddDomain)
		r.Post("/domains/verify", h.handleVerifyDomain)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// trackRequest is the ingestion payload. Both the long and short field
// names are accepted so existing emitters do not need to change.
type trackRequest struct {
	Host         string `json:"host"`
	Path         string `json:"path"`
	UserAgent    string `json:"user_agent"`
	UA           string `json:"ua"`
	Accept       string `json:"accept"`
	AcceptHeader string `json:"accept_header"`
	Country      string `json:"country"`
}

type trackResponse struct {
	OK       bool                   `json:"ok"`
	Skipped  string                 `json:"skipped,omitempty"`
	Category domain.VisitorCategory `json:"category,omitempty"`
	Agent    string                 `json:"agent,omitempty"`
	Filtered bool                   `json:"filtered,omitempty"`
}

func (h *Handler) handleTrack(w http.ResponseWriter, r *http.Request) {
	var body trackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid JSON body: %v", err))
		return
	}

	host := defaultStr(body.Host, "unknown")
	path := defaultStr(body.Path, "/")
	ua := defaultStr(firstNonEmpty(body.UserAgent, body.UA), "unknown")
	accept := firstNonEmpty(body.Accept, body.AcceptHeader)
	country := defaultStr(body.Country, "unknown")

	// Non-page-view requests (API calls, asset fetches) are acknowledged
	// but never recorded.
	if !classify.IsPageView(accept) {
		writeJSON(w, http.StatusOK, trackResponse{OK: true, Skipped: "not-page-view"})
		return
	}

	class := classify.Classify(ua, accept, host)
	h.writer.Record(r.Context(), events.Request{
		Host:         host,
		Path:         path,
		UserAgent:    ua,
		AcceptHeader: accept,
		Country:      country,
	}, class)

	writeJSON(w, http.StatusOK, trackResponse{
		OK:       true,
		Category: class.Category,
		Agent:    class.Agent,
		Filtered: class.Filtered,
	})
}

type detectResponse struct {
	Category  domain.VisitorCategory `json:"category"`
	Agent     string                 `json:"agent"`
	Filtered  bool                   `json:"filtered"`
	UserAgent string                 `json:"user_agent"`
	Accept    string                 `json:"accept"`
	Host      string                 `json:"host"`
}

// handleDetect classifies the calling request itself. Debug aid: lets an
// operator curl the service and see how their client would be counted.
func (h *Handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	ua := r.UserAgent()
	accept := r.Header.Get("Accept")
	host := r.URL.Query().Get("host")
	if host == "" {
		host = r.Host
	}

	class := classify.Classify(ua, accept, host)
	writeJSON(w, http.StatusOK, detectResponse{
		Category:  class.Category,
		Agent:     class.Agent,
		Filtered:  class.Filtered,
		UserAgent: ua,
		Accept:    accept,
		Host:      host,
	})
}

// handleQuery runs a named template directly against the store, scoped to
// an optional host. Secret-gated internal endpoint; the dashboard goes
// through /v1/analytics/query instead.
func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("q")
	if name == "" {
		name = "default"
	}
	host := r.URL.Query().Get("host")

	sqlText, err := h.catalog.Render(name, host)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.store == nil {
		writeError(w, domain.ErrUnavailable("analytics store not configured"))
		return
	}

	rows, err := h.store.Query(r.Context(), sqlText)
	if err != nil {
		h.logger.Error("query failed", "template", name, "error", err)
		writeError(w, domain.ErrUnavailable("query failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": rows})
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
