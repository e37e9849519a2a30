package api

import (
	"net/http"

	"docsight/internal/domain"
)

// handleAnalyticsQuery is the dashboard's access-controlled query
// endpoint. The gateway scopes every template to the caller's allowed
// hosts; an out-of-scope host yields an empty result, not an error.
func (h *Handler) handleAnalyticsQuery(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("no identity"))
		return
	}

	name := r.URL.Query().Get("q")
	if name == "" {
		name = "default"
	}
	host := r.URL.Query().Get("host")

	rows, err := h.gateway.Query(r.Context(), id, name, host)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": rows})
}
