package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"docsight/internal/domain"
)

type meResponse struct {
	Email        string   `json:"email"`
	Admin        bool     `json:"admin"`
	Unrestricted bool     `json:"unrestricted"`
	Hosts        []string `json:"hosts"`
}

// handleMe reports who the caller is and which hosts they can query.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("no identity"))
		return
	}

	allowed, err := h.access.ResolveAllowedHosts(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	hosts := allowed.Hosts
	if hosts == nil {
		hosts = []string{}
	}
	writeJSON(w, http.StatusOK, meResponse{
		Email:        id.Email,
		Admin:        h.access.IsAdmin(id),
		Unrestricted: allowed.Unrestricted,
		Hosts:        hosts,
	})
}

type verifiedDomainResponse struct {
	ID       string `json:"id"`
	Host     string `json:"host"`
	Verified bool   `json:"verified"`
}

func domainToAPI(d domain.VerifiedDomain) verifiedDomainResponse {
	return verifiedDomainResponse{ID: d.ID, Host: d.Host, Verified: d.Verified}
}

func (h *Handler) handleListDomains(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("no identity"))
		return
	}

	ds, err := h.domains.List(r.Context(), id.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]verifiedDomainResponse, len(ds))
	for i, d := range ds {
		out[i] = domainToAPI(d)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": out})
}

type addDomainRequest struct {
	Host string `json:"host"`
}

// handleAddDomain registers an ownership claim for a host. The claim
// starts unverified and grants no query access until an admin marks it
// verified.
func (h *Handler) handleAddDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("no identity"))
		return
	}

	var body addDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid JSON body: %v", err))
		return
	}
	host := strings.TrimSpace(strings.ToLower(body.Host))
	if host == "" {
		writeError(w, domain.ErrValidation("host is required"))
		return
	}

	d, err := h.domains.Add(r.Context(), id.Email, host)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainToAPI(*d))
}

type verifyDomainRequest struct {
	UserEmail string `json:"user_email"`
	Host      string `json:"host"`
}

// handleVerifyDomain marks a claim verified. Attestation (DNS record,
// file upload) happens outside this system, so the endpoint is
// admin-only.
func (h *Handler) handleVerifyDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("no identity"))
		return
	}
	if !h.access.IsAdmin(id) {
		writeError(w, domain.ErrAccessDenied("admin access required"))
		return
	}

	var body verifyDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrValidation("invalid JSON body: %v", err))
		return
	}
	if body.UserEmail == "" || body.Host == "" {
		writeError(w, domain.ErrValidation("user_email and host are required"))
		return
	}

	if err := h.domains.MarkVerified(r.Context(), body.UserEmail, body.Host); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
