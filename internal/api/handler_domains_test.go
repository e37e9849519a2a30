package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeReportsIdentityAndHosts(t *testing.T) {
	env := newTestEnv(t)

	rec, body := doJSON(t, env.router, http.MethodGet, "/v1/me", nil, map[string]string{
		"Authorization": bearerToken(t, "dev@opral.com"),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev@opral.com", body["email"])
	assert.Equal(t, false, body["admin"])
	assert.Equal(t, false, body["unrestricted"])
	hosts, ok := body["hosts"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, hosts, "opral.com")
	assert.Contains(t, hosts, "inlang.com")
}

func TestMeAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec, body := doJSON(t, env.router, http.MethodGet, "/v1/me", nil, map[string]string{
		"Authorization": bearerToken(t, "admin@docsight.dev"),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["admin"])
	assert.Equal(t, true, body["unrestricted"])
}

func TestAddAndListDomains(t *testing.T) {
	env := newTestEnv(t)
	auth := map[string]string{"Authorization": bearerToken(t, "dev@example.com")}

	rec, created := doJSON(t, env.router, http.MethodPost, "/v1/domains", map[string]string{
		"host": "Docs.Example.ORG",
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "docs.example.org", created["host"])
	assert.Equal(t, false, created["verified"])

	rec, body := doJSON(t, env.router, http.MethodGet, "/v1/domains", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
}

func TestAddDomainRequiresHost(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := doJSON(t, env.router, http.MethodPost, "/v1/domains", map[string]string{}, map[string]string{
		"Authorization": bearerToken(t, "dev@example.com"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyDomainAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	// Claim as a regular user.
	rec, _ := doJSON(t, env.router, http.MethodPost, "/v1/domains", map[string]string{
		"host": "docs.example.org",
	}, map[string]string{"Authorization": bearerToken(t, "dev@example.com")})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Non-admin cannot verify.
	rec, _ = doJSON(t, env.router, http.MethodPost, "/v1/domains/verify", map[string]string{
		"user_email": "dev@example.com",
		"host":       "docs.example.org",
	}, map[string]string{"Authorization": bearerToken(t, "dev@example.com")})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin can.
	rec, _ = doJSON(t, env.router, http.MethodPost, "/v1/domains/verify", map[string]string{
		"user_email": "dev@example.com",
		"host":       "docs.example.org",
	}, map[string]string{"Authorization": bearerToken(t, "admin@docsight.dev")})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The verified host now widens query access.
	rec, _ = doJSON(t, env.router, http.MethodGet, "/v1/analytics/query?q=sites&host=docs.example.org", nil,
		map[string]string{"Authorization": bearerToken(t, "dev@example.com")})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.store.sqls)
}

func TestVerifyUnknownClaim(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := doJSON(t, env.router, http.MethodPost, "/v1/domains/verify", map[string]string{
		"user_email": "dev@example.com",
		"host":       "never-claimed.org",
	}, map[string]string{"Authorization": bearerToken(t, "admin@docsight.dev")})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
