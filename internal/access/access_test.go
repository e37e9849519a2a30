package access

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsight/internal/domain"
)

// fakeDomains is an in-memory VerifiedDomainRepo.
type fakeDomains struct {
	verified map[string][]string
}

func (f *fakeDomains) ListVerified(_ context.Context, email string) ([]string, error) {
	return f.verified[email], nil
}

func (f *fakeDomains) List(context.Context, string) ([]domain.VerifiedDomain, error) {
	return nil, nil
}

func (f *fakeDomains) Add(context.Context, string, string) (*domain.VerifiedDomain, error) {
	return nil, nil
}

func (f *fakeDomains) MarkVerified(context.Context, string, string) error { return nil }

func testConfig() *Config {
	cfg := &Config{
		AdminEmails: []string{"root@example.com"},
		DomainGrants: map[string][]string{
			"opral.com": {"inlang.com"},
		},
	}
	cfg.normalize()
	return cfg
}

func TestResolveEmailDomainOnly(t *testing.T) {
	svc := NewService(testConfig(), &fakeDomains{})

	got, err := svc.ResolveAllowedHosts(context.Background(), domain.Identity{Email: "a@foo.com"})
	require.NoError(t, err)
	assert.False(t, got.Unrestricted)
	assert.Equal(t, []string{"foo.com"}, got.Hosts)
}

func TestResolveIncludesStaticGrants(t *testing.T) {
	svc := NewService(testConfig(), &fakeDomains{})

	got, err := svc.ResolveAllowedHosts(context.Background(), domain.Identity{Email: "dev@opral.com"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"opral.com", "inlang.com"}, got.Hosts)
}

func TestResolveIncludesVerifiedDomains(t *testing.T) {
	svc := NewService(testConfig(), &fakeDomains{
		verified: map[string][]string{"a@foo.com": {"bar.dev", "foo.com"}},
	})

	got, err := svc.ResolveAllowedHosts(context.Background(), domain.Identity{Email: "a@foo.com"})
	require.NoError(t, err)
	// Union, deduplicated.
	assert.ElementsMatch(t, []string{"foo.com", "bar.dev"}, got.Hosts)
}

func TestResolveAdminIsUnrestricted(t *testing.T) {
	svc := NewService(testConfig(), &fakeDomains{
		verified: map[string][]string{"root@example.com": {"whatever.com"}},
	})

	got, err := svc.ResolveAllowedHosts(context.Background(), domain.Identity{Email: "Root@Example.com"})
	require.NoError(t, err)
	assert.True(t, got.Unrestricted)
	assert.Empty(t, got.Hosts)
}

func TestResolveNoEmailYieldsEmptySet(t *testing.T) {
	svc := NewService(testConfig(), &fakeDomains{})

	got, err := svc.ResolveAllowedHosts(context.Background(), domain.Identity{})
	require.NoError(t, err)
	assert.False(t, got.Unrestricted, "no identity must never mean unrestricted")
	assert.Empty(t, got.Hosts)
}

func TestAllowedHostsContainment(t *testing.T) {
	set := domain.AllowedHosts{Hosts: []string{"foo.com"}}
	assert.True(t, set.Contains("docs.foo.com"))
	assert.True(t, set.Contains("foo.com"))
	assert.False(t, set.Contains("bar.dev"))

	unrestricted := domain.AllowedHosts{Unrestricted: true}
	assert.True(t, unrestricted.Contains("anything.at.all"))

	empty := domain.AllowedHosts{}
	assert.False(t, empty.Contains("foo.com"), "empty set is not unrestricted")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
admin_emails:
  - Admin@Example.COM
domain_grants:
  Opral.com:
    - Inlang.com
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.isAdmin("admin@example.com"))
	assert.Equal(t, []string{"inlang.com"}, cfg.DomainGrants["opral.com"])
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.AdminEmails)
}
