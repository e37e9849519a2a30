package access

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the static part of access control: the admin allowlist and
// domain-to-host cross-grants. Loaded once at process start, read-only
// thereafter.
type Config struct {
	// AdminEmails get unrestricted access to every host.
	AdminEmails []string `yaml:"admin_emails"`

	// DomainGrants maps an email domain to extra hosts its users may
	// query (e.g. "opral.com" -> ["inlang.com"]).
	DomainGrants map[string][]string `yaml:"domain_grants"`
}

// LoadConfig reads a YAML grants file. A missing path yields an empty
// config rather than an error, so the service can run without one.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read grants file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse grants file %s: %w", path, err)
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize lowercases emails, domains, and hosts so lookups can be
// case-insensitive.
func (c *Config) normalize() {
	for i, e := range c.AdminEmails {
		c.AdminEmails[i] = strings.ToLower(strings.TrimSpace(e))
	}
	if c.DomainGrants == nil {
		return
	}
	grants := make(map[string][]string, len(c.DomainGrants))
	for dom, hosts := range c.DomainGrants {
		lowered := make([]string, len(hosts))
		for i, h := range hosts {
			lowered[i] = strings.ToLower(strings.TrimSpace(h))
		}
		grants[strings.ToLower(strings.TrimSpace(dom))] = lowered
	}
	c.DomainGrants = grants
}

func (c *Config) isAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
