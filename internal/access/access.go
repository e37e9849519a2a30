// Package access resolves an authenticated identity into the set of
// hosts it may query analytics for.
package access

import (
	"context"
	"fmt"
	"strings"

	"docsight/internal/domain"
)

// Service computes allowed-host sets. The set is recomputed on every
// call, since a user's verified domains can change between requests, so
// nothing here is cached.
type Service struct {
	cfg     *Config
	domains domain.VerifiedDomainRepo
}

// NewService creates an access-control service from the static grants
// configuration and the verified-domain repository.
func NewService(cfg *Config, domains domain.VerifiedDomainRepo) *Service {
	return &Service{cfg: cfg, domains: domains}
}

// IsAdmin reports whether the identity is on the static admin allowlist.
func (s *Service) IsAdmin(id domain.Identity) bool {
	return s.cfg.isAdmin(id.Email)
}

// ResolveAllowedHosts maps an identity to its allowed-host set.
//
// Admins get the unrestricted sentinel. Everyone else gets the union of
// their email domain, any hosts statically granted to that domain, and
// any domains they have separately verified ownership of. An identity
// with no email domain and no verified domains gets an empty set: zero
// visible hosts, which must never be conflated with unrestricted access.
func (s *Service) ResolveAllowedHosts(ctx context.Context, id domain.Identity) (domain.AllowedHosts, error) {
	if s.cfg.isAdmin(id.Email) {
		return domain.AllowedHosts{Unrestricted: true}, nil
	}

	seen := make(map[string]bool)
	var hosts []string
	add := func(h string) {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" || seen[h] {
			return
		}
		seen[h] = true
		hosts = append(hosts, h)
	}

	if dom := id.EmailDomain(); dom != "" {
		add(dom)
		for _, h := range s.cfg.DomainGrants[dom] {
			add(h)
		}
	}

	if s.domains != nil && id.Email != "" {
		verified, err := s.domains.ListVerified(ctx, id.Email)
		if err != nil {
			return domain.AllowedHosts{}, fmt.Errorf("resolve verified domains: %w", err)
		}
		for _, h := range verified {
			add(h)
		}
	}

	return domain.AllowedHosts{Hosts: hosts}, nil
}
