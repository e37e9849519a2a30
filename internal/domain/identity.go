package domain

import "strings"

// Identity is the authenticated caller of the dashboard API.
type Identity struct {
	Email string
}

// EmailDomain returns the part after "@", or "" when the identity has no
// usable email.
func (i Identity) EmailDomain() string {
	_, dom, ok := strings.Cut(i.Email, "@")
	if !ok || dom == "" {
		return ""
	}
	return strings.ToLower(dom)
}

// AllowedHosts is the set of hosts an identity may query analytics for.
//
// Unrestricted (admin) and Hosts being empty are distinct states: an
// unrestricted identity sees everything, an identity with an empty host
// set sees nothing. Callers must check Unrestricted before Hosts.
type AllowedHosts struct {
	Unrestricted bool
	Hosts        []string
}

// Contains reports whether the requested host matches the allowed set by
// substring containment in either direction. Containment can both over-
// and under-grant relative to dot-boundary suffix matching; tightening it
// is a product decision (see DESIGN.md).
func (a AllowedHosts) Contains(requested string) bool {
	if a.Unrestricted {
		return true
	}
	for _, h := range a.Hosts {
		if strings.Contains(requested, h) || strings.Contains(h, requested) {
			return true
		}
	}
	return false
}

// VerifiedDomain is a host whose ownership a user has proven out-of-band
// (DNS record or file upload; attestation happens outside this system).
type VerifiedDomain struct {
	ID        string
	UserEmail string
	Host      string
	Verified  bool
}
