// Package repository implements metastore persistence for the
// analytics service.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docsight/internal/domain"
)

// VerifiedDomainRepo stores per-user domain ownership claims in the
// SQLite metastore. A claim only contributes to access control once its
// verified_at timestamp is set.
type VerifiedDomainRepo struct {
	db *sql.DB
}

// NewVerifiedDomainRepo creates a repo over the given pool.
func NewVerifiedDomainRepo(db *sql.DB) *VerifiedDomainRepo {
	return &VerifiedDomainRepo{db: db}
}

// ListVerified returns the hosts the user has proven ownership of.
func (r *VerifiedDomainRepo) ListVerified(ctx context.Context, userEmail string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT host FROM verified_domains
		 WHERE user_email = ? AND verified_at IS NOT NULL
		 ORDER BY host`,
		normalizeEmail(userEmail),
	)
	if err != nil {
		return nil, fmt.Errorf("list verified domains: %w", err)
	}
	defer rows.Close()

	var hosts []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

// List returns all of the user's claims, verified or not.
func (r *VerifiedDomainRepo) List(ctx context.Context, userEmail string) ([]domain.VerifiedDomain, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_email, host, verified_at FROM verified_domains
		 WHERE user_email = ?
		 ORDER BY host`,
		normalizeEmail(userEmail),
	)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	defer rows.Close()

	var out []domain.VerifiedDomain
	for rows.Next() {
		var d domain.VerifiedDomain
		var verifiedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.UserEmail, &d.Host, &verifiedAt); err != nil {
			return nil, err
		}
		d.Verified = verifiedAt.Valid
		out = append(out, d)
	}
	return out, rows.Err()
}

// Add records a new, unverified ownership claim.
func (r *VerifiedDomainRepo) Add(ctx context.Context, userEmail, host string) (*domain.VerifiedDomain, error) {
	email := normalizeEmail(userEmail)
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return nil, domain.ErrValidation("host is required")
	}

	d := &domain.VerifiedDomain{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserEmail: email,
		Host:      host,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verified_domains (id, user_email, host) VALUES (?, ?, ?)`,
		d.ID, d.UserEmail, d.Host,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, domain.ErrValidation("domain %q already claimed", host)
		}
		return nil, fmt.Errorf("add domain: %w", err)
	}
	return d, nil
}

// MarkVerified sets the attestation timestamp on an existing claim.
// The attestation itself (DNS record, file upload) happens outside this
// system.
func (r *VerifiedDomainRepo) MarkVerified(ctx context.Context, userEmail, host string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE verified_domains SET verified_at = ?
		 WHERE user_email = ? AND host = ?`,
		time.Now().UTC(), normalizeEmail(userEmail), strings.ToLower(strings.TrimSpace(host)),
	)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("no domain claim %q for %s", host, userEmail)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
