// Package gateway orchestrates access control and the query catalog:
// it turns an identity plus a named template into one or more scoped
// queries and merges their results.
package gateway

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"docsight/internal/access"
	"docsight/internal/domain"
	"docsight/internal/query"
)

// Gateway executes catalog templates on behalf of authenticated users.
type Gateway struct {
	access  *access.Service
	catalog *query.Catalog
	store   domain.AnalyticsStore
	logger  *slog.Logger
}

// New creates a Gateway. store may be nil when the analytics engine is
// not configured; queries then fail with an UnavailableError.
func New(accessSvc *access.Service, catalog *query.Catalog, store domain.AnalyticsStore, logger *slog.Logger) *Gateway {
	return &Gateway{
		access:  accessSvc,
		catalog: catalog,
		store:   store,
		logger:  logger.With("component", "query-gateway"),
	}
}

// Query resolves the identity's allowed hosts, renders the template once
// per relevant host, executes the renderings concurrently, and
// concatenates the rows. Row order across hosts is not defined.
//
// A requested host outside the allowed set yields an empty result, not
// an error; errors would let callers probe which hosts exist.
func (g *Gateway) Query(ctx context.Context, id domain.Identity, templateName, requestedHost string) ([]domain.Row, error) {
	if g.store == nil {
		return nil, domain.ErrUnavailable("analytics store is not configured")
	}

	// Validate the template before touching access control so unknown
	// names fail the same way for everyone.
	if _, err := g.catalog.Render(templateName, ""); err != nil {
		return nil, err
	}

	allowed, err := g.access.ResolveAllowedHosts(ctx, id)
	if err != nil {
		return nil, err
	}

	if allowed.Unrestricted {
		sql, err := g.catalog.Render(templateName, requestedHost)
		if err != nil {
			return nil, err
		}
		rows, err := g.store.Query(ctx, sql)
		if err != nil {
			return nil, err
		}
		return nonNil(rows), nil
	}

	if len(allowed.Hosts) == 0 {
		return []domain.Row{}, nil
	}

	targets := allowed.Hosts
	if requestedHost != "" {
		if !allowed.Contains(requestedHost) {
			g.logger.Debug("requested host outside allowed set", "user", id.Email, "host", requestedHost)
			return []domain.Row{}, nil
		}
		targets = []string{requestedHost}
	}

	// Fan out one query per host. Results are collected per slot so the
	// merge needs no locking; callers must treat the concatenation as
	// unordered.
	results := make([][]domain.Row, len(targets))
	grp, gctx := errgroup.WithContext(ctx)
	for i, host := range targets {
		grp.Go(func() error {
			sql, err := g.catalog.Render(templateName, host)
			if err != nil {
				return err
			}
			rows, err := g.store.Query(gctx, sql)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	merged := []domain.Row{}
	for _, rows := range results {
		merged = append(merged, rows...)
	}
	return merged, nil
}

func nonNil(rows []domain.Row) []domain.Row {
	if rows == nil {
		return []domain.Row{}
	}
	return rows
}
