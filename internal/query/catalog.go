// Package query holds the static catalog of named aggregation templates
// and the single place where untrusted host values are interpolated into
// SQL text.
package query

import (
	"sort"
	"strings"

	"docsight/internal/domain"
)

// Template is a named analytical query. The SQL contains exactly one
// "WHERE " keyword, which Render uses as the injection anchor for an
// optional host predicate. HostColumn names the column that predicate
// filters on (qualified where the template joins tables). Time windows
// and row limits are fixed per template, not caller-configurable.
type Template struct {
	Name       string
	HostColumn string
	SQL        string
}

// Catalog is the immutable set of allowed queries, loaded once at
// process start.
type Catalog struct {
	templates map[string]Template
	names     []string
}

// NewCatalog returns the default catalog.
func NewCatalog() *Catalog {
	return newCatalog(defaultTemplates)
}

func newCatalog(templates []Template) *Catalog {
	c := &Catalog{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		c.templates[t.Name] = t
		c.names = append(c.names, t.Name)
	}
	sort.Strings(c.names)
	return c
}

// Names returns the sorted list of valid template names.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Render returns the SQL for the named template, optionally scoped to a
// host. An unknown name is a validation error carrying the valid names.
//
// The host predicate matches the host exactly or as a dot-separated
// suffix, and is inserted immediately after the template's WHERE anchor.
// The host value is escaped by doubling single quotes; the downstream
// engine accepts only inline SQL text, so this escaping is the entire
// injection-safety contract and the only place it lives.
func (c *Catalog) Render(name, host string) (string, error) {
	t, ok := c.templates[name]
	if !ok {
		return "", &domain.ValidationError{
			Message: "invalid query " + name,
			Details: c.Names(),
		}
	}
	if host == "" {
		return t.SQL, nil
	}
	safe := EscapeString(host)
	pred := "(" + t.HostColumn + " = '" + safe + "' OR " + t.HostColumn + " LIKE '%." + safe + "') AND "
	return strings.Replace(t.SQL, "WHERE ", "WHERE "+pred, 1), nil
}

// EscapeString doubles single quotes so a value can be embedded in a SQL
// string literal without breaking out of it.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// defaultTemplates covers the dashboard's aggregate views. Windows are
// trailing; filtered traffic (bots, browsing agents, preview hosts) is
// excluded everywhere except the debugging views.
var defaultTemplates = []Template{
	{
		Name:       "default",
		HostColumn: "host",
		SQL: `SELECT host, category, agent, COUNT(*) AS visits
FROM visit_events
WHERE ts > NOW() - INTERVAL 7 DAY AND is_filtered = 0
GROUP BY host, category, agent
ORDER BY visits DESC
LIMIT 100`,
	},
	{
		Name:       "sites",
		HostColumn: "host",
		SQL: `SELECT host, category, COUNT(*) AS visits
FROM visit_events
WHERE ts > NOW() - INTERVAL 7 DAY AND is_filtered = 0
GROUP BY host, category
ORDER BY visits DESC`,
	},
	{
		Name:       "agents",
		HostColumn: "host",
		SQL: `SELECT agent, COUNT(*) AS visits
FROM visit_events
WHERE ts > NOW() - INTERVAL 7 DAY AND is_filtered = 0 AND category = 'coding-agent'
GROUP BY agent
ORDER BY visits DESC`,
	},
	{
		Name:       "all-agents",
		HostColumn: "host",
		SQL: `SELECT category, agent, COUNT(*) AS visits
FROM visit_events
WHERE ts > NOW() - INTERVAL 7 DAY AND is_filtered = 0
GROUP BY category, agent
ORDER BY visits DESC`,
	},
	{
		Name:       "pages",
		HostColumn: "host",
		SQL: `SELECT host, path, agent, COUNT(*) AS visits
FROM visit_events
WHERE ts > NOW() - INTERVAL 7 DAY AND category = 'coding-agent' AND is_filtered = 0
GROUP BY host, path, agent
ORDER BY visits DESC
LIMIT 50`,
	},
	{
		Name:       "feed",
		HostColumn: "host",
		SQL: `SELECT ts, host, path, category, agent
FROM visit_events
WHERE ts > NOW() - INTERVAL 1 DAY AND is_filtered = 0
ORDER BY ts DESC
LIMIT 50`,
	},
	{
		Name:       "raw",
		HostColumn: "host",
		SQL: `SELECT ts, event_id, host, path, user_agent, accept_header
FROM raw_events
WHERE ts > NOW() - INTERVAL 1 DAY
ORDER BY ts DESC
LIMIT 100`,
	},
	{
		Name:       "debug",
		HostColumn: "r.host",
		SQL: `SELECT r.ts, r.event_id, r.host, r.path, r.user_agent, r.accept_header, v.category, v.agent, v.is_filtered
FROM raw_events r
JOIN visit_events v ON r.event_id = v.event_id
WHERE r.ts > NOW() - INTERVAL 1 DAY
ORDER BY r.ts DESC
LIMIT 50`,
	},
}
