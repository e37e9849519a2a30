package store

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsight/internal/domain"
	"docsight/internal/query"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestWriteAndQueryEvents(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.WriteRawEvent(ctx, domain.RawEvent{
		EventID:      "ev-1",
		Timestamp:    ts,
		Host:         "docs.example.com",
		Path:         "/install",
		UserAgent:    "curl/8.4.0",
		AcceptHeader: "text/markdown",
		Country:      "DE",
	}))
	require.NoError(t, s.WriteVisitEvent(ctx, domain.VisitEvent{
		EventID:    "ev-1",
		Timestamp:  ts,
		Host:       "docs.example.com",
		Path:       "/install",
		Category:   domain.CategoryCodingAgent,
		Agent:      "claude-code",
		Country:    "DE",
		IsFiltered: false,
	}))

	rows, err := s.Query(ctx, "SELECT event_id, host, user_agent FROM raw_events")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ev-1", rows[0]["event_id"])
	assert.Equal(t, "docs.example.com", rows[0]["host"])
	assert.Equal(t, "curl/8.4.0", rows[0]["user_agent"])

	rows, err = s.Query(ctx, "SELECT category, agent, is_filtered FROM visit_events")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "coding-agent", rows[0]["category"])
	assert.Equal(t, "claude-code", rows[0]["agent"])
}

func TestHeaderTruncation(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	long := strings.Repeat("x", domain.MaxHeaderLen+100)
	require.NoError(t, s.WriteRawEvent(ctx, domain.RawEvent{
		EventID:      "ev-long",
		Timestamp:    time.Now(),
		Host:         "h",
		Path:         "/",
		UserAgent:    long,
		AcceptHeader: long,
		Country:      "??",
	}))

	rows, err := s.Query(ctx, "SELECT user_agent, accept_header FROM raw_events")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0]["user_agent"], domain.MaxHeaderLen)
	assert.Len(t, rows[0]["accept_header"], domain.MaxHeaderLen)
}

func TestHeaderTruncationKeepsValidUTF8(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	// The byte limit falls inside the two-byte rune at the end.
	ua := strings.Repeat("x", domain.MaxHeaderLen-1) + "é"
	require.NoError(t, s.WriteRawEvent(ctx, domain.RawEvent{
		EventID:      "ev-utf8",
		Timestamp:    time.Now(),
		Host:         "h",
		Path:         "/",
		UserAgent:    ua,
		AcceptHeader: "text/html",
		Country:      "??",
	}))

	rows, err := s.Query(ctx, "SELECT user_agent FROM raw_events WHERE event_id = 'ev-utf8'")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got, ok := rows[0]["user_agent"].(string)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", domain.MaxHeaderLen-1), got)
}

func TestTimestampsNormalizedToRFC3339(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ts := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.WriteRawEvent(ctx, domain.RawEvent{
		EventID: "ev-ts", Timestamp: ts, Host: "h", Path: "/", UserAgent: "ua", AcceptHeader: "a", Country: "c",
	}))

	rows, err := s.Query(ctx, "SELECT ts FROM raw_events")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got, ok := rows[0]["ts"].(string)
	require.True(t, ok, "timestamps should come back as strings, got %T", rows[0]["ts"])
	parsed, err := time.Parse(time.RFC3339Nano, got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

// Every catalog template must be valid DuckDB SQL against the real
// schema, both bare and host-scoped.
func TestCatalogTemplatesExecute(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	catalog := query.NewCatalog()

	require.NoError(t, s.WriteRawEvent(ctx, domain.RawEvent{
		EventID: "ev-1", Timestamp: time.Now(), Host: "docs.example.com", Path: "/", UserAgent: "ua", AcceptHeader: "text/html", Country: "DE",
	}))
	require.NoError(t, s.WriteVisitEvent(ctx, domain.VisitEvent{
		EventID: "ev-1", Timestamp: time.Now(), Host: "docs.example.com", Path: "/", Category: domain.CategoryHuman, Agent: "browser", Country: "DE",
	}))

	for _, name := range catalog.Names() {
		for _, host := range []string{"", "docs.example.com"} {
			sqlText, err := catalog.Render(name, host)
			require.NoError(t, err, "render %s host=%q", name, host)
			_, err = s.Query(ctx, sqlText)
			require.NoError(t, err, "execute %s host=%q:\n%s", name, host, sqlText)
		}
	}
}

func TestQueryEmptyResult(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rows, err := s.Query(ctx, "SELECT * FROM visit_events")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
