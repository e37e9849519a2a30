// Package events turns a classification plus request context into the
// dual event write: one immutable raw event and one derived visit event
// sharing a freshly generated event id.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"docsight/internal/domain"
)

// writeTimeout bounds each event write. The request path never waits
// longer than this on the store.
const writeTimeout = 2 * time.Second

// Request is the request context an event is recorded from. Absent
// fields have already been defaulted by the caller.
type Request struct {
	Host         string
	Path         string
	UserAgent    string
	AcceptHeader string
	Country      string
}

// Writer emits paired raw/visit events to the analytics store.
type Writer struct {
	store  domain.AnalyticsStore
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter creates a Writer over the given store.
func NewWriter(store domain.AnalyticsStore, logger *slog.Logger) *Writer {
	return &Writer{
		store:  store,
		logger: logger.With("component", "event-writer"),
		now:    time.Now,
	}
}

// Record writes one RawEvent and one VisitEvent sharing the same event
// id. A dropped analytics event is an accepted loss: write failures are
// logged and swallowed, never surfaced to the request path.
func (w *Writer) Record(ctx context.Context, req Request, class domain.Classification) {
	eventID := NewEventID()
	ts := w.now().UTC()

	// Detach from the request's cancellation so an already-answered
	// request cannot abort the write mid-flight; the timeout still
	// bounds it.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	raw := domain.RawEvent{
		EventID:      eventID,
		Timestamp:    ts,
		Host:         req.Host,
		Path:         req.Path,
		UserAgent:    req.UserAgent,
		AcceptHeader: req.AcceptHeader,
		Country:      req.Country,
	}
	if err := w.store.WriteRawEvent(wctx, raw); err != nil {
		w.logger.Warn("raw event write failed", "event_id", eventID, "error", err)
		return
	}

	visit := domain.VisitEvent{
		EventID:    eventID,
		Timestamp:  ts,
		Host:       req.Host,
		Path:       req.Path,
		Category:   class.Category,
		Agent:      class.Agent,
		Country:    req.Country,
		IsFiltered: class.Filtered,
	}
	if err := w.store.WriteVisitEvent(wctx, visit); err != nil {
		w.logger.Warn("visit event write failed", "event_id", eventID, "error", err)
	}
}

// NewEventID generates a collision-resistant event id: millisecond
// timestamp plus a random suffix. No global counter, no coordination.
func NewEventID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
