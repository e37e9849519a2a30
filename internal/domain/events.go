package domain

import "time"

// VisitorCategory classifies who (or what) made a request.
type VisitorCategory string

const (
	CategoryBot           VisitorCategory = "bot"
	CategoryBrowsingAgent VisitorCategory = "browsing-agent"
	CategoryCodingAgent   VisitorCategory = "coding-agent"
	CategoryHuman         VisitorCategory = "human"
)

// Agent names used when no specific signature matched.
const (
	AgentUnknownCodingAgent = "unknown-coding-agent"
	AgentUnknownBot         = "unknown-bot"
	AgentBrowser            = "browser"
)

// MaxHeaderLen caps the stored user-agent and accept-header values.
const MaxHeaderLen = 500

// Classification is the classifier's output. It is never persisted
// directly, only via a VisitEvent.
type Classification struct {
	Category VisitorCategory
	Agent    string
	Filtered bool
}

// RawEvent is the immutable record of a qualifying request, kept verbatim
// for later re-analysis. Written once, never mutated.
type RawEvent struct {
	EventID      string
	Timestamp    time.Time
	Host         string
	Path         string
	UserAgent    string
	AcceptHeader string
	Country      string
}

// VisitEvent is the derived, filterable record. Exactly one exists per
// RawEvent, sharing its EventID so the two can be joined.
type VisitEvent struct {
	EventID    string
	Timestamp  time.Time
	Host       string
	Path       string
	Category   VisitorCategory
	Agent      string
	Country    string
	IsFiltered bool
}

// Row is a single analytics result row, keyed by output column name.
type Row map[string]any
