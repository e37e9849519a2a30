package domain

import "context"

// AnalyticsStore is the columnar event store. The core only ever touches
// it through these three primitives: two append-only inserts and a
// SQL-text query. Rows are owned by the store once written.
type AnalyticsStore interface {
	WriteRawEvent(ctx context.Context, e RawEvent) error
	WriteVisitEvent(ctx context.Context, e VisitEvent) error
	Query(ctx context.Context, sql string) ([]Row, error)
}

// VerifiedDomainRepo stores externally-attested domain ownership claims.
type VerifiedDomainRepo interface {
	ListVerified(ctx context.Context, userEmail string) ([]string, error)
	List(ctx context.Context, userEmail string) ([]VerifiedDomain, error)
	Add(ctx context.Context, userEmail, host string) (*VerifiedDomain, error)
	MarkVerified(ctx context.Context, userEmail, host string) error
}
