package health

import "context"

// DBPinger checks creation-log database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CompletionChecker checks completion backend availability.
type CompletionChecker interface {
	HealthCheck(ctx context.Context) error
}
