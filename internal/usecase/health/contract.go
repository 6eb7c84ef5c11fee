package health

import "context"

// StorePinger checks cursor store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// BackendPinger checks search backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}
