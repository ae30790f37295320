// Package delivery defines the transport-agnostic server contract.
package delivery

import "context"

// Delivery is a long-running transport surface (HTTP server, worker, ...).
type Delivery interface {
	// Serve blocks until the surface stops or the context is canceled.
	Serve(ctx context.Context) error
}
