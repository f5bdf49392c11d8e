// Package delivery defines the contract every transport entry point
// (HTTP today, others later) must satisfy.
package delivery

import "context"

// Delivery is a long-running transport serving the storefront.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
