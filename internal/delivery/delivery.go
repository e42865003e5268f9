// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a servable transport (HTTP, worker, ...) started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
