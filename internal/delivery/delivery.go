// Package delivery defines the contract every transport entry point fulfills.
package delivery

import "context"

// Delivery is a long-running server started by the application runner.
// Serve blocks until the server stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
