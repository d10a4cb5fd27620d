// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport server started by the application root.
type Delivery interface {
	Serve(ctx context.Context) error
}
