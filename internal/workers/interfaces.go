// Package workers runs a set of independent jobs with bounded concurrency.
// It defines the Worker interface and a Workers aggregate that runs many
// workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any job handed to
// [Workers]. Run should return promptly once ctx is cancelled.
//
// Example implementation:
//
//	type probe struct{ url string }
//
//	func (p *probe) Run(ctx context.Context) error {
//	    // do the work
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts an ordinary function to the Worker interface.
type Func func(ctx context.Context) error

// Run calls f(ctx).
func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
