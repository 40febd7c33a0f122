package ident

import "context"

// Resolver checks if an identifier resolves to a live web resource.
type Resolver interface {
	// Resolve normalizes the identifier, requests it and classifies the
	// outcome. Failures are reported in the Result, never as errors.
	Resolve(ctx context.Context, identifier string) Result
}
