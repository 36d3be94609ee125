package imagesearch

import (
	"context"

	"campus-assistant-be/pkg/store"
)

// Provider defines the contract for any image source. Implementations
// must fail independently: a transport or schema error is returned as an
// error here and absorbed by the resolver, never propagated past it.
type Provider interface {
	// Name returns the provider tag stamped onto each ImageRef.
	Name() string

	// FetchImages returns up to count images for the term. An empty
	// slice is a valid outcome, not an error.
	FetchImages(ctx context.Context, term string, count int) ([]store.ImageRef, error)
}
