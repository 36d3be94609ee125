package imagesearch

import (
	"context"
	"log"

	"campus-assistant-be/pkg/store"
)

// Resolver walks an ordered provider chain and accepts the first
// non-empty result set. Partial results are never merged across
// providers, and provider failures are absorbed here: a failed call is
// logged and treated as an empty result so the chain keeps moving.
type Resolver struct {
	providers []Provider
	logger    *log.Logger
}

// NewResolver creates a resolver over the given priority order. The
// caller is expected to place a local generator last so the chain always
// terminates with a non-empty set.
func NewResolver(providers []Provider, logger *log.Logger) *Resolver {
	return &Resolver{
		providers: providers,
		logger:    logger,
	}
}

// Resolve returns the first provider's non-empty result untouched. It
// never returns an error; with a local generator as the final provider
// the result is never empty either.
func (r *Resolver) Resolve(ctx context.Context, term string, count int) []store.ImageRef {
	for _, provider := range r.providers {
		images, err := provider.FetchImages(ctx, term, count)
		if err != nil {
			r.logger.Printf("[RESOLVER] Provider %s failed for term %q: %v", provider.Name(), term, err)
			continue
		}
		if len(images) == 0 {
			r.logger.Printf("[RESOLVER] Provider %s returned no images for term %q", provider.Name(), term)
			continue
		}
		r.logger.Printf("[RESOLVER] Provider %s served %d images for term %q", provider.Name(), len(images), term)
		return images
	}
	return nil
}
