package imagesearch

import (
	"context"
	"fmt"
	"time"

	"campus-assistant-be/pkg/store"
)

// PicsumProvider manufactures placeholder image references locally. It
// performs no network call, cannot fail, and always yields exactly the
// requested count, which makes it the chain's guaranteed terminal entry.
type PicsumProvider struct {
	now func() time.Time
}

func NewPicsumProvider() *PicsumProvider {
	return &PicsumProvider{now: time.Now}
}

func (p *PicsumProvider) Name() string {
	return "lorem-picsum"
}

func (p *PicsumProvider) FetchImages(_ context.Context, term string, count int) ([]store.ImageRef, error) {
	seed := p.now().UnixMilli()
	images := make([]store.ImageRef, 0, count)
	for i := 0; i < count; i++ {
		images = append(images, store.ImageRef{
			Id:           fmt.Sprintf("%d-%d", seed, i),
			URL:          fmt.Sprintf("https://picsum.photos/400/300?random=%d-%d", seed, i),
			Alt:          fmt.Sprintf("%s - Random Image %d", term, i+1),
			Photographer: "Lorem Picsum",
			Provider:     p.Name(),
		})
	}
	return images, nil
}
