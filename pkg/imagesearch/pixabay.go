package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"campus-assistant-be/pkg/store"
)

const pixabayBaseURL = "https://pixabay.com/api/"

// PixabayProvider searches the Pixabay photo API.
type PixabayProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPixabayProvider(apiKey string, timeout time.Duration) *PixabayProvider {
	return &PixabayProvider{
		apiKey:  apiKey,
		baseURL: pixabayBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *PixabayProvider) Name() string {
	return "pixabay"
}

func (p *PixabayProvider) FetchImages(ctx context.Context, term string, count int) ([]store.ImageRef, error) {
	params := url.Values{}
	params.Add("key", p.apiKey)
	params.Add("q", term)
	params.Add("image_type", "photo")
	params.Add("orientation", "all")
	params.Add("category", "all")
	params.Add("min_width", "300")
	params.Add("min_height", "200")
	params.Add("per_page", strconv.Itoa(count))
	params.Add("safesearch", "true")

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(body),
		)
	}

	var result struct {
		Hits []struct {
			Id           int    `json:"id"`
			WebformatURL string `json:"webformatURL"`
			Tags         string `json:"tags"`
			User         string `json:"user"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	images := make([]store.ImageRef, 0, len(result.Hits))
	for _, hit := range result.Hits {
		alt := hit.Tags
		if alt == "" {
			alt = term
		}
		images = append(images, store.ImageRef{
			Id:           strconv.Itoa(hit.Id),
			URL:          hit.WebformatURL,
			Alt:          alt,
			Photographer: hit.User,
			Provider:     p.Name(),
		})
	}
	return images, nil
}
