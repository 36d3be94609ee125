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

const pexelsBaseURL = "https://api.pexels.com/v1/search"

// PexelsProvider searches the Pexels photo API. It sits behind Pixabay
// in the default chain and is only registered when an API key is set.
type PexelsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewPexelsProvider(apiKey string, timeout time.Duration) *PexelsProvider {
	return &PexelsProvider{
		apiKey:  apiKey,
		baseURL: pexelsBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *PexelsProvider) Name() string {
	return "pexels"
}

func (p *PexelsProvider) FetchImages(ctx context.Context, term string, count int) ([]store.ImageRef, error) {
	params := url.Values{}
	params.Add("query", term)
	params.Add("per_page", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

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
		Photos []struct {
			Id  int `json:"id"`
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
			Alt          string `json:"alt"`
			Photographer string `json:"photographer"`
		} `json:"photos"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	images := make([]store.ImageRef, 0, len(result.Photos))
	for _, photo := range result.Photos {
		alt := photo.Alt
		if alt == "" {
			alt = term
		}
		images = append(images, store.ImageRef{
			Id:           strconv.Itoa(photo.Id),
			URL:          photo.Src.Medium,
			Alt:          alt,
			Photographer: photo.Photographer,
			Provider:     p.Name(),
		})
	}
	return images, nil
}
