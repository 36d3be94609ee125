package imagesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPexelsFetchImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "pexels-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "mountains" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[
			{"id":7,"src":{"medium":"https://images.example/7-medium.jpg"},"alt":"snowy peak","photographer":"carol"}
		]}`))
	}))
	defer srv.Close()

	p := NewPexelsProvider("pexels-key", 5*time.Second)
	p.baseURL = srv.URL

	images, err := p.FetchImages(context.Background(), "mountains", 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	got := images[0]
	if got.Id != "7" || got.URL != "https://images.example/7-medium.jpg" {
		t.Errorf("images[0] = %+v", got)
	}
	if got.Alt != "snowy peak" || got.Photographer != "carol" || got.Provider != "pexels" {
		t.Errorf("images[0] = %+v", got)
	}
}
