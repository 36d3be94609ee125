package imagesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPixabayFetchImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q", q.Get("key"))
		}
		if q.Get("q") != "cats" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("per_page") != "3" {
			t.Errorf("per_page = %q", q.Get("per_page"))
		}
		if q.Get("safesearch") != "true" {
			t.Errorf("safesearch = %q", q.Get("safesearch"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":[
			{"id":101,"webformatURL":"https://cdn.example/101.jpg","tags":"cat, pet","user":"alice"},
			{"id":102,"webformatURL":"https://cdn.example/102.jpg","tags":"","user":"bob"}
		]}`))
	}))
	defer srv.Close()

	p := NewPixabayProvider("test-key", 5*time.Second)
	p.baseURL = srv.URL

	images, err := p.FetchImages(context.Background(), "cats", 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}

	if images[0].Id != "101" || images[0].URL != "https://cdn.example/101.jpg" {
		t.Errorf("images[0] = %+v", images[0])
	}
	if images[0].Alt != "cat, pet" || images[0].Photographer != "alice" {
		t.Errorf("images[0] = %+v", images[0])
	}
	if images[0].Provider != "pixabay" {
		t.Errorf("provider = %q", images[0].Provider)
	}
	// Blank tags fall back to the search term.
	if images[1].Alt != "cats" {
		t.Errorf("images[1].Alt = %q, want term fallback", images[1].Alt)
	}
}

func TestPixabayNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	p := NewPixabayProvider("test-key", 5*time.Second)
	p.baseURL = srv.URL

	if _, err := p.FetchImages(context.Background(), "cats", 3); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
