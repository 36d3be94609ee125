package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server) *GeminiClient {
	c := NewGeminiClient("test-key", 5*time.Second)
	c.endpoint = srv.URL
	return c
}

func TestGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("x-goog-api-key = %q", got)
		}

		var req GeminiChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Role != ChatMessageRoleUser {
			t.Errorf("request contents = %+v", req.Contents)
		}
		if req.Contents[0].Parts[0].Text != "What is dynamic programming?" {
			t.Errorf("prompt = %q", req.Contents[0].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GeminiChatResponse{
			Candidates: []*GeminiChatCandidate{
				{Content: &GeminiChatContent{
					Parts: []*GeminiChatParts{{Text: "A method of solving problems by combining subproblem solutions."}},
					Role:  ChatMessageRoleModel,
				}},
			},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv).GenerateText(context.Background(), "What is dynamic programming?")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "A method of solving problems by combining subproblem solutions."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerateTextNoCandidates(t *testing.T) {
	// A well-formed 200 with no candidates is "no answer", not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestGenerateTextNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
