package store

import "sync"

// ResultKind discriminates the two shapes a dispatch can produce.
type ResultKind string

const (
	ResultText   ResultKind = "text"
	ResultImages ResultKind = "images"
)

// ImageRef is a single retrieved image. Id must be unique within one result set.
type ImageRef struct {
	Id           string `json:"id"`
	URL          string `json:"url"`
	Alt          string `json:"alt"`
	Photographer string `json:"photographer,omitempty"`
	Provider     string `json:"provider"`
}

// RetrievalResult is the normalized answer shape regardless of which
// provider served it. For ResultImages, Text carries the fixed caption
// naming the search term.
type RetrievalResult struct {
	Kind   ResultKind `json:"kind"`
	Text   string     `json:"text"`
	Images []ImageRef `json:"images,omitempty"`
}

// TextResult wraps a markdown body as a RetrievalResult.
func TextResult(body string) *RetrievalResult {
	return &RetrievalResult{Kind: ResultText, Text: body}
}

// ImageResult wraps an image set plus its caption as a RetrievalResult.
func ImageResult(caption string, images []ImageRef) *RetrievalResult {
	return &RetrievalResult{Kind: ResultImages, Text: caption, Images: images}
}

// Session represents the active chat session state in memory.
// It is the single source of truth for everything the rendering
// surface displays; only the session manager mutates it.
//
// The in-memory repository hands the same pointer to every concurrent
// handler, so all reads and writes of the mutable fields must hold the
// session's own lock. The manager and the view snapshot do this.
type Session struct {
	mu sync.Mutex

	Id    string `json:"id"`
	State string `json:"state"` // "IDLE" | "LISTENING" | "DISPATCHING" | "SHOWING_RESULT"

	// Previously submitted prompts, insertion order. A prompt identical
	// to the immediately preceding entry is not appended again.
	PrevPrompts []string `json:"prev_prompts"`

	// The prompt currently being (or last) dispatched.
	RecentPrompt string `json:"recent_prompt"`

	// Text sitting in the input box, typed or voice-transcribed.
	DraftInput string `json:"draft_input"`

	Loading   bool `json:"loading"`
	Listening bool `json:"listening"`

	// The currently displayed result, nil before the first dispatch
	// and after a new-chat reset.
	Result *RetrievalResult `json:"result,omitempty"`
}

const (
	StateIdle          = "IDLE"
	StateListening     = "LISTENING"
	StateDispatching   = "DISPATCHING"
	StateShowingResult = "SHOWING_RESULT"
)

func NewSession(id string) *Session {
	return &Session{
		Id:          id,
		State:       StateIdle,
		PrevPrompts: make([]string, 0),
	}
}

// Lock takes the session's mutation lock.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session's mutation lock.
func (s *Session) Unlock() {
	s.mu.Unlock()
}
