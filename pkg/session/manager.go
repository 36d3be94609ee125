package session

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"campus-assistant-be/pkg/capture"
	"campus-assistant-be/pkg/store"
)

var (
	// ErrBlankQuery rejects an empty or whitespace-only submit.
	ErrBlankQuery = errors.New("query is blank")

	// ErrDispatchInFlight rejects a submit while one is already running.
	ErrDispatchInFlight = errors.New("a dispatch is already in flight")

	// ErrNotIdle rejects a capture start outside the idle state.
	ErrNotIdle = errors.New("session is not idle")

	// ErrNotListening rejects a capture event without a capture run.
	ErrNotListening = errors.New("session is not listening")
)

// Manager owns every session state transition. Nothing else mutates a
// Session, which keeps the single-writer discipline the dispatch flow
// depends on. Every method takes the session's lock, so the state guard
// and the writes behind it are one atomic step even when concurrent
// handlers hold the same session pointer.
type Manager struct {
	logger *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// StartListening moves Idle|ShowingResult -> Listening and clears the
// displayed result so the surface shows the listening prompt instead of
// a stale answer. Only an in-flight dispatch or capture blocks the mic.
func (m *Manager) StartListening(s *store.Session) error {
	s.Lock()
	defer s.Unlock()

	if s.State != store.StateIdle && s.State != store.StateShowingResult {
		return ErrNotIdle
	}
	s.State = store.StateListening
	s.Listening = true
	s.Result = nil
	m.logger.Printf("[STATE] %s: transitioned to LISTENING", s.Id)
	return nil
}

// FinishListening moves Listening -> Idle on the device's terminal
// event. A transcript lands in the draft input; a device error becomes a
// displayable text result; a cancellation leaves the draft untouched.
func (m *Manager) FinishListening(s *store.Session, ev capture.Event) error {
	s.Lock()
	defer s.Unlock()

	if s.State != store.StateListening {
		return ErrNotListening
	}
	s.Listening = false
	s.State = store.StateIdle

	switch ev.Kind {
	case capture.EventTranscript:
		s.DraftInput = ev.Transcript
		m.logger.Printf("[STATE] %s: capture finished, transcript length %d", s.Id, len(ev.Transcript))
	case capture.EventError:
		s.Result = store.TextResult(fmt.Sprintf("Mic Error: %s. Please ensure your microphone is enabled.", ev.ErrorCode))
		m.logger.Printf("[STATE] %s: capture failed with code %s", s.Id, ev.ErrorCode)
	case capture.EventCancelled:
		m.logger.Printf("[STATE] %s: capture cancelled", s.Id)
	}
	return nil
}

// SetDraft updates the input box text.
func (m *Manager) SetDraft(s *store.Session, text string) {
	s.Lock()
	defer s.Unlock()
	s.DraftInput = text
}

// BeginDispatch moves Idle|ShowingResult -> Dispatching for a non-blank
// prompt. The prompt is appended to history unless it repeats the
// immediately preceding entry, the draft and previous result are
// cleared, and the loading flag is raised.
func (m *Manager) BeginDispatch(s *store.Session, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrBlankQuery
	}

	s.Lock()
	defer s.Unlock()

	if s.State == store.StateDispatching || s.State == store.StateListening {
		return ErrDispatchInFlight
	}

	if n := len(s.PrevPrompts); n == 0 || s.PrevPrompts[n-1] != prompt {
		s.PrevPrompts = append(s.PrevPrompts, prompt)
	}
	s.RecentPrompt = prompt
	s.DraftInput = ""
	s.Result = nil
	s.Loading = true
	s.State = store.StateDispatching
	m.logger.Printf("[STATE] %s: transitioned to DISPATCHING (history size %d)", s.Id, len(s.PrevPrompts))
	return nil
}

// CompleteDispatch moves Dispatching -> ShowingResult. Handled failures
// arrive here too, already shaped as a displayable text result.
func (m *Manager) CompleteDispatch(s *store.Session, result *store.RetrievalResult) {
	s.Lock()
	defer s.Unlock()

	s.Loading = false
	s.Result = result
	s.State = store.StateShowingResult
	m.logger.Printf("[STATE] %s: transitioned to SHOWING_RESULT (%s)", s.Id, result.Kind)
}

// ShowNotice swaps the displayed result for a fixed text message
// without a state transition. Used for recovered local errors such as a
// blank submit.
func (m *Manager) ShowNotice(s *store.Session, text string) {
	s.Lock()
	defer s.Unlock()
	s.Result = store.TextResult(text)
}

// ShowCanned serves a card-shortcut answer: the result is replaced and
// the draft cleared, but no history entry and no loading phase.
func (m *Manager) ShowCanned(s *store.Session, body string) {
	s.Lock()
	defer s.Unlock()

	s.DraftInput = ""
	s.Loading = false
	s.Result = store.TextResult(body)
	s.State = store.StateShowingResult
	m.logger.Printf("[STATE] %s: showing canned answer", s.Id)
}

// NewChat performs the explicit full reset from any state. Prompt
// history deliberately survives the reset.
func (m *Manager) NewChat(s *store.Session) {
	s.Lock()
	defer s.Unlock()

	s.Loading = false
	s.Listening = false
	s.Result = nil
	s.DraftInput = ""
	s.RecentPrompt = ""
	s.State = store.StateIdle
	m.logger.Printf("[STATE] %s: reset to IDLE", s.Id)
}
