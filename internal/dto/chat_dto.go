package dto

import (
	"campus-assistant-be/pkg/store"
)

type CreateSessionResponse struct {
	Id string `json:"id"`
}

// SessionView is everything the rendering surface needs to draw one
// session: state, flags, history, and the current result.
type SessionView struct {
	Id           string                 `json:"id"`
	State        string                 `json:"state"`
	PrevPrompts  []string               `json:"prev_prompts"`
	RecentPrompt string                 `json:"recent_prompt"`
	DraftInput   string                 `json:"draft_input"`
	Loading      bool                   `json:"loading"`
	Listening    bool                   `json:"listening"`
	Result       *store.RetrievalResult `json:"result,omitempty"`
}

// NewSessionView snapshots a session for transport. It takes the
// session lock so a concurrent dispatch cannot be observed mid-write,
// and copies the history slice so the view stays stable once handed to
// the JSON encoder.
func NewSessionView(s *store.Session) *SessionView {
	s.Lock()
	defer s.Unlock()

	prompts := make([]string, len(s.PrevPrompts))
	copy(prompts, s.PrevPrompts)
	return &SessionView{
		Id:           s.Id,
		State:        s.State,
		PrevPrompts:  prompts,
		RecentPrompt: s.RecentPrompt,
		DraftInput:   s.DraftInput,
		Loading:      s.Loading,
		Listening:    s.Listening,
		Result:       s.Result,
	}
}

type SendQueryRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Prompt    string `json:"prompt"`
}

type SendCardRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Card      string `json:"card" validate:"required"`
}

type UpdateDraftRequest struct {
	Draft string `json:"draft"`
}

type VoiceStartRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

// VoiceResultRequest carries the capture device's terminal event back to
// the server. Exactly one of transcript / error_code / cancelled applies.
type VoiceResultRequest struct {
	SessionId  string `json:"session_id" validate:"required"`
	Transcript string `json:"transcript"`
	ErrorCode  string `json:"error_code"`
	Cancelled  bool   `json:"cancelled"`
}

type NewChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

// SessionEventMessage is the watermill payload linking a session
// mutation to the WebSocket push that follows it.
type SessionEventMessage struct {
	SessionId string `json:"session_id"`
}
