package contract

import (
	"campus-assistant-be/pkg/store"
)

// SessionRepository stores active sessions for the lifetime of a chat.
// Implementations expire idle sessions on their own; callers treat a
// miss as "start over".
type SessionRepository interface {
	Save(session *store.Session)
	Get(sessionId string) (*store.Session, bool)
	Delete(sessionId string)
}
