package redisrepo

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"campus-assistant-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 1 * time.Hour

// SessionRepository keeps sessions in Redis so a multi-instance
// deployment can route requests for one session to any instance.
//
// Each Get unmarshals a fresh Session, so the in-process session lock
// only covers one handler's copy: two instances (or two handlers on one
// instance) saving the same session interleave as last-write-wins. Good
// enough for a UI session; serializing across instances would need a
// Redis-side lock or CAS.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func key(sessionId string) string {
	return "chat:session:" + sessionId
}

func (r *SessionRepository) Save(session *store.Session) {
	session.Lock()
	data, err := json.Marshal(session)
	session.Unlock()
	if err != nil {
		log.Printf("[ERROR] Failed to marshal session %s: %v", session.Id, err)
		return
	}
	if err := r.rdb.Set(context.Background(), key(session.Id), data, sessionTTL).Err(); err != nil {
		log.Printf("[ERROR] Failed to save session %s to redis: %v", session.Id, err)
	}
}

func (r *SessionRepository) Get(sessionId string) (*store.Session, bool) {
	data, err := r.rdb.Get(context.Background(), key(sessionId)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[ERROR] Failed to read session %s from redis: %v", sessionId, err)
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session %s: %v", sessionId, err)
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionId string) {
	if err := r.rdb.Del(context.Background(), key(sessionId)).Err(); err != nil {
		log.Printf("[ERROR] Failed to delete session %s from redis: %v", sessionId, err)
	}
}
