package memory

import (
	"time"

	"examgen-be/pkg/pipeline"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds active generation sessions. Sessions are cheap to
// rebuild from parameters, so an in-process cache with expiry is enough;
// the durable record is the generation run row.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *pipeline.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*pipeline.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*pipeline.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
