package memory

import (
	"strconv"
	"sync"
	"time"

	"order-intake-bot/internal/model"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps in-progress order sessions in memory only.
// Losing them on restart is intentional; an abandoned conversation falls
// out of the cache after the TTL.
type SessionRepository struct {
	cache *cache.Cache
	locks sync.Map // userID -> *sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Sessions for a single order should never live this long; the TTL
	// only reaps conversations the user walked away from.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

// Lock acquires the exclusive per-user lock and returns its release
// function. Events for the same user are handled one at a time; different
// users proceed concurrently.
func (r *SessionRepository) Lock(userID int64) func() {
	mu, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (r *SessionRepository) Save(session *model.Session) {
	r.cache.Set(key(session.UserID), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID int64) (*model.Session, bool) {
	if x, found := r.cache.Get(key(userID)); found {
		return x.(*model.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID int64) {
	r.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
