package service

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cachedSession is the validated-session view kept in memory so that hot
// token checks skip the store. Entries are short-lived; any username
// rename or user delete flushes the whole cache since entries are keyed
// by token, not by owner.
type cachedSession struct {
	Username  string
	ExpiresAt time.Time
}

type SessionCache struct {
	c *gocache.Cache
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SessionCache{
		c: gocache.New(ttl, 5*time.Minute),
	}
}

func (s *SessionCache) Get(token string) (cachedSession, bool) {
	v, ok := s.c.Get(token)
	if !ok {
		return cachedSession{}, false
	}
	return v.(cachedSession), true
}

func (s *SessionCache) Set(token string, cs cachedSession) {
	s.c.SetDefault(token, cs)
}

func (s *SessionCache) Delete(token string) {
	s.c.Delete(token)
}

func (s *SessionCache) Flush() {
	s.c.Flush()
}
