package server

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/winium-desktop/internal/desktop"
)

// Opener starts a session for an application id.
type Opener func(appID string) (*desktop.Session, error)

// sessionEntry holds an open session with the time it was last used.
type sessionEntry struct {
	session  *desktop.Session
	lastUsed time.Time
}

// SessionCache keeps one session per application id open between tool
// calls. Sessions idle for longer than ttl are closed on the next access;
// a ttl of 0 keeps sessions until Close.
type SessionCache struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	ttl     time.Duration
	open    Opener
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewSessionCache creates a cache that opens sessions with open.
func NewSessionCache(open Opener, ttl time.Duration, log logrus.FieldLogger) *SessionCache {
	return &SessionCache{
		entries: make(map[string]sessionEntry),
		ttl:     ttl,
		open:    open,
		log:     log,
		now:     time.Now,
	}
}

// Get returns the session for appID, opening it if needed.
func (c *SessionCache) Get(appID string) (*desktop.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.expireLocked(now)
	if e, ok := c.entries[appID]; ok {
		e.lastUsed = now
		c.entries[appID] = e
		return e.session, nil
	}

	s, err := c.open(appID)
	if err != nil {
		return nil, err
	}
	c.entries[appID] = sessionEntry{session: s, lastUsed: now}
	c.log.Infof("opened session %s for %s", s.ID, appID)
	return s, nil
}

// Close ends the session for appID. It reports whether one was open.
func (c *SessionCache) Close(appID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[appID]
	if !ok {
		return false, nil
	}
	delete(c.entries, appID)
	return true, e.session.Close()
}

// CloseAll ends every open session.
func (c *SessionCache) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if err := e.session.Close(); err != nil {
			c.log.Warnf("close session for %s: %v", id, err)
		}
	}
	c.entries = make(map[string]sessionEntry)
}

func (c *SessionCache) expireLocked(now time.Time) {
	if c.ttl == 0 {
		return
	}
	for id, e := range c.entries {
		if now.Sub(e.lastUsed) < c.ttl {
			continue
		}
		c.log.Infof("closing idle session for %s", id)
		if err := e.session.Close(); err != nil {
			c.log.Warnf("close session for %s: %v", id, err)
		}
		delete(c.entries, id)
	}
}
