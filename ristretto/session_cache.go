// Package ristretto provides a read-through cache decorator for session
// stores, backed by github.com/dgraph-io/ristretto. It sits in front of a
// slower store (Redis, disk) so repeated reads of the same interview session
// during a conversation stay cheap.
package ristretto

import (
	"context"

	"github.com/dgraph-io/ristretto"
	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.SessionStore = (*SessionCache)(nil)

// SessionCache decorates a [storee.SessionStore] with an in-process cache.
// Writes go straight to the underlying store and invalidate the cached entry;
// reads are served from cache when possible. Listing is never cached.
type SessionCache struct {
	store storee.SessionStore
	cache *ristretto.Cache
}

// NewSessionCache wraps store with a cache sized for maxSessions entries.
func NewSessionCache(store storee.SessionStore, maxSessions int64) (*SessionCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxSessions * 10,
		MaxCost:     maxSessions,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &SessionCache{store: store, cache: cache}, nil
}

func cacheKey(id, owner string) string {
	return owner + "/" + id
}

func (c *SessionCache) CreateSession(ctx context.Context, session storee.Session) error {
	return c.store.CreateSession(ctx, session)
}

func (c *SessionCache) Session(ctx context.Context, id, owner string) (storee.Session, error) {
	if v, ok := c.cache.Get(cacheKey(id, owner)); ok {
		if session, ok := v.(storee.Session); ok {
			return cloneSession(session), nil
		}
	}
	session, err := c.store.Session(ctx, id, owner)
	if err != nil {
		return storee.Session{}, err
	}
	c.cache.Set(cacheKey(id, owner), cloneSession(session), 1)
	return session, nil
}

func (c *SessionCache) UpdateSession(ctx context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error) {
	session, err := c.store.UpdateSession(ctx, id, owner, update)
	if err != nil {
		return storee.Session{}, err
	}
	c.cache.Set(cacheKey(id, owner), cloneSession(session), 1)
	return session, nil
}

func (c *SessionCache) Sessions(ctx context.Context, owner string) ([]storee.Session, error) {
	return c.store.Sessions(ctx, owner)
}

func (c *SessionCache) DeleteSession(ctx context.Context, id, owner string) error {
	if err := c.store.DeleteSession(ctx, id, owner); err != nil {
		return err
	}
	c.cache.Del(cacheKey(id, owner))
	return nil
}

// Wait blocks until buffered cache writes are applied. Exported for tests;
// ristretto applies Set asynchronously.
func (c *SessionCache) Wait() {
	c.cache.Wait()
}

func cloneSession(s storee.Session) storee.Session {
	s.Turns = append([]storee.Turn(nil), s.Turns...)
	return s
}
