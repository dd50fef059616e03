package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/storee/storee"
	storeejson "github.com/storee/storee/json"
)

// Interface compliance check.
var _ storee.SessionStore = (*SessionStore)(nil)

// SessionStore is a Redis-backed [storee.SessionStore].
//
// Concurrent updates to the same session are last-writer-wins, which is the
// contract the interface documents.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a session store on the given Redis client.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) CreateSession(ctx context.Context, session storee.Session) error {
	if session.ID == "" || session.Owner == "" {
		return fmt.Errorf("session id and owner are required: %w", storee.ErrValidation)
	}
	data, err := storeejson.MarshalSession(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, sessionKey(session.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists: %w", session.ID, storee.ErrValidation)
	}
	if err := s.rdb.SAdd(ctx, ownerSessionsKey(session.Owner), session.ID).Err(); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return nil
}

func (s *SessionStore) Session(ctx context.Context, id, owner string) (storee.Session, error) {
	return s.load(ctx, id, owner)
}

func (s *SessionStore) UpdateSession(ctx context.Context, id, owner string, update storee.SessionUpdate) (storee.Session, error) {
	session, err := s.load(ctx, id, owner)
	if err != nil {
		return storee.Session{}, err
	}

	if update.Turns != nil {
		session.Turns = append([]storee.Turn(nil), update.Turns...)
	}
	if update.CurrentQuestion != nil {
		session.CurrentQuestion = *update.CurrentQuestion
	}
	if update.Summary != nil {
		session.Summary = *update.Summary
	}
	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.EndedAt != nil {
		session.EndedAt = *update.EndedAt
	}
	if update.LastUpdatedAt != nil {
		session.LastUpdatedAt = *update.LastUpdatedAt
	}

	data, err := storeejson.MarshalSession(session)
	if err != nil {
		return storee.Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(id), data, 0).Err(); err != nil {
		return storee.Session{}, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Sessions(ctx context.Context, owner string) ([]storee.Session, error) {
	ids, err := s.rdb.SMembers(ctx, ownerSessionsKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	var out []storee.Session
	for _, id := range ids {
		session, err := s.load(ctx, id, owner)
		if errors.Is(err, storee.ErrNotFound) {
			// Stale index entry; skip.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id, owner string) error {
	if _, err := s.load(ctx, id, owner); err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, ownerSessionsKey(owner), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) load(ctx context.Context, id, owner string) (storee.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return storee.Session{}, notFound("session", id)
	}
	if err != nil {
		return storee.Session{}, fmt.Errorf("get session: %w", err)
	}
	session, err := storeejson.UnmarshalSession(data)
	if err != nil {
		return storee.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if session.Owner != owner {
		return storee.Session{}, notFound("session", id)
	}
	return session, nil
}
