// Package history persists the bounded, expiring per-session conversation
// log on top of a key-value backend.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sayuki-dev/oshitalk/backend/internal/model/chat"
	"github.com/sayuki-dev/oshitalk/backend/internal/storage"
)

const (
	// keyPrefix is fixed: it governs history continuity across deploys.
	keyPrefix = "chat_"

	DefaultMaxMessages = 20
	DefaultTTL         = 24 * time.Hour
	DefaultRecentLimit = 10
)

// Store manages session message logs. Sessions never share keys, so
// unrelated sessions never contend. Add serializes its read-modify-write
// per session within this process; concurrent writers in other processes can
// still lose an update, an accepted risk for a single-user-per-session
// workload.
type Store struct {
	kv          storage.KV
	maxMessages int
	ttl         time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option adjusts store defaults.
type Option func(*Store)

// WithMaxMessages caps the number of stored messages per session.
func WithMaxMessages(n int) Option {
	return func(s *Store) { s.maxMessages = n }
}

// WithTTL sets the expiry applied on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewStore returns a history store over the given backend.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:          kv,
		maxMessages: DefaultMaxMessages,
		ttl:         DefaultTTL,
		locks:       make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *Store) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// History returns the stored messages for a session. An absent key or an
// undecodable value yields an empty history so the chat stays usable; only
// backend failures are propagated.
func (s *Store) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	raw, ok, err := s.kv.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load history for session %s: %w", sessionID, err)
	}
	if !ok {
		return []chat.Message{}, nil
	}

	var messages []chat.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		log.Printf("[history] discarding undecodable history for session=%s: %v", sessionID, err)
		return []chat.Message{}, nil
	}
	return messages, nil
}

// Save truncates messages to the configured maximum (dropping oldest first)
// and overwrites the session entry with a fresh TTL.
func (s *Store) Save(ctx context.Context, sessionID string, messages []chat.Message) error {
	if len(messages) > s.maxMessages {
		messages = messages[len(messages)-s.maxMessages:]
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode history for session %s: %w", sessionID, err)
	}

	if err := s.kv.Put(ctx, sessionKey(sessionID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("failed to save history for session %s: %w", sessionID, err)
	}
	return nil
}

// Add appends a message to the session log and returns the stored, already
// truncated sequence.
func (s *Store) Add(ctx context.Context, sessionID string, message chat.Message) ([]chat.Message, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	messages, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages = append(messages, message)
	if len(messages) > s.maxMessages {
		messages = messages[len(messages)-s.maxMessages:]
	}

	if err := s.Save(ctx, sessionID, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Recent returns the last limit messages, independent of the storage cap.
// A non-positive limit falls back to the default window.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	messages, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

// Clear removes the session log.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear history for session %s: %w", sessionID, err)
	}
	return nil
}
