package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sayuki-dev/oshitalk/backend/internal/model/chat"
	"github.com/sayuki-dev/oshitalk/backend/internal/storage"
)

func TestHistoryEmptyForUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV())

	messages, err := store.History(ctx, "nobody")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(messages))
	}
}

func TestAddKeepsOnlyLatestMessages(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV())

	for i := 0; i < 25; i++ {
		if _, err := store.Add(ctx, "s1", chat.UserMessage(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}

	messages, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != DefaultMaxMessages {
		t.Fatalf("expected %d messages, got %d", DefaultMaxMessages, len(messages))
	}
	if messages[0].Content != "msg-5" {
		t.Errorf("oldest surviving message = %q, want msg-5", messages[0].Content)
	}
	if messages[len(messages)-1].Content != "msg-24" {
		t.Errorf("newest message = %q, want msg-24", messages[len(messages)-1].Content)
	}
}

func TestAddReturnsTruncatedSequence(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV(), WithMaxMessages(3))

	var latest []chat.Message
	var err error
	for i := 0; i < 5; i++ {
		latest, err = store.Add(ctx, "s1", chat.UserMessage(fmt.Sprintf("msg-%d", i)))
		if err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}

	if len(latest) != 3 {
		t.Fatalf("expected 3 messages back from Add, got %d", len(latest))
	}
	if latest[0].Content != "msg-2" || latest[2].Content != "msg-4" {
		t.Errorf("unexpected window: %v", latest)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV())

	if _, err := store.Add(ctx, "s1", chat.UserMessage("hello from s1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "s2", chat.UserMessage("hello from s2")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	messages, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hello from s1" {
		t.Fatalf("session s1 sees foreign messages: %v", messages)
	}
}

func TestHistoryUsesPrefixedKeys(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	store := NewStore(kv)

	if _, err := store.Add(ctx, "abc", chat.UserMessage("hi")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, ok, _ := kv.Get(ctx, "chat_abc"); !ok {
		t.Error("expected history under key chat_abc")
	}
	if _, ok, _ := kv.Get(ctx, "abc"); ok {
		t.Error("history stored under unprefixed key")
	}
}

func TestHistoryDiscardsUndecodableValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	store := NewStore(kv)

	if err := kv.Put(ctx, "chat_s1", "not json at all", 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	messages, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History should not fail on undecodable value: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history, got %v", messages)
	}

	// The session must be writable again afterwards.
	if _, err := store.Add(ctx, "s1", chat.UserMessage("fresh start")); err != nil {
		t.Fatalf("Add after corrupt value: %v", err)
	}
}

func TestRecentWindow(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV())

	for i := 0; i < 15; i++ {
		if _, err := store.Add(ctx, "s1", chat.UserMessage(fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}

	recent, err := store.Recent(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(recent))
	}
	if recent[0].Content != "msg-5" {
		t.Errorf("window start = %q, want msg-5", recent[0].Content)
	}

	// Non-positive limit falls back to the default window.
	recent, err = store.Recent(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != DefaultRecentLimit {
		t.Fatalf("expected %d messages for zero limit, got %d", DefaultRecentLimit, len(recent))
	}

	// A limit above the stored count returns everything.
	recent, err = store.Recent(ctx, "s1", 100)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 15 {
		t.Fatalf("expected all 15 messages, got %d", len(recent))
	}
}

func TestClearRemovesSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryKV())

	if _, err := store.Add(ctx, "s1", chat.UserMessage("hello")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	messages, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history after Clear, got %v", messages)
	}

	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear on empty session: %v", err)
	}
}

func TestHistoryExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	kv := storage.NewMemoryKVAt(func() time.Time { return current })
	store := NewStore(kv)

	if _, err := store.Add(ctx, "s1", chat.UserMessage("hello")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	current = current.Add(23 * time.Hour)
	messages, err := store.History(ctx, "s1")
	if err != nil || len(messages) != 1 {
		t.Fatalf("history vanished before TTL: messages=%v err=%v", messages, err)
	}

	// Every write refreshes the TTL.
	if _, err := store.Add(ctx, "s1", chat.UserMessage("still here")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	current = current.Add(23 * time.Hour)
	messages, err = store.History(ctx, "s1")
	if err != nil || len(messages) != 2 {
		t.Fatalf("refreshed history vanished early: messages=%v err=%v", messages, err)
	}

	current = current.Add(2 * time.Hour)
	messages, err = store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected expired history, got %v", messages)
	}
}

func TestStoreOverRedis(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(storage.NewRedisKVFromClient(client))

	if _, err := store.Add(ctx, "s1", chat.UserMessage("こんにちは")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "s1", chat.AssistantMessage("やっほー！")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	messages, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != chat.RoleUser || messages[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected roles: %v", messages)
	}

	if !mr.Exists("chat_s1") {
		t.Error("expected redis key chat_s1")
	}

	mr.FastForward(25 * time.Hour)
	messages, err = store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected history expired in redis, got %v", messages)
	}
}
