package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatmodel "github.com/sayuki-dev/oshitalk/backend/internal/model/chat"
	"github.com/sayuki-dev/oshitalk/backend/internal/model/persona"
	"github.com/sayuki-dev/oshitalk/backend/internal/service/history"
	promptservice "github.com/sayuki-dev/oshitalk/backend/internal/service/prompt"
	"github.com/sayuki-dev/oshitalk/backend/internal/storage"
)

type fakeGenerator struct {
	reply string
	err   error

	gotSystem  string
	gotHistory []chatmodel.Message
	gotQuery   string
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt string, historyMessages []chatmodel.Message, userMessage string) (string, error) {
	f.gotSystem = systemPrompt
	f.gotHistory = historyMessages
	f.gotQuery = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestRouter(generator Generator) (http.Handler, *history.Store) {
	store := history.NewStore(storage.NewMemoryKV())
	composer := promptservice.NewComposer(persona.NewRegistry(persona.Seed()))
	h := New(store, composer, generator, "hoshino-rin", 10)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, store
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestHandleChatRejectsInvalidRequests(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, router, "/chat", map[string]string{"sessionId": "s1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing message: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, router, "/chat", map[string]string{"message": "こんにちは"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing sessionId: status = %d, want 400", rec.Code)
	}
}

func TestHandleChatHappyPath(t *testing.T) {
	fake := &fakeGenerator{reply: "やっほー！元気だよ！"}
	router, store := newTestRouter(fake)

	rec := postJSON(t, router, "/chat", map[string]string{
		"message":   "こんにちは！",
		"sessionId": "s1",
		"personaId": "hoshino-rin",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["response"] != "やっほー！元気だよ！" {
		t.Errorf("unexpected response body: %v", body)
	}

	if fake.gotQuery != "こんにちは！" {
		t.Errorf("generator query = %q", fake.gotQuery)
	}
	if len(fake.gotHistory) != 0 {
		t.Errorf("first turn should carry no prior history, got %v", fake.gotHistory)
	}
	if !strings.Contains(fake.gotSystem, "星乃リン") {
		t.Error("system prompt does not mention the requested persona")
	}

	messages, err := store.History(context.Background(), "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected user+assistant in history, got %v", messages)
	}
	if messages[0].Role != chatmodel.RoleUser || messages[1].Role != chatmodel.RoleAssistant {
		t.Errorf("unexpected history roles: %v", messages)
	}
}

func TestHandleChatSecondTurnCarriesHistory(t *testing.T) {
	fake := &fakeGenerator{reply: "覚えてるよ！"}
	router, _ := newTestRouter(fake)

	rec := postJSON(t, router, "/chat", map[string]string{
		"message":   "はじめまして",
		"sessionId": "s1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("first turn status = %d", rec.Code)
	}

	rec = postJSON(t, router, "/chat", map[string]string{
		"message":   "さっきの話、覚えてる？",
		"sessionId": "s1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("second turn status = %d", rec.Code)
	}

	// The prior user+assistant pair rides in the history slot; the new user
	// turn rides in the query slot only.
	if len(fake.gotHistory) != 2 {
		t.Fatalf("expected 2 history messages on second turn, got %v", fake.gotHistory)
	}
	if fake.gotHistory[0].Content != "はじめまして" {
		t.Errorf("unexpected history head: %v", fake.gotHistory[0])
	}
	if fake.gotQuery != "さっきの話、覚えてる？" {
		t.Errorf("generator query = %q", fake.gotQuery)
	}
}

func TestHandleChatUnknownPersonaFallsBackToDefault(t *testing.T) {
	fake := &fakeGenerator{reply: "ok"}
	router, _ := newTestRouter(fake)

	rec := postJSON(t, router, "/chat", map[string]string{
		"message":   "こんにちは",
		"sessionId": "s1",
		"personaId": "no-such-persona",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(fake.gotSystem, "星乃リン") {
		t.Error("expected fallback to the default persona prompt")
	}
}

func TestHandleChatGeneratorFailure(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("model unavailable")}
	router, _ := newTestRouter(fake)

	rec := postJSON(t, router, "/chat", map[string]string{
		"message":   "こんにちは",
		"sessionId": "s1",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	body := decodeBody(t, rec)
	response, _ := body["response"].(string)
	found := false
	for _, fallback := range fallbackResponses {
		if response == fallback {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("response %q is not one of the fallback messages", response)
	}
}

func TestHandleChatWithoutGenerator(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := postJSON(t, router, "/chat", map[string]string{
		"message":   "こんにちは",
		"sessionId": "s1",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := decodeBody(t, rec); body["response"] == "" {
		t.Error("expected a fallback response body")
	}
}

func TestComposeWithFallbackGenericPrompt(t *testing.T) {
	store := history.NewStore(storage.NewMemoryKV())
	composer := promptservice.NewComposer(persona.NewRegistry(nil))
	h := New(store, composer, &fakeGenerator{reply: "ok"}, "missing-default", 10)

	if got := h.composeWithFallback("also-missing"); got != genericSystemPrompt {
		t.Errorf("expected generic prompt, got %q", got)
	}
}

func TestHandleCreateSession(t *testing.T) {
	router, _ := newTestRouter(&fakeGenerator{reply: "ok"})

	rec := postJSON(t, router, "/session", map[string]string{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	body := decodeBody(t, rec)
	sessionID, _ := body["sessionId"].(string)
	if _, err := uuid.Parse(sessionID); err != nil {
		t.Errorf("sessionId %q is not a UUID: %v", sessionID, err)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	router, store := newTestRouter(&fakeGenerator{reply: "ok"})
	ctx := context.Background()

	if _, err := store.Add(ctx, "s1", chatmodel.UserMessage("こんにちは")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "s1", chatmodel.AssistantMessage("やっほー！")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/history/s1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["sessionId"] != "s1" {
		t.Errorf("unexpected sessionId: %v", body["sessionId"])
	}
	messages, _ := body["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %v", body["messages"])
	}

	req = httptest.NewRequest(http.MethodDelete, "/history/s1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", rec.Code)
	}

	stored, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("history should be empty after delete, got %v", stored)
	}
}
