package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	chatmodel "github.com/sayuki-dev/oshitalk/backend/internal/model/chat"
	"github.com/sayuki-dev/oshitalk/backend/internal/service/history"
	promptservice "github.com/sayuki-dev/oshitalk/backend/internal/service/prompt"
	"github.com/sayuki-dev/oshitalk/backend/internal/timeaware"
	"github.com/sayuki-dev/oshitalk/backend/pkg/utils"
)

// Generator is the model-call collaborator: one assistant reply per turn.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, historyMessages []chatmodel.Message, userMessage string) (string, error)
}

var errGeneratorUnavailable = errors.New("ai service unavailable")

// fallbackResponses are shown to the user when a turn fails outright. The
// user never sees a raw error.
var fallbackResponses = []string{
	"すみません、今ちょっと調子が悪いみたいです。もう一度試してもらえますか？",
	"エラーが発生しました。少し時間をおいてから再度お試しください。",
	"申し訳ありません。システムに問題が発生しているようです。",
}

// genericSystemPrompt is the last resort when neither the requested nor the
// default persona can be composed.
const genericSystemPrompt = "あなたは親しみやすいAIアシスタントです。" +
	"ユーザーと日本語で自然な会話をしてください。丁寧すぎず、人間らしい話し方を心がけてください。"

// Handler drives one chat turn: append user message, compose the system
// prompt, call the model, append the reply.
type Handler struct {
	historyStore     *history.Store
	composer         *promptservice.Composer
	generator        Generator
	defaultPersonaID string
	recentLimit      int
}

// New creates the chat handler. generator may be nil when the model
// credentials are not configured; chat requests then degrade to the
// apologetic fallback.
func New(historyStore *history.Store, composer *promptservice.Composer, generator Generator, defaultPersonaID string, recentLimit int) *Handler {
	if recentLimit <= 0 {
		recentLimit = history.DefaultRecentLimit
	}
	return &Handler{
		historyStore:     historyStore,
		composer:         composer,
		generator:        generator,
		defaultPersonaID: defaultPersonaID,
		recentLimit:      recentLimit,
	}
}

// RegisterRoutes wires the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/session", h.handleCreateSession)
	r.Get("/history/{sessionID}", h.handleGetHistory)
	r.Delete("/history/{sessionID}", h.handleClearHistory)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	PersonaID string `json:"personaId"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Message == "" || payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "message and sessionId are required")
		return
	}

	reply, err := h.runTurn(r.Context(), payload)
	if err != nil {
		log.Printf("[chat] turn failed for session=%s: %v", payload.SessionID, err)
		respondFallback(w)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Response: reply})
}

// runTurn executes the strictly sequential per-turn flow: user append,
// prompt composition, model call, assistant append.
func (h *Handler) runTurn(ctx context.Context, payload chatRequest) (string, error) {
	if h.generator == nil {
		return "", errGeneratorUnavailable
	}

	if _, err := h.historyStore.Add(ctx, payload.SessionID, chatmodel.UserMessage(payload.Message)); err != nil {
		return "", err
	}

	systemPrompt := h.composeWithFallback(payload.PersonaID)

	recent, err := h.historyStore.Recent(ctx, payload.SessionID, h.recentLimit)
	if err != nil {
		return "", err
	}
	// The user turn just appended rides in the query slot, not the history.
	if n := len(recent); n > 0 && recent[n-1].Role == chatmodel.RoleUser && recent[n-1].Content == payload.Message {
		recent = recent[:n-1]
	}

	reply, err := h.generator.Generate(ctx, systemPrompt, recent, payload.Message)
	if err != nil {
		return "", err
	}

	if _, err := h.historyStore.Add(ctx, payload.SessionID, chatmodel.AssistantMessage(reply)); err != nil {
		return "", err
	}

	return reply, nil
}

// composeWithFallback implements the three-tier chain: requested persona,
// configured default persona, then the minimal generic prompt. The turn
// always gets some usable system prompt.
func (h *Handler) composeWithFallback(personaID string) string {
	now := timeaware.NowJST()

	if personaID == "" {
		personaID = h.defaultPersonaID
	}

	systemPrompt, err := h.composer.ComposeSystemPrompt(personaID, now)
	if err == nil {
		return systemPrompt
	}
	log.Printf("[chat] compose failed for persona=%s: %v", personaID, err)

	if personaID != h.defaultPersonaID {
		systemPrompt, err = h.composer.ComposeSystemPrompt(h.defaultPersonaID, now)
		if err == nil {
			return systemPrompt
		}
		log.Printf("[chat] compose failed for default persona=%s: %v", h.defaultPersonaID, err)
	}

	return genericSystemPrompt
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"sessionId": uuid.NewString()})
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.historyStore.History(r.Context(), sessionID)
	if err != nil {
		log.Printf("[chat] failed to load history for session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"messages":  messages,
	})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.historyStore.Clear(r.Context(), sessionID); err != nil {
		log.Printf("[chat] failed to clear history for session=%s: %v", sessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func respondFallback(w http.ResponseWriter) {
	response := fallbackResponses[rand.Intn(len(fallbackResponses))]
	utils.RespondJSON(w, http.StatusInternalServerError, chatResponse{Response: response})
}
