package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"elyubot/internal/catalog"
	"elyubot/internal/chat"
	"elyubot/internal/intent"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type handler struct {
	cat    *catalog.Catalog
	svc    *chat.Service
	logger *zap.Logger
}

func newHandler(cat *catalog.Catalog, svc *chat.Service, logger *zap.Logger) *handler {
	return &handler{cat: cat, svc: svc, logger: logger}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	ConversationID string   `json:"conversation_id"`
	Message        string   `json:"message"`
	Intent         string   `json:"intent,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
}

// chat handles one conversational turn. A missing conversation id starts a
// new conversation. An optional intent/confidence pair from an external NLU
// source is passed through to the engine.
func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	var score *intent.Score
	if req.Confidence != nil {
		score = &intent.Score{Intent: req.Intent, Confidence: *req.Confidence}
	}

	text := h.svc.SendScored(r.Context(), req.ConversationID, req.Message, score)
	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: req.ConversationID,
		Response:       text,
	})
}

func (h *handler) products(w http.ResponseWriter, _ *http.Request) {
	products, err := h.cat.Products()
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) productsByTown(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	products := h.cat.ProductsByTown(name)
	if len(products) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no products found for " + name})
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) stores(w http.ResponseWriter, _ *http.Request) {
	stores, err := h.cat.Stores()
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *handler) municipalities(w http.ResponseWriter, _ *http.Request) {
	munis, err := h.cat.Municipalities()
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, munis)
}

// highlights returns the signature products: what each town is known for.
func (h *handler) highlights(w http.ResponseWriter, _ *http.Request) {
	sigs, err := h.cat.SignatureProducts()
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sigs)
}

func (h *handler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("catalog read failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func encodeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
