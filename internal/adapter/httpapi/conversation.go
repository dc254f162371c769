package httpapi

import (
	"net/http"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/usecase"
)

type conversationRequest struct {
	Message  string                       `json:"message"`
	History  []entity.ConversationMessage `json:"history"`
	Scenario entity.ScenarioSummary       `json:"scenario"`
}

func (h *Handler) handleConversationReply(w http.ResponseWriter, r *http.Request) {
	var req conversationRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: errBadBody.Error()})
		return
	}
	reply, err := h.conversation.Reply(r.Context(), &usecase.ConversationRequest{
		UserID:   userID(r.Context()),
		Message:  req.Message,
		History:  req.History,
		Scenario: req.Scenario,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}
