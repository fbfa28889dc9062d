package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/frontdesk/internal/conversation"
	"github.com/MikeSquared-Agency/frontdesk/internal/events"
	"github.com/MikeSquared-Agency/frontdesk/internal/metrics"
	"github.com/MikeSquared-Agency/frontdesk/internal/resolver"
)

const maxChatBody = 1 << 20

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string              `json:"message"`
	History []conversation.Turn `json:"history"`
}

// chat handles POST /api/chat. A body that is missing or not valid JSON is
// treated as an empty message.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		req = ChatRequest{}
	}

	id := uuid.New()
	start := time.Now()

	res, err := s.resolver.Resolve(r.Context(), req.Message, req.History)
	if errors.Is(err, resolver.ErrEmptyMessage) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Empty message"})
		return
	}
	if err != nil {
		s.logger.Error("resolve failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}
	elapsed := time.Since(start)

	metrics.ObserveResolution(string(res.Source), elapsed)
	s.logger.Info("message resolved",
		"id", id,
		"source", res.Source,
		"history_turns", len(req.History),
		"duration_ms", elapsed.Milliseconds(),
	)

	if s.events != nil {
		evt := events.Resolved{
			ID:           id.String(),
			Source:       string(res.Source),
			MessageChars: utf8.RuneCountInString(req.Message),
			HistoryTurns: len(req.History),
			DurationMS:   elapsed.Milliseconds(),
			ResolvedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.events.PublishResolved(evt); err != nil {
			s.logger.Warn("failed to publish resolution", "id", id, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, res)
}
