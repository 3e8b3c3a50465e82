package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tidwall/gjson"

	"github.com/diogo/agentchat/internal/models"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.ErrTextInvalidPayload)
		return
	}

	message, ok := parseChatRequest(body)
	if !ok {
		writeError(w, http.StatusBadRequest, models.ErrTextInvalidPayload)
		return
	}
	if message == "" {
		writeError(w, http.StatusBadRequest, models.ErrTextNoMessage)
		return
	}

	reqID := chimiddleware.GetReqID(r.Context())
	reply, err := s.thread.Run(r.Context(), s.agent, message)
	if err != nil {
		s.logger.Error("agent_run_failed", "request_id", reqID, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", models.ErrTextRunFailed, err))
		return
	}
	if reply == "" {
		s.logger.Warn("agent_empty_reply", "request_id", reqID)
		reply = models.EmptyReplyText
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response: reply,
		Status:   "success",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Agent:    s.agent.Name(),
		ThreadID: s.thread.ID(),
	})
}

// parseChatRequest extracts the trimmed message from a JSON object body.
// ok is false when the body is not a JSON object. A missing or non-string
// message yields "".
func parseChatRequest(body []byte) (message string, ok bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", false
	}
	field := root.Get("message")
	if field.Type != gjson.String {
		return "", true
	}
	return strings.TrimSpace(field.String()), true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ChatResponse{Error: message})
}
