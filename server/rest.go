package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/tripscope/pkg/domain"
	"github.com/umputun/tripscope/pkg/preference"
	"github.com/umputun/tripscope/pkg/service"
)

// maxTextLen limits a single traveler message, in characters
const maxTextLen = 4000

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"fields":  len(s.conversations.Schema().AllFields()),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// schemaHandler returns preference fields in canonical order
func (s *Server) schemaHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, toSchemaResponse(s.conversations.Schema()))
}

// resolveHandler fills preferences from text without a session
func (s *Server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeRequest(r, &req); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	turn, err := s.conversations.Resolve(r.Context(), service.ResolveRequest{
		Text:        req.Text,
		Preferences: req.Preferences,
		Threshold:   req.Threshold,
	})
	if err != nil {
		s.renderServiceError(w, r, err, "resolve")
		return
	}
	RenderJSON(w, r, http.StatusOK, toTurnResponse(turn))
}

// startSessionHandler starts a conversation, request body with the first message is optional
func (s *Server) startSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeRequest(r, &req); err != nil && !errors.Is(err, io.EOF) {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	turn, err := s.conversations.Start(r.Context(), req.Text)
	if err != nil {
		s.renderServiceError(w, r, err, "start session")
		return
	}
	RenderJSON(w, r, http.StatusCreated, toTurnResponse(turn))
}

// getSessionHandler returns the current state of a session
func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	turn, err := s.conversations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderServiceError(w, r, err, "get session")
		return
	}
	RenderJSON(w, r, http.StatusOK, toTurnResponse(turn))
}

// messageHandler resolves a traveler's message within a session
func (s *Server) messageHandler(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeRequest(r, &req); err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	turn, err := s.conversations.Reply(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		s.renderServiceError(w, r, err, "reply")
		return
	}
	RenderJSON(w, r, http.StatusOK, toTurnResponse(turn))
}

// deleteSessionHandler removes a session
func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.conversations.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.renderServiceError(w, r, err, "delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// renderServiceError maps service errors to status codes
func (s *Server) renderServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, preference.ErrInvalidInput):
		RenderError(w, r, err, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		RenderError(w, r, errors.New("session not found"), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		lgr.Printf("[WARN] %s failed, session keeps changing: %v", op, err)
		RenderError(w, r, err, http.StatusConflict)
	case errors.Is(err, preference.ErrEmbedding):
		lgr.Printf("[WARN] %s failed, embedding service: %v", op, err)
		RenderError(w, r, err, http.StatusBadGateway)
	default:
		lgr.Printf("[ERROR] %s failed: %v", op, err)
		RenderError(w, r, err, http.StatusInternalServerError)
	}
}

// textRequest is implemented by requests carrying a traveler's message
type textRequest interface {
	text() string
}

// decodeRequest parses JSON body and checks message size
func decodeRequest(r *http.Request, v textRequest) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if n := utf8.RuneCountInString(v.text()); n > maxTextLen {
		return fmt.Errorf("text is too long: %d characters, max %d", n, maxTextLen)
	}
	return nil
}
