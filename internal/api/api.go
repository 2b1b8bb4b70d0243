// ABOUTME: HTTP API handlers exposing history, paste, and settings to the presentation layer
// ABOUTME: JSON request/response types and the entry DTO with inlined thumbnails

package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pastify/pastify/internal/hotkey"
	"github.com/pastify/pastify/internal/paste"
	"github.com/pastify/pastify/internal/settings"
	"github.com/pastify/pastify/internal/store"
)

// EntryResponse is the JSON shape of a history entry. Image thumbnails and
// source icons travel inline as data URLs; the full image payload never
// leaves the store through listings.
type EntryResponse struct {
	ID          int64  `json:"id"`
	ContentType string `json:"content_type"`
	TextContent string `json:"text_content,omitempty"`
	ImageThumb  string `json:"image_thumb,omitempty"`
	SourceApp   string `json:"source_app,omitempty"`
	SourceIcon  string `json:"source_icon,omitempty"`
	IsPinned    bool   `json:"is_pinned"`
	UsageCount  int64  `json:"usage_count"`
	CreatedAt   string `json:"created_at"`
}

// HistoryResponse is the JSON response for GET /api/history.
type HistoryResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// PasteRequest is the JSON request body for POST /api/entries/{id}/paste.
type PasteRequest struct {
	Plain bool `json:"plain"`
}

// SettingsResponse mirrors the persisted settings document.
type SettingsResponse struct {
	MaxHistory   int      `json:"max_history"`
	RecordImages bool     `json:"record_images"`
	Hotkey       string   `json:"hotkey"`
	Blacklist    []string `json:"blacklist"`
}

func entryToResponse(e *store.Entry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID,
		ContentType: string(e.ContentType),
		TextContent: e.TextContent,
		SourceApp:   e.SourceApp,
		IsPinned:    e.IsPinned,
		UsageCount:  e.UsageCount,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(e.ImageThumb) > 0 {
		resp.ImageThumb = "data:image/png;base64," + base64.StdEncoding.EncodeToString(e.ImageThumb)
	}
	if len(e.SourceIcon) > 0 {
		resp.SourceIcon = "data:image/png;base64," + base64.StdEncoding.EncodeToString(e.SourceIcon)
	}
	return resp
}

func settingsToResponse(s store.Settings) SettingsResponse {
	if s.Blacklist == nil {
		s.Blacklist = []string{}
	}
	return SettingsResponse{
		MaxHistory:   s.MaxHistory,
		RecordImages: s.RecordImages,
		Hotkey:       s.Hotkey,
		Blacklist:    s.Blacklist,
	}
}

// handleHistory handles GET /api/history with optional q, type, time, and
// source query parameters.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	filter := store.Filter{
		Query:  q.Get("q"),
		Source: q.Get("source"),
	}
	if t := q.Get("type"); t != "" {
		filter.Type = store.TypeFilter(t)
	}
	if t := q.Get("time"); t != "" {
		filter.Time = store.TimeFilter(t)
	}

	entries, err := s.engine.History(r.Context(), filter)
	if err != nil {
		s.logger.Error("history query failed", "err", err)
		s.sendJSONError(w, http.StatusInternalServerError, "history query failed")
		return
	}

	resp := HistoryResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryToResponse(e))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleEntryRoutes dispatches /api/entries/{id} and its action suffixes.
func (s *Server) handleEntryRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/entries/")
	idPart, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodDelete:
		s.handleDeleteEntry(w, r, id)
	case action == "paste" && r.Method == http.MethodPost:
		s.handlePasteEntry(w, r, id)
	case action == "copy" && r.Method == http.MethodPost:
		s.handleCopyEntry(w, r, id)
	case action == "pin" && r.Method == http.MethodPost:
		s.handlePinEntry(w, r, id)
	default:
		s.sendJSONError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.engine.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete failed", "id", id, "err", err)
		s.sendJSONError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePasteEntry(w http.ResponseWriter, r *http.Request, id int64) {
	var req PasteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.sendJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}

	entry, err := s.engine.Paste(r.Context(), id, req.Plain)
	if err != nil {
		s.sendEntryError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entryToResponse(entry))
}

func (s *Server) handleCopyEntry(w http.ResponseWriter, r *http.Request, id int64) {
	entry, err := s.engine.Copy(r.Context(), id)
	if err != nil {
		s.sendEntryError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entryToResponse(entry))
}

func (s *Server) handlePinEntry(w http.ResponseWriter, r *http.Request, id int64) {
	entry, err := s.engine.TogglePin(r.Context(), id)
	if err != nil {
		s.sendEntryError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entryToResponse(entry))
}

// handleSettings handles GET and PATCH /api/settings.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settingsToResponse(s.engine.Settings()))

	case http.MethodPatch:
		var partial settings.Partial
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			s.sendJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		next, err := s.engine.UpdateSettings(r.Context(), partial)
		if err != nil {
			if errors.Is(err, hotkey.ErrConflict) {
				// The update is saved; the binding just could not be claimed.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]any{
					"error":    "hotkey already in use by another application",
					"settings": settingsToResponse(next),
				})
				return
			}
			s.sendJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settingsToResponse(next))

	default:
		s.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// sendEntryError maps engine errors to HTTP statuses.
func (s *Server) sendEntryError(w http.ResponseWriter, id int64, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.sendJSONError(w, http.StatusNotFound, fmt.Sprintf("entry %d not found", id))
	case errors.Is(err, paste.ErrFocusTimeout), errors.Is(err, paste.ErrInjectionRejected):
		s.logger.Warn("paste failed", "id", id, "err", err)
		s.sendJSONError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("entry operation failed", "id", id, "err", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
