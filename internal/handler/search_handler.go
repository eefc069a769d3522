// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pdf-search-server/internal/domain"

	apperrors "pdf-search-server/pkg/errors"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService domain.SearchService
	sessions      domain.SessionStore
	logger        domain.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService domain.SearchService, sessions domain.SessionStore, logger domain.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		sessions:      sessions,
		logger:        logger,
	}
}

type searchByPathRequest struct {
	FolderPath string `json:"folderPath"`
	SearchText string `json:"searchText"`
}

type searchByPathResponse struct {
	Success      bool                 `json:"success"`
	SearchText   string               `json:"searchText"`
	FolderPath   string               `json:"folderPath"`
	TotalPdfs    int                  `json:"totalPdfs"`
	MatchingPdfs int                  `json:"matchingPdfs"`
	Results      []domain.MatchRecord `json:"results"`
	Message      string               `json:"message,omitempty"`
}

// SearchByPath searches every PDF under a filesystem folder for a substring.
func (h *SearchHandler) SearchByPath(w http.ResponseWriter, r *http.Request) {
	var req searchByPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.FolderPath) == "" || strings.TrimSpace(req.SearchText) == "" {
		writeError(w, http.StatusBadRequest, "Both folderPath and searchText are required")
		return
	}

	report, err := h.searchService.SearchFolder(r.Context(), req.FolderPath, req.SearchText)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchByPathResponse{
		Success:      true,
		SearchText:   report.Query,
		FolderPath:   req.FolderPath,
		TotalPdfs:    report.TotalDocuments,
		MatchingPdfs: report.MatchingCount(),
		Results:      report.Matches,
		Message:      report.Message,
	})
}

type searchInSessionRequest struct {
	SessionID  string `json:"sessionId"`
	SearchText string `json:"searchText"`
}

type searchInSessionResponse struct {
	Success          bool                 `json:"success"`
	SearchText       string               `json:"searchText"`
	TotalPdfs        int                  `json:"totalPdfs"`
	MatchingPdfs     int                  `json:"matchingPdfs"`
	ProcessingTimeMs int64                `json:"processingTimeMs"`
	Results          []domain.MatchRecord `json:"results"`
	Message          string               `json:"message,omitempty"`
}

// SearchInSession searches the documents of a previously uploaded batch.
func (h *SearchHandler) SearchInSession(w http.ResponseWriter, r *http.Request) {
	var req searchInSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.SearchText) == "" {
		writeError(w, http.StatusBadRequest, "Both sessionId and searchText are required")
		return
	}

	documents, err := h.sessions.Get(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "SessionExpiredOrInvalid")
		return
	}

	started := time.Now()
	report, err := h.searchService.SearchDocumentsWithProgress(r.Context(), documents, req.SearchText,
		func(processed, total int) {
			h.logger.Debug("Session search progress", "session_id", req.SessionID, "processed", processed, "total", total)
		})
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchInSessionResponse{
		Success:          true,
		SearchText:       report.Query,
		TotalPdfs:        report.TotalDocuments,
		MatchingPdfs:     report.MatchingCount(),
		ProcessingTimeMs: time.Since(started).Milliseconds(),
		Results:          report.Matches,
		Message:          report.Message,
	})
}

// writeSearchError maps service errors onto the transport contract: caller
// input problems are bad requests, everything else is an internal error.
func (h *SearchHandler) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrFolderNotFound),
		errors.Is(err, domain.ErrNotADirectory):
		appErr := apperrors.NewValidationError(err.Error())
		writeError(w, appErr.StatusCode, appErr.Message)
	default:
		h.logger.Error("Search failed", err)
		appErr := apperrors.NewInternalError("An error occurred during the search", err)
		writeError(w, appErr.StatusCode, appErr.Message)
	}
}
