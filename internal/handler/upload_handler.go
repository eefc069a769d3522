package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-search-server/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// UploadHandler handles upload-batch HTTP requests
type UploadHandler struct {
	sessions domain.SessionStore
	config   domain.Config
	logger   domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(sessions domain.SessionStore, config domain.Config, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		sessions: sessions,
		config:   config,
		logger:   logger,
	}
}

type uploadedFileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type uploadBatchResponse struct {
	Success    bool               `json:"success"`
	SessionID  string             `json:"sessionId"`
	FilesCount int                `json:"filesCount"`
	Files      []uploadedFileInfo `json:"files"`
}

// UploadBatch receives a multipart batch of PDF files, stores them under the
// upload root and creates a session for later searching. Non-PDF entries and
// oversized files are rejected up front; nothing is stored for a rejected
// batch.
func (h *UploadHandler) UploadBatch(w http.ResponseWriter, r *http.Request) {
	// Parse headers only; file bodies stream from the multipart reader.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "At least one file is required")
		return
	}
	if len(files) > h.config.GetMaxUploadFiles() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Too many files: maximum is %d per batch", h.config.GetMaxUploadFiles()))
		return
	}

	for _, header := range files {
		name := sanitizeFilename(header.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type: %s. Only PDF files are accepted", name))
			return
		}
		if header.Size > h.config.GetMaxFileSize() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large: %s exceeds %d bytes", name, h.config.GetMaxFileSize()))
			return
		}
	}

	if err := os.MkdirAll(h.config.GetUploadPath(), 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", err, "path", h.config.GetUploadPath())
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded files")
		return
	}

	documents := make([]domain.DocumentLocation, 0, len(files))
	stored := make([]string, 0, len(files))
	cleanup := func() {
		for _, path := range stored {
			_ = os.Remove(path)
		}
	}

	for _, header := range files {
		name := sanitizeFilename(header.Filename)
		storagePath := filepath.Join(
			h.config.GetUploadPath(),
			fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.New().String(), name),
		)

		size, err := h.storeFile(header, storagePath)
		if err != nil {
			h.logger.Error("Failed to store uploaded file", err, "file", name)
			cleanup()
			writeError(w, http.StatusInternalServerError, "Failed to store uploaded files")
			return
		}
		stored = append(stored, storagePath)
		documents = append(documents, domain.DocumentLocation{
			OriginalName: name,
			StoragePath:  storagePath,
			SizeBytes:    size,
		})
	}

	sessionID, err := h.sessions.Create(documents)
	if err != nil {
		cleanup()
		h.logger.Error("Failed to create session", err)
		writeError(w, http.StatusInternalServerError, "Failed to create upload session")
		return
	}

	infos := make([]uploadedFileInfo, 0, len(documents))
	for _, doc := range documents {
		infos = append(infos, uploadedFileInfo{Name: doc.OriginalName, Size: doc.SizeBytes})
	}

	writeJSON(w, http.StatusOK, uploadBatchResponse{
		Success:    true,
		SessionID:  sessionID,
		FilesCount: len(documents),
		Files:      infos,
	})
}

// DeleteSession evicts a session and its stored files on explicit client
// request.
func (h *UploadHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := h.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusBadRequest, "SessionExpiredOrInvalid")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *UploadHandler) storeFile(header *multipart.FileHeader, storagePath string) (int64, error) {
	src, err := header.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(storagePath)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	return io.Copy(dst, src)
}

// sanitizeFilename strips any path components from a client-supplied name.
func sanitizeFilename(filename string) string {
	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document.pdf"
	}
	return name
}
