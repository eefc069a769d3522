package domain

import (
	"context"
	"time"
)

// TextExtractor defines the adapter over the external extraction engine.
// Extract returns the document's text as an ordered sequence of per-page
// blocks. Any fault of the underlying engine (error, panic, stalled page)
// is returned as an error; it never propagates past this boundary.
type TextExtractor interface {
	Extract(ctx context.Context, location DocumentLocation) ([]string, error)
}

// CorpusScanner enumerates documents of the supported format under a
// directory root. Scan never fails for individual unreadable subdirectories;
// those subtrees simply contribute zero documents.
type CorpusScanner interface {
	Scan(root string) []DocumentLocation
}

// ProgressFunc observes search progress as (processed, total). It is an
// observation hook only; the search cannot be paused through it.
type ProgressFunc func(processed, total int)

// SearchService defines the use-case operations for corpus search.
type SearchService interface {
	SearchFolder(ctx context.Context, folderPath, query string) (*SearchReport, error)
	SearchDocuments(ctx context.Context, documents []DocumentLocation, query string) (*SearchReport, error)
	SearchDocumentsWithProgress(ctx context.Context, documents []DocumentLocation, query string, onProgress ProgressFunc) (*SearchReport, error)
}

// SessionStore holds uploaded document batches keyed by session identifier,
// with time-bounded automatic eviction and storage cleanup.
type SessionStore interface {
	Create(documents []DocumentLocation) (string, error)
	Get(sessionID string) ([]DocumentLocation, error)
	Delete(sessionID string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetMaxUploadFiles() int
	GetSessionTTL() time.Duration
	GetExtractTimeout() time.Duration
	GetSearchWorkers() int
	GetLogLevel() string
}
