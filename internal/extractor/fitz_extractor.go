// Package extractor adapts the go-fitz engine behind domain.TextExtractor.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pdf-search-server/internal/domain"

	apperrors "pdf-search-server/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// engineFunc extracts per-page text from the document at path. Separated so
// tests can substitute a misbehaving engine.
type engineFunc func(path string) ([]string, error)

// FitzExtractor implements domain.TextExtractor on top of go-fitz. The
// engine is treated as potentially slow and potentially crashing on
// malformed input: panics are recovered and a per-document timeout bounds a
// stalled extraction. Either way the caller sees an ordinary error.
type FitzExtractor struct {
	logger  domain.Logger
	timeout time.Duration
	engine  engineFunc
}

// NewFitzExtractor creates a new extractor. timeout bounds one document's
// extraction; zero disables the ceiling.
func NewFitzExtractor(logger domain.Logger, timeout time.Duration) *FitzExtractor {
	return &FitzExtractor{
		logger:  logger,
		timeout: timeout,
		engine:  extractWithFitz,
	}
}

// Extract returns the document's text as an ordered sequence of per-page
// blocks, or an error if the engine fails, panics, stalls past the timeout,
// or the context is cancelled.
func (e *FitzExtractor) Extract(ctx context.Context, location domain.DocumentLocation) ([]string, error) {
	type extractResult struct {
		pages []string
		err   error
	}

	resultCh := make(chan extractResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- extractResult{err: fmt.Errorf("extraction engine panic: %v", r)}
			}
		}()
		pages, err := e.engine(location.StoragePath)
		resultCh <- extractResult{pages: pages, err: err}
	}()

	var timeoutCh <-chan time.Time
	if e.timeout > 0 {
		timer := time.NewTimer(e.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case res := <-resultCh:
		if res.err != nil {
			e.logger.Warn("Text extraction failed", "file", location.OriginalName, "error", res.err)
			return nil, apperrors.NewExtractionError(res.err.Error(), res.err)
		}
		return res.pages, nil
	case <-timeoutCh:
		e.logger.Warn("Text extraction timeout", "file", location.OriginalName, "timeout_sec", int(e.timeout.Seconds()))
		go func() { <-resultCh }() // drain so the goroutine can exit
		return nil, apperrors.NewExtractionError(fmt.Sprintf("extraction timeout after %v", e.timeout), nil)
	case <-ctx.Done():
		go func() { <-resultCh }()
		return nil, ctx.Err()
	}
}

// extractWithFitz opens the document and reads the text of every page.
func extractWithFitz(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			// A single bad page does not fail the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	return pages, nil
}
