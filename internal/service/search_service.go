// Package service implements the corpus-search business logic.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"pdf-search-server/internal/domain"

	"golang.org/x/sync/errgroup"
)

// SearchService orchestrates scanning, extraction and matching into a
// SearchReport. Per-document extraction failures are absorbed: a document
// that cannot be parsed counts as non-matching and the batch continues.
type SearchService struct {
	scanner   domain.CorpusScanner
	extractor domain.TextExtractor
	logger    domain.Logger
	workers   int
}

// NewSearchService creates a new search service. workers bounds concurrent
// extractions; zero or negative means one worker per CPU.
func NewSearchService(
	scanner domain.CorpusScanner,
	extractor domain.TextExtractor,
	logger domain.Logger,
	workers int,
) *SearchService {
	return &SearchService{
		scanner:   scanner,
		extractor: extractor,
		logger:    logger,
		workers:   workers,
	}
}

// SearchFolder searches every PDF under folderPath for query. The folder is
// validated before any scanning: a missing path yields ErrFolderNotFound and
// a non-directory yields ErrNotADirectory. Match records carry absolute and
// folder-relative paths.
func (s *SearchService) SearchFolder(ctx context.Context, folderPath, query string) (*domain.SearchReport, error) {
	query, err := validateQuery(query)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(folderPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, folderPath)
	}
	if !info.IsDir() {
		return nil, domain.ErrNotADirectory
	}

	s.logger.Info("Searching for PDFs", "folder", folderPath)
	documents := s.scanner.Scan(folderPath)
	s.logger.Info("Scan complete", "folder", folderPath, "documents", len(documents))

	matched, err := s.run(ctx, documents, query, nil)
	if err != nil {
		return nil, err
	}

	report := newReport(query, len(documents))
	for i, doc := range documents {
		if !matched[i] {
			continue
		}
		relPath, relErr := filepath.Rel(folderPath, doc.StoragePath)
		if relErr != nil {
			relPath = doc.OriginalName
		}
		report.Matches = append(report.Matches, domain.MatchRecord{
			FileName:     doc.OriginalName,
			FilePath:     filepath.ToSlash(doc.StoragePath),
			RelativePath: filepath.ToSlash(relPath),
		})
	}

	s.logger.Info("Search complete", "folder", folderPath, "matches", len(report.Matches))
	return report, nil
}

// SearchDocuments searches an explicit document list (an uploaded batch) for
// query. Match records carry the display name and size.
func (s *SearchService) SearchDocuments(ctx context.Context, documents []domain.DocumentLocation, query string) (*domain.SearchReport, error) {
	return s.SearchDocumentsWithProgress(ctx, documents, query, nil)
}

// SearchDocumentsWithProgress is SearchDocuments with an observation hook:
// onProgress is invoked with (processed, total) as each document completes.
func (s *SearchService) SearchDocumentsWithProgress(
	ctx context.Context,
	documents []domain.DocumentLocation,
	query string,
	onProgress domain.ProgressFunc,
) (*domain.SearchReport, error) {
	query, err := validateQuery(query)
	if err != nil {
		return nil, err
	}

	matched, err := s.run(ctx, documents, query, onProgress)
	if err != nil {
		return nil, err
	}

	report := newReport(query, len(documents))
	for i, doc := range documents {
		if !matched[i] {
			continue
		}
		report.Matches = append(report.Matches, domain.MatchRecord{
			FileName: doc.OriginalName,
			FileSize: doc.SizeBytes,
		})
	}

	return report, nil
}

// run extracts and matches every document with a bounded worker pool and
// reports which input positions matched. The matched slice is indexed by
// input position so callers reassemble results in input order regardless of
// completion order.
func (s *SearchService) run(
	ctx context.Context,
	documents []domain.DocumentLocation,
	query string,
	onProgress domain.ProgressFunc,
) ([]bool, error) {
	matched := make([]bool, len(documents))
	if len(documents) == 0 {
		return matched, nil
	}

	total := len(documents)
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount(total))

	for i, doc := range documents {
		i, doc := i, doc
		g.Go(func() error {
			pages, err := s.extractor.Extract(ctx, doc)
			if err != nil {
				// One bad file must not break the batch.
				s.logger.Warn("Skipping document after extraction failure", "file", doc.OriginalName, "error", err)
			} else {
				matched[i] = MatchesQuery(pages, query)
			}

			done := int(processed.Add(1))
			s.logger.Debug("Processed document", "file", doc.OriginalName, "processed", done, "total", total)
			if onProgress != nil {
				onProgress(done, total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// A cancelled search must not masquerade as an all-miss report.
		return nil, err
	}
	return matched, nil
}

func (s *SearchService) workerCount(documents int) int {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > documents {
		workers = documents
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func newReport(query string, total int) *domain.SearchReport {
	report := &domain.SearchReport{
		Query:          query,
		TotalDocuments: total,
		Matches:        make([]domain.MatchRecord, 0),
	}
	if total == 0 {
		report.Message = "No PDF files found"
	}
	return report
}

func validateQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", domain.ErrEmptyQuery
	}
	return trimmed, nil
}
