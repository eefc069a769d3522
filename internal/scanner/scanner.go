// Package scanner enumerates PDF documents under a directory root.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"pdf-search-server/internal/domain"
)

const pdfExtension = ".pdf"

// PDFScanner implements domain.CorpusScanner with a recursive directory walk.
type PDFScanner struct {
	logger domain.Logger
}

// NewPDFScanner creates a new scanner instance
func NewPDFScanner(logger domain.Logger) *PDFScanner {
	return &PDFScanner{
		logger: logger,
	}
}

// Scan walks the tree under root and returns a DocumentLocation for every
// file whose extension is .pdf (case-insensitive). An unreadable
// subdirectory is logged and skipped; its subtree contributes zero documents
// and the walk continues with siblings. Scan itself never fails — the caller
// validates that root exists and is a directory beforehand.
func (s *PDFScanner) Scan(root string) []domain.DocumentLocation {
	documents := make([]domain.DocumentLocation, 0)
	s.walk(root, &documents)
	return documents
}

func (s *PDFScanner) walk(dir string, documents *[]domain.DocumentLocation) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("Skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			s.walk(fullPath, documents)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), pdfExtension) {
			continue
		}

		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		*documents = append(*documents, domain.DocumentLocation{
			OriginalName: entry.Name(),
			StoragePath:  fullPath,
			SizeBytes:    size,
		})
	}
}
