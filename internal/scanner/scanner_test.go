package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"pdf-search-server/internal/domain"
)

// Mock logger used by scanner tests.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func scannedNames(docs []domain.DocumentLocation) map[string]bool {
	names := make(map[string]bool, len(docs))
	for _, d := range docs {
		names[d.OriginalName] = true
	}
	return names
}

func TestScan_FindsOnlyPDFs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), "pdf-a")
	writeFile(t, filepath.Join(root, "b.PDF"), "pdf-b")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a pdf")
	writeFile(t, filepath.Join(root, "sub", "deep", "c.Pdf"), "pdf-c")
	writeFile(t, filepath.Join(root, "sub", "image.png"), "png")

	s := NewPDFScanner(&mockLogger{})
	docs := s.Scan(root)

	if len(docs) != 3 {
		t.Fatalf("expected 3 PDFs, got %d", len(docs))
	}
	names := scannedNames(docs)
	for _, want := range []string{"a.pdf", "b.PDF", "c.Pdf"} {
		if !names[want] {
			t.Fatalf("expected %s in scan results, got %v", want, names)
		}
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	s := NewPDFScanner(&mockLogger{})
	docs := s.Scan(t.TempDir())

	if docs == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestScan_RecordsSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sized.pdf"), "12345")

	s := NewPDFScanner(&mockLogger{})
	docs := s.Scan(root)

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].SizeBytes != 5 {
		t.Fatalf("expected size 5, got %d", docs[0].SizeBytes)
	}
	if docs[0].StoragePath != filepath.Join(root, "sized.pdf") {
		t.Fatalf("unexpected storage path %s", docs[0].StoragePath)
	}
}

func TestScan_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on windows")
	}
	if os.Getuid() == 0 {
		t.Skip("running as root; permission checks are bypassed")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.pdf"), "readable")
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.pdf"), "unreadable")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	s := NewPDFScanner(&mockLogger{})
	docs := s.Scan(root)

	if len(docs) != 1 {
		t.Fatalf("expected 1 document from readable part of tree, got %d", len(docs))
	}
	if docs[0].OriginalName != "ok.pdf" {
		t.Fatalf("expected ok.pdf, got %s", docs[0].OriginalName)
	}
}

func TestScan_MissingRootYieldsNoDocuments(t *testing.T) {
	s := NewPDFScanner(&mockLogger{})
	docs := s.Scan(filepath.Join(t.TempDir(), "does-not-exist"))

	if len(docs) != 0 {
		t.Fatalf("expected no documents for missing root, got %d", len(docs))
	}
}
