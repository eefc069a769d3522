package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pdf-search-server/internal/domain"

	apperrors "pdf-search-server/pkg/errors"
)

// Mock logger used by extractor tests.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

func testLocation() domain.DocumentLocation {
	return domain.DocumentLocation{OriginalName: "doc.pdf", StoragePath: "/tmp/doc.pdf"}
}

func TestExtract_Success(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, time.Second)
	e.engine = func(path string) ([]string, error) {
		return []string{"page one", "page two"}, nil
	}

	pages, err := e.Extract(context.Background(), testLocation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 || pages[0] != "page one" || pages[1] != "page two" {
		t.Fatalf("unexpected pages: %v", pages)
	}
}

func TestExtract_EngineError(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, time.Second)
	e.engine = func(path string) ([]string, error) {
		return nil, errors.New("corrupt xref table")
	}

	if _, err := e.Extract(context.Background(), testLocation()); err == nil {
		t.Fatalf("expected error from failing engine")
	}
}

func TestExtract_EnginePanicIsRecovered(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, time.Second)
	e.engine = func(path string) ([]string, error) {
		panic("mupdf assertion")
	}

	_, err := e.Extract(context.Background(), testLocation())
	if err == nil {
		t.Fatalf("expected error from panicking engine")
	}
	if !strings.Contains(err.Error(), "panic") {
		t.Fatalf("expected panic to be reported, got: %v", err)
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeExtraction) {
		t.Fatalf("expected extraction error type, got: %v", err)
	}
}

func TestExtract_Timeout(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, 20*time.Millisecond)
	release := make(chan struct{})
	e.engine = func(path string) ([]string, error) {
		<-release
		return []string{"late"}, nil
	}
	defer close(release)

	start := time.Now()
	_, err := e.Extract(context.Background(), testLocation())
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout took too long: %v", time.Since(start))
	}
}

func TestExtract_ContextCancelled(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, time.Minute)
	release := make(chan struct{})
	e.engine = func(path string) ([]string, error) {
		<-release
		return nil, nil
	}
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Extract(ctx, testLocation()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	e := NewFitzExtractor(&mockLogger{}, time.Second)

	_, err := e.Extract(context.Background(), domain.DocumentLocation{
		OriginalName: "ghost.pdf",
		StoragePath:  "/nonexistent/ghost.pdf",
	})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
