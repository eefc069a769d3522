package domain

import (
	"time"
)

// DocumentLocation identifies one searchable document: where its bytes live
// plus display metadata. Immutable once created.
type DocumentLocation struct {
	OriginalName string `json:"original_name"`
	StoragePath  string `json:"storage_path"`
	SizeBytes    int64  `json:"size_bytes"`
}

// MatchRecord represents one matching document in a search report.
// FilePath and RelativePath are set for filesystem searches; FileSize is set
// for upload-session searches.
type MatchRecord struct {
	FileName     string `json:"fileName"`
	FilePath     string `json:"filePath,omitempty"`
	RelativePath string `json:"relativePath,omitempty"`
	FileSize     int64  `json:"fileSize,omitempty"`
}

// SearchReport is the aggregate result of one search invocation. Matches
// preserve the traversal/list order of the input documents. The engine holds
// no history; a report is built once per request and discarded.
type SearchReport struct {
	Query          string        `json:"searchText"`
	TotalDocuments int           `json:"totalPdfs"`
	Matches        []MatchRecord `json:"results"`
	Message        string        `json:"message,omitempty"`
}

// MatchingCount returns the number of matching documents in the report.
func (r *SearchReport) MatchingCount() int {
	return len(r.Matches)
}

// UploadSession associates an opaque identifier with a batch of uploaded
// documents. Immutable after creation except for full deletion.
type UploadSession struct {
	ID        string             `json:"session_id"`
	Documents []DocumentLocation `json:"documents"`
	CreatedAt time.Time          `json:"created_at"`
}
