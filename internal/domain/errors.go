package domain

import "errors"

// Domain errors
var (
	ErrEmptyQuery      = errors.New("search text is required")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrNotADirectory   = errors.New("the provided path is not a directory")
	ErrSessionNotFound = errors.New("session expired or invalid")
	ErrInvalidFile     = errors.New("invalid file")
	ErrTooManyFiles    = errors.New("too many files in batch")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
)
