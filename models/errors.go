package models

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrModelNotFound   = errors.New("model not found")
	ErrFileNotFound    = errors.New("stored file not found")
	ErrNoFile          = errors.New("no file provided")
	ErrTooManyFiles    = errors.New("too many files")
)
