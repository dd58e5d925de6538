package models

import (
	"io"
	"time"
)

// StoredObject is a file opened from a storage backend. The caller owns
// Content and must close it.
type StoredObject struct {
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string
	Content     io.ReadSeekCloser
}
