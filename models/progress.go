package models

import (
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

const progressLogInterval = time.Second

type ProgressReader struct {
	Reader      io.Reader
	Name        string
	TotalBytes  int64
	ChunkCount  int
	LastLogTime time.Time
}

func NewProgressReader(r io.Reader, name string) *ProgressReader {
	return &ProgressReader{Reader: r, Name: name, LastLogTime: time.Now()}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.TotalBytes += int64(n)
	pr.ChunkCount++
	now := time.Now()
	if now.Sub(pr.LastLogTime) >= progressLogInterval {
		slog.Info("read progress", "name", pr.Name, "chunk_number", pr.ChunkCount, "total", humanize.Bytes(uint64(pr.TotalBytes)))
		pr.LastLogTime = now
	}
	return n, err
}
