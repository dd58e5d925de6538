// Package file stores uploads in a single local directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"modelvault/models"
)

const defaultContentType = "application/octet-stream"

var modelTypes = map[string]string{
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
	".obj":  "model/obj",
	".stl":  "model/stl",
	".3mf":  "model/3mf",
}

func init() {
	for ext, contentType := range modelTypes {
		if err := mime.AddExtensionType(ext, contentType); err != nil {
			slog.Warn("failed to register content type", "ext", ext, "error", err)
		}
	}
}

type Storage struct {
	root string
}

// Open resolves root without touching the filesystem. Listing a root
// that does not exist yields no files.
func Open(root string) (*Storage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %q: %w", root, err)
	}
	return &Storage{root: abs}, nil
}

// New prepares root (made absolute) for storing files.
func New(root string) (*Storage, error) {
	s, err := Open(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %q: %w", s.root, err)
	}

	slog.Info("file storage ready", "root", s.root)
	return s, nil
}

func (s *Storage) Root() string {
	return s.root
}

// path rejects names that would escape the root.
func (s *Storage) path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid stored name %q", name)
	}
	return filepath.Join(s.root, name), nil
}

func (s *Storage) UploadFile(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	fpath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create storage root: %w", err)
	}

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fpath, err)
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(fpath)
		return fmt.Errorf("failed to write file %s: %w", fpath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(fpath)
		return fmt.Errorf("failed to close file %s: %w", fpath, err)
	}
	return nil
}

func (s *Storage) DownloadFile(ctx context.Context, name string) (*models.StoredObject, error) {
	fpath, err := s.path(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, name)
	}

	f, err := os.Open(fpath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fpath, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file %s: %w", fpath, err)
	}

	return &models.StoredObject{
		Name:        name,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: ContentType(name),
		Content:     f,
	}, nil
}

func (s *Storage) DeleteFile(ctx context.Context, name string) error {
	fpath, err := s.path(name)
	if err != nil {
		return fmt.Errorf("%w: %s", models.ErrFileNotFound, name)
	}

	err = os.Remove(fpath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", models.ErrFileNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to remove file %s: %w", fpath, err)
	}
	return nil
}

// ListFiles returns the absolute path of every regular file under the
// root, nested directories included.
func (s *Storage) ListFiles(ctx context.Context) ([]string, error) {
	return RecursiveFiles(s.root)
}

func RecursiveFiles(root string) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// ContentType guesses the MIME type from the file extension.
func ContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return defaultContentType
}
