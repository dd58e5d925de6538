package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"

	"modelvault/file"
	"modelvault/load"
	"modelvault/models"
)

const maxProjectFiles = 10

var errInvalidForm = errors.New("invalid multipart form")

// parseForm parses a multipart body. A request that is not multipart at
// all yields an empty form so callers see "no file" rather than an error.
func (s *Server) parseForm(r *http.Request) (*multipart.Form, error) {
	err := r.ParseMultipartForm(s.maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return &multipart.Form{}, nil
	}
	if err != nil {
		slog.Warn("failed to parse multipart form", "error", err)
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	return r.MultipartForm, nil
}

// removeForm drops temporary files the multipart parser spilled to disk.
func removeForm(r *http.Request) {
	if r.MultipartForm != nil {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("failed to remove multipart temp files", "error", err)
		}
	}
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// openedUploads keeps the multipart files behind a set of uploads so they
// can be closed once the request is done.
type openedUploads struct {
	uploads []*load.Upload
	files   []multipart.File
}

func (o *openedUploads) Close() {
	for _, f := range o.files {
		f.Close()
	}
}

func (o *openedUploads) totalSize() int64 {
	var total int64
	for _, up := range o.uploads {
		total += up.Size
	}
	return total
}

func openUploads(headers []*multipart.FileHeader) (*openedUploads, error) {
	opened := &openedUploads{}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			opened.Close()
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
		}
		opened.files = append(opened.files, f)
		opened.uploads = append(opened.uploads, &load.Upload{
			OriginalName: filepath.Base(fh.Filename),
			ContentType:  uploadContentType(fh),
			Size:         fh.Size,
			Body:         f,
		})
	}
	return opened, nil
}

func uploadContentType(fh *multipart.FileHeader) string {
	if contentType := fh.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}
	return file.ContentType(fh.Filename)
}

type projectForm struct {
	name        string
	description string
	files       *openedUploads
}

func (s *Server) parseProjectForm(r *http.Request) (*projectForm, error) {
	form, err := s.parseForm(r)
	if err != nil {
		return nil, err
	}

	// Parts under different field names lose their relative order once
	// parsed, so a request must pick one name.
	plain, bracketed := form.File["files"], form.File["files[]"]
	if len(plain) > 0 && len(bracketed) > 0 {
		return nil, fmt.Errorf("%w: files sent under both \"files\" and \"files[]\"", errInvalidForm)
	}
	headers := slices.Concat(plain, bracketed)
	if len(headers) > maxProjectFiles {
		return nil, fmt.Errorf("%w: got %d, limit is %d", models.ErrTooManyFiles, len(headers), maxProjectFiles)
	}

	files, err := openUploads(headers)
	if err != nil {
		return nil, err
	}

	return &projectForm{
		name:        formValue(form, "name"),
		description: formValue(form, "description"),
		files:       files,
	}, nil
}

func (p *projectForm) input() load.ProjectInput {
	return load.ProjectInput{
		Name:        p.name,
		Description: p.description,
		Files:       p.files.uploads,
	}
}

// parseModelForm returns the single "file" part, or nil uploads when the
// request carries none.
func (s *Server) parseModelForm(r *http.Request) (*openedUploads, error) {
	form, err := s.parseForm(r)
	if err != nil {
		return nil, err
	}

	headers := form.File["file"]
	if len(headers) > 1 {
		headers = headers[:1]
	}
	return openUploads(headers)
}

func (o *openedUploads) first() *load.Upload {
	if len(o.uploads) == 0 {
		return nil
	}
	return o.uploads[0]
}
