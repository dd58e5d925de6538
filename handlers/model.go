package handlers

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi"
)

func (s *Server) UploadModel(w http.ResponseWriter, r *http.Request) {
	defer removeForm(r)

	files, err := s.parseModelForm(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	defer files.Close()

	fileID, err := s.loadManager.UploadModel(r.Context(), files.first())
	if err != nil {
		sendError(w, r, err)
		return
	}
	s.metrics.addUploaded(files.totalSize())

	sendJSON(w, http.StatusCreated, modelResponse{FileID: fileID, Message: msgModelUploaded})
}

func (s *Server) UpdateModel(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	defer removeForm(r)

	files, err := s.parseModelForm(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	defer files.Close()

	if err := s.loadManager.UpdateModel(r.Context(), fileID, files.first()); err != nil {
		sendError(w, r, err)
		return
	}
	s.metrics.addUploaded(files.totalSize())

	sendJSON(w, http.StatusOK, modelResponse{FileID: fileID, Message: msgModelUpdated})
}

// GetModel streams the stored file. Range and conditional requests are
// handled by http.ServeContent.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")

	object, err := s.loadManager.GetModel(r.Context(), fileID)
	if err != nil {
		sendError(w, r, err)
		return
	}
	defer object.Content.Close()

	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": object.Name}))

	http.ServeContent(w, r, object.Name, object.ModTime, object.Content)
	slog.Info("model sent to client", "file_id", fileID, "stored_name", object.Name, "size", object.Size)
}

func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.loadManager.DeleteModel(r.Context(), chi.URLParam(r, "fileId")); err != nil {
		sendError(w, r, err)
		return
	}
	sendMessage(w, http.StatusOK, msgModelDeleted)
}

func (s *Server) AllModels(w http.ResponseWriter, r *http.Request) {
	files, err := s.loadManager.ListModels(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, files)
}
