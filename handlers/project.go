package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
)

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	defer removeForm(r)

	form, err := s.parseProjectForm(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	defer form.files.Close()

	project, err := s.loadManager.CreateProject(r.Context(), form.input())
	if err != nil {
		sendError(w, r, err)
		return
	}
	s.metrics.addUploaded(form.files.totalSize())

	slog.Info("project created", "project_id", project.ID, "files", len(project.Files))
	sendJSON(w, http.StatusCreated, projectCreatedResponse{DirectoryDetails: project, Message: msgProjectCreated})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.loadManager.GetProject(r.Context(), chi.URLParam(r, "directoryId"))
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, project)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	directoryID := chi.URLParam(r, "directoryId")
	defer removeForm(r)

	form, err := s.parseProjectForm(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	defer form.files.Close()

	project, err := s.loadManager.UpdateProject(r.Context(), directoryID, form.input())
	if err != nil {
		sendError(w, r, err)
		return
	}
	s.metrics.addUploaded(form.files.totalSize())

	sendJSON(w, http.StatusOK, projectUpdatedResponse{UpdatedDirectory: project, Message: msgProjectUpdated})
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.loadManager.DeleteProject(r.Context(), chi.URLParam(r, "directoryId")); err != nil {
		sendError(w, r, err)
		return
	}
	sendMessage(w, http.StatusOK, msgProjectDeleted)
}
