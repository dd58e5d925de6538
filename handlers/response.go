package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"modelvault/models"
)

const (
	msgProjectCreated  = "Directory created successfully"
	msgProjectUpdated  = "Directory updated successfully"
	msgProjectDeleted  = "Directory deleted successfully"
	msgProjectNotFound = "Directory not found"

	msgModelUploaded = "File uploaded successfully"
	msgModelUpdated  = "File uploaded/updated successfully"
	msgModelDeleted  = "File deleted successfully"
	msgFileNotFound  = "File not found"

	msgNoFile        = "No file provided"
	msgTooManyFiles  = "Too many files"
	msgInvalidForm   = "Invalid multipart form"
	msgInternalError = "Internal server error"
)

type messageResponse struct {
	Message string `json:"message"`
}

type projectCreatedResponse struct {
	DirectoryDetails models.Project `json:"directoryDetails"`
	Message          string         `json:"message"`
}

type projectUpdatedResponse struct {
	UpdatedDirectory models.Project `json:"updatedDirectory"`
	Message          string         `json:"message"`
}

type modelResponse struct {
	FileID  string `json:"fileId"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func sendMessage(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, messageResponse{Message: message})
}

// sendError maps lifecycle errors to a status and message. Unknown errors
// are logged and reported as 500.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrProjectNotFound):
		sendMessage(w, http.StatusNotFound, msgProjectNotFound)
	case errors.Is(err, models.ErrModelNotFound), errors.Is(err, models.ErrFileNotFound):
		sendMessage(w, http.StatusNotFound, msgFileNotFound)
	case errors.Is(err, models.ErrNoFile):
		sendMessage(w, http.StatusBadRequest, msgNoFile)
	case errors.Is(err, models.ErrTooManyFiles):
		sendMessage(w, http.StatusBadRequest, msgTooManyFiles)
	case errors.Is(err, errInvalidForm):
		sendMessage(w, http.StatusBadRequest, msgInvalidForm)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		sendMessage(w, http.StatusInternalServerError, msgInternalError)
	}
}
