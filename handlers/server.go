package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"modelvault/config"
	"modelvault/load"
	"modelvault/models"
)

const readHeaderTimeout = 10 * time.Second

// LoadManager is the project and model lifecycle the handlers drive.
type LoadManager interface {
	CreateProject(ctx context.Context, in load.ProjectInput) (models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in load.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	UploadModel(ctx context.Context, up *load.Upload) (string, error)
	GetModel(ctx context.Context, id string) (*models.StoredObject, error)
	UpdateModel(ctx context.Context, id string, up *load.Upload) error
	DeleteModel(ctx context.Context, id string) error
	ListModels(ctx context.Context) ([]string, error)
}

type Server struct {
	HTTPServer      *http.Server
	Ctx             context.Context
	Router          *chi.Mux
	loadManager     LoadManager
	metrics         *Metrics
	maxUploadMemory int64
}

func NewServer(ctx context.Context, lm LoadManager, cfg config.AppConfig) *Server {
	router := chi.NewRouter()

	s := &Server{
		Router:          router,
		Ctx:             ctx,
		loadManager:     lm,
		metrics:         NewMetrics(),
		maxUploadMemory: cfg.MaxUploadMemory,
	}

	setupRoutes(s)

	s.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	slog.Info("server created", "address", s.HTTPServer.Addr)

	return s
}

func setupRoutes(s *Server) {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(s.requestLogger)
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/health", s.Health)
	s.Router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.Router.Post("/create-project", s.CreateProject)
	s.Router.Get("/get-project/{directoryId}", s.GetProject)
	s.Router.Post("/update-project/{directoryId}", s.UpdateProject)
	s.Router.Delete("/delete-project/{directoryId}", s.DeleteProject)

	s.Router.Post("/upload-model", s.UploadModel)
	s.Router.Get("/get-model/{fileId}", s.GetModel)
	s.Router.Post("/update-model/{fileId}", s.UpdateModel)
	s.Router.Delete("/delete-model/{fileId}", s.DeleteModel)
	s.Router.Get("/all-models", s.AllModels)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
