package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-registry-api/internal/handler"
	"github.com/BuzzLyutic/task-registry-api/internal/metrics"
	"github.com/BuzzLyutic/task-registry-api/pkg/respond"
)

type Deps struct {
	Tasks       *handler.TaskHandler
	Logger      *zap.Logger
	Metrics     *metrics.Metrics // nil disables instrumentation and the scrape route
	MetricsPath string
}

func New(d Deps) http.Handler {
	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", d.Tasks.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", d.Tasks.Create)
		r.Get("/", d.Tasks.List)
		r.Get("/{task_id}", d.Tasks.Get)
		r.Put("/{task_id}", d.Tasks.Replace)
		r.Delete("/{task_id}", d.Tasks.Delete)
	})

	r.Route("/search", func(r chi.Router) {
		r.Get("/", d.Tasks.Search)
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, d.MetricsPath, d.Metrics.Handler())
	}

	return r
}
