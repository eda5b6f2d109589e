package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-registry-api/internal/repo"
	"github.com/BuzzLyutic/task-registry-api/internal/service"
	"github.com/BuzzLyutic/task-registry-api/pkg/respond"
)

const msgTaskNotFound = "Task not found"

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// Health отвечает фиксированным статусом
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "API is running"})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTask(r)
	if err != nil {
		h.logger.Debug("failed to decode task", zap.Error(err))
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Debug("task created", zap.Int64("task_id", task.ID))
	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	req, err := decodeTask(r)
	if err != nil {
		h.logger.Debug("failed to decode task", zap.Error(err))
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Replace(r.Context(), id, req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Debug("task deleted", zap.Int64("task_id", id))
	respond.NoContent(w, r)
}

func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, msgTaskNotFound)
	case errors.As(err, &verr):
		respond.Detail(w, r, http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
