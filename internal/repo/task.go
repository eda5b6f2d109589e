package repo

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/BuzzLyutic/task-registry-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

// TaskRepo хранит задачи в памяти процесса, в порядке вставки.
// Каждая операция выполняется под одной блокировкой.
type TaskRepo struct {
	mu    sync.RWMutex
	tasks []model.Task
}

func NewTaskRepo() *TaskRepo { // Конструктор
	return &TaskRepo{
		tasks: make([]model.Task, 0),
	}
}

// Create assigns id = len+1. After a delete this can repeat a live id.
func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = int64(len(r.tasks)) + 1
	r.tasks = append(r.tasks, t.Clone())
	return t.Clone(), nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.tasks[i].Clone(), nil
	}
	return model.Task{}, ErrorNotFound
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if keyword != "" && !strings.Contains(strings.ToLower(t.Title), keyword) {
			continue
		}
		tasks = append(tasks, t.Clone())
	}
	return tasks, nil
}

// Replace overwrites the whole record in place; t.ID selects it.
func (r *TaskRepo) Replace(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(t.ID)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}
	r.tasks[i] = t.Clone()
	return t.Clone(), nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrorNotFound
	}
	r.tasks = slices.Delete(r.tasks, i, i+1)
	return nil
}

func (r *TaskRepo) Stats(ctx context.Context) (model.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := model.TaskStats{Total: len(r.tasks)}
	for _, t := range r.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	return stats, nil
}

// indexOf returns the position of the first task with the given id, or -1.
// Caller must hold r.mu.
func (r *TaskRepo) indexOf(id int64) int {
	return slices.IndexFunc(r.tasks, func(t model.Task) bool { return t.ID == id })
}
