package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BuzzLyutic/task-registry-api/internal/model"
	"github.com/BuzzLyutic/task-registry-api/internal/repo"
)

// Общий валидатор; поля называются по json-тегам
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := s.validate(in); err != nil { // Валидация модели на корректность введенных данных
		return model.Task{}, err
	}
	return s.repo.Create(ctx, in.ToTask())
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx, model.TaskFilter{})
}

// Replace overwrites every field; fields missing from in get their defaults.
func (s *TaskService) Replace(ctx context.Context, id int64, in model.TaskInput) (model.Task, error) {
	if err := s.validate(in); err != nil {
		return model.Task{}, err
	}
	t := in.ToTask()
	t.ID = id
	return s.repo.Replace(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Search matches keyword against titles only. An empty keyword lists everything.
func (s *TaskService) Search(ctx context.Context, keyword string) ([]model.Task, error) {
	return s.repo.List(ctx, model.TaskFilter{Keyword: keyword})
}

func (s *TaskService) Stats(ctx context.Context) (model.TaskStats, error) {
	return s.repo.Stats(ctx)
}

func (s *TaskService) validate(in model.TaskInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError(fe))
	}
	return NewValidationError(fields...)
}

func fieldError(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: "missing"}
	default:
		return FieldError{Loc: loc, Msg: fmt.Sprintf("Field failed on the '%s' rule", fe.Tag()), Type: fe.Tag()}
	}
}
