package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BuzzLyutic/task-registry-api/internal/model"
	"github.com/BuzzLyutic/task-registry-api/internal/repo"
	"github.com/BuzzLyutic/task-registry-api/internal/service"
)

const taskIDParam = "task_id"

// decodeTask reads a TaskInput body. Keys are matched exactly, so "Title"
// does not stand in for "title". Decoding failures come back as
// *service.ValidationError so they render like any other 422.
func decodeTask(r *http.Request) (model.TaskInput, error) {
	var in model.TaskInput

	dec := json.NewDecoder(r.Body)
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return in, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return in, service.NewValidationError(service.FieldError{
			Loc: []string{"body"}, Msg: "JSON decode error: unexpected data after the body", Type: "json_invalid",
		})
	}
	if fields == nil { // тело "null"
		return in, decodeError(io.EOF)
	}

	// id игнорируется, принимаем любое корректное JSON-значение
	in.ID = fields["id"]

	var errs []service.FieldError
	decodeField(fields, "title", &in.Title, &errs)
	decodeField(fields, "description", &in.Description, &errs)
	decodeField(fields, "completed", &in.Completed, &errs)
	if len(errs) > 0 {
		return in, service.NewValidationError(errs...)
	}
	return in, nil
}

func decodeField(fields map[string]json.RawMessage, key string, dst interface{}, errs *[]service.FieldError) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		loc := []string{"body", key}
		want, kind := "a valid value", "type_error"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			want, kind = describeType(typeErr.Type)
		}
		*errs = append(*errs, service.FieldError{Loc: loc, Msg: "Input should be " + want, Type: kind})
	}
}

func decodeError(err error) *service.ValidationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return service.NewValidationError(service.FieldError{
			Loc: []string{"body"}, Msg: "Field required", Type: "missing",
		})
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		want, kind := describeType(typeErr.Type)
		return service.NewValidationError(service.FieldError{
			Loc: loc, Msg: "Input should be " + want, Type: kind,
		})
	default:
		return service.NewValidationError(service.FieldError{
			Loc: []string{"body"}, Msg: fmt.Sprintf("JSON decode error: %v", err), Type: "json_invalid",
		})
	}
}

func describeType(t reflect.Type) (string, string) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "a valid value", "type_error"
	}
	switch t.Kind() {
	case reflect.String:
		return "a valid string", "string_type"
	case reflect.Bool:
		return "a valid boolean", "bool_type"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "a valid integer", "int_type"
	case reflect.Struct, reflect.Map:
		return "a valid dictionary or object to extract fields from", "model_attributes_type"
	default:
		return "a valid value", "type_error"
	}
}

func parseTaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, taskIDParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		// Целое, но вне int64: такой задачи заведомо нет
		return 0, fmt.Errorf("task id %s: %w", raw, repo.ErrorNotFound)
	}
	if err != nil {
		return 0, service.NewValidationError(service.FieldError{
			Loc:  []string{"path", taskIDParam},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
	}
	return id, nil
}
