package model

import "encoding/json"

type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TaskInput is the request body for create and replace.
// Pointers let validation tell an absent field from a zero value.
// ID is kept raw: any well-formed value is accepted and then ignored.
type TaskInput struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Title       *string         `json:"title" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Completed   *bool           `json:"completed,omitempty"`
}

// ToTask applies field defaults. The input id is never carried over.
func (in TaskInput) ToTask() Task {
	var t Task
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		d := *in.Description
		t.Description = &d
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	return t
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}

type TaskFilter struct {
	Keyword string
}

type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
