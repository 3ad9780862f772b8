package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/chelishino05/todo-devops-app/internal/domain"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or
// RFC3339. Date-only is stored as start of that day in UTC. The zero value
// means the key was absent; an explicit null means "clear the date".
type DueDate struct {
	t   *time.Time
	set bool
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	d.set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("due_date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

// Set reports whether the key appeared in the JSON body at all.
func (d DueDate) Set() bool { return d.set }

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	DueDate     DueDate `json:"due_date"` // optional: "2026-02-19" or RFC3339
}

// Input converts the request into the domain create shape.
func (r CreateTodoRequest) Input() dom.TodoInput {
	return dom.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.Ptr(),
	}
}

type UpdateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
	DueDate     DueDate `json:"due_date"` // absent = keep, null = clear, value = set
}

// Patch converts the request into the domain partial-update shape.
func (r UpdateTodoRequest) Patch() dom.TodoPatch {
	return dom.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate:     r.DueDate.Ptr(),
		SetDueDate:  r.DueDate.Set(),
	}
}

// TodoResponse always carries all seven attributes; absent optionals are
// emitted as explicit nulls, not omitted.
type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromTodo maps a domain entity to its response shape.
func FromTodo(t dom.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}
