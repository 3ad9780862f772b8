package domain

import "time"

// Todo is the domain entity. It does not depend on Gin, Postgres or Redis.
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoInput is the validated shape for creating a todo. Description and
// DueDate are optional; a nil Description is distinct from an empty one.
type TodoInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

// TodoPatch is a partial update. Nil fields are left untouched.
// SetDueDate marks that DueDate was explicitly provided, so a nil DueDate
// with SetDueDate=true clears the stored value.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	SetDueDate  bool
}

// Empty reports whether the patch touches nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && !p.SetDueDate
}

// Stats is the aggregate over live todos. Pending = Total - Completed.
type Stats struct {
	Total     int64
	Completed int64
	Pending   int64
}
