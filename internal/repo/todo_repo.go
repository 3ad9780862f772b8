package repo

import (
	"context"
	"fmt"
	"time"

	dom "github.com/chelishino05/todo-devops-app/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo is the durable store for todos. Implementations own all
// transactional semantics; every error returned belongs to the domain
// taxonomy (ErrNotFound, ErrValidation, StorageError).
type TodoRepo interface {
	Create(ctx context.Context, in dom.TodoInput) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (dom.Stats, error)
	Ping(ctx context.Context) error
}

const todoColumns = `id, title, description, completed, due_date, created_at, updated_at`

type PGTodoRepo struct {
	db        *pgxpool.Pool
	opTimeout time.Duration
}

// NewPGTodoRepo returns a Postgres-backed TodoRepo. Every operation runs
// under opTimeout; a write that cannot finish in time fails as unavailable
// instead of hanging.
func NewPGTodoRepo(db *pgxpool.Pool, opTimeout time.Duration) *PGTodoRepo {
	return &PGTodoRepo{db: db, opTimeout: opTimeout}
}

func (r *PGTodoRepo) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

func (r *PGTodoRepo) Create(ctx context.Context, in dom.TodoInput) (dom.Todo, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Todo{}, translate("create", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO todos (title, description, due_date)
		VALUES ($1, $2, $3)
		RETURNING ` + todoColumns
	var out dom.Todo
	err = tx.QueryRow(ctx, query, in.Title, in.Description, in.DueDate).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.DueDate,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, translate("create", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Todo{}, translate("create", err)
	}
	return out, nil
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, translate("get", err)
	}
	return t, nil
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	// Insertion order, oldest first. The id tiebreak keeps the order stable
	// when two rows share a creation timestamp.
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate("list", err)
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, translate("list", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list", err)
	}
	return list, nil
}

// Update applies only the fields the patch sets, in a single UPDATE so a
// concurrent reader never sees a half-applied patch. An empty patch is a
// plain read.
func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	set := "updated_at = NOW()"
	args := []any{id}
	idx := 2
	if patch.Title != nil {
		set += fmt.Sprintf(", title = $%d", idx)
		args = append(args, *patch.Title)
		idx++
	}
	if patch.Description != nil {
		set += fmt.Sprintf(", description = $%d", idx)
		args = append(args, *patch.Description)
		idx++
	}
	if patch.Completed != nil {
		set += fmt.Sprintf(", completed = $%d", idx)
		args = append(args, *patch.Completed)
		idx++
	}
	if patch.SetDueDate {
		set += fmt.Sprintf(", due_date = $%d", idx)
		args = append(args, patch.DueDate)
		idx++
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Todo{}, translate("update", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE todos SET ` + set + ` WHERE id = $1 RETURNING ` + todoColumns
	var t dom.Todo
	err = tx.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, translate("update", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Todo{}, translate("update", err)
	}
	return t, nil
}

// Delete removes the row. Ids come from a sequence, so a deleted id is never
// handed out again.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translate("delete", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return translate("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return dom.ErrNotFound
	}
	return translate("delete", tx.Commit(ctx))
}

// Stats counts live rows in a single query so the three numbers are always
// consistent with each other.
func (r *PGTodoRepo) Stats(ctx context.Context) (dom.Stats, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM todos`
	var s dom.Stats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Completed); err != nil {
		return dom.Stats{}, translate("stats", err)
	}
	s.Pending = s.Total - s.Completed
	return s, nil
}

// Ping reports whether the database is reachable.
func (r *PGTodoRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	return translate("ping", r.db.Ping(ctx))
}
