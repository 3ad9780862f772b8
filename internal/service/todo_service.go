package service

import (
	"context"

	"github.com/chelishino05/todo-devops-app/internal/cache"
	dom "github.com/chelishino05/todo-devops-app/internal/domain"
	"github.com/chelishino05/todo-devops-app/internal/metrics"
	"github.com/chelishino05/todo-devops-app/internal/repo"

	"golang.org/x/sync/singleflight"
)

// TodoService orchestrates validation, the store, the optional list cache
// and operation metrics. It adds no state of its own.
type TodoService struct {
	repo    repo.TodoRepo
	cache   *cache.TodoCache
	metrics *metrics.Recorder
	sf      singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled;
// if m is nil, metrics are disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache, m *metrics.Recorder) *TodoService {
	return &TodoService{repo: r, cache: c, metrics: m}
}

func (s *TodoService) Create(ctx context.Context, in dom.TodoInput) (dom.Todo, error) {
	if err := in.Validate(); err != nil {
		s.metrics.Record("create", err)
		return dom.Todo{}, err
	}
	t, err := s.repo.Create(ctx, in)
	s.metrics.Record("create", err)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	s.metrics.Record("get", err)
	return t, err
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache == nil {
		list, err := s.repo.List(ctx)
		s.metrics.Record("list", err)
		return list, err
	}
	v, err, _ := s.sf.Do("list", func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, list)
		return list, nil
	})
	s.metrics.Record("list", err)
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

func (s *TodoService) Update(ctx context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	if err := patch.Validate(); err != nil {
		s.metrics.Record("update", err)
		return dom.Todo{}, err
	}
	t, err := s.repo.Update(ctx, id, patch)
	s.metrics.Record("update", err)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Complete marks a todo done. It is a partial update touching only the
// completed flag.
func (s *TodoService) Complete(ctx context.Context, id int64) (dom.Todo, error) {
	done := true
	t, err := s.repo.Update(ctx, id, dom.TodoPatch{Completed: &done})
	s.metrics.Record("complete", err)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.metrics.Record("delete", err)
	if err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Stats always hits the store; health numbers must reflect current state.
func (s *TodoService) Stats(ctx context.Context) (dom.Stats, error) {
	st, err := s.repo.Stats(ctx)
	s.metrics.Record("stats", err)
	return st, err
}

// Ping reports store reachability for the health endpoint.
func (s *TodoService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
