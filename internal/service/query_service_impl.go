package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/query"
)

type queryService struct {
	executor *query.Executor
	profile  UserService
	observer UseCaseObserver
}

func NewQueryService(executor *query.Executor, profile UserService, observers ...UseCaseObserver) QueryService {
	return &queryService{
		executor: executor,
		profile:  profile,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Run executes a structured query against the full store. Queries are a
// local, single-user surface, so no privacy filter is injected; callers
// narrow visibility with explicit privacy_level filters instead.
func (s *queryService) Run(ctx context.Context, q *query.Query) (result *query.Result, err error) {
	start := time.Now()
	fields := map[string]any{"entity_type": q.EntityType}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "query",
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			StartedAt: start,
		})
	}()

	env, err := s.env(ctx)
	if err != nil {
		return nil, err
	}
	result, err = s.executor.Run(ctx, q, env)
	if err != nil {
		return nil, err
	}
	fields["total_count"] = result.TotalCount
	return result, nil
}

func (s *queryService) RunLoose(ctx context.Context, text string) (*query.Result, error) {
	return s.Run(ctx, query.ParseLoose(text))
}

func (s *queryService) env(ctx context.Context) (query.Env, error) {
	user, err := s.profile.Get(ctx)
	if err != nil {
		return query.Env{}, err
	}
	return query.Env{
		Now:          time.Now().UTC(),
		Location:     user.Location(),
		WeekBoundary: user.WeekBoundary,
		Access:       domain.AccessAll,
	}, nil
}
