// internal/app/search/service.go

// Package search executes compiled opportunity queries and assembles result
// pages and suggestion lists.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/opportunityhub/internal/app/search/compiler"
	"github.com/dalemusser/opportunityhub/internal/app/system/suggestcache"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store is the subset of the opportunities store the service needs.
type Store interface {
	Count(ctx context.Context, q compiler.Query) (int64, error)
	Find(ctx context.Context, q compiler.Query) ([]models.Opportunity, error)
	Suggest(ctx context.Context, predicate bson.M, limit int64) ([]models.Suggestion, error)
}

// Service runs searches. It holds no per-request state.
type Service struct {
	store Store
	cache suggestcache.Cache
	log   *zap.Logger
}

// NewService builds a Service. A nil cache disables suggestion caching.
func NewService(store Store, cache suggestcache.Cache, logger *zap.Logger) *Service {
	if cache == nil {
		cache = suggestcache.Nop{}
	}
	return &Service{store: store, cache: cache, log: logger}
}

// Search returns one page of active opportunities matching m.
//
// Count and find run concurrently and are not read from a single snapshot,
// so under concurrent writes Total may disagree with the documents returned
// by one or two. Callers treat Pages as advisory.
func (s *Service) Search(ctx context.Context, m filter.Model) (models.ResultPage, error) {
	n := m.Normalize()
	return s.run(ctx, n, compiler.Compile(n))
}

// List is the plain listing used when the search endpoint is unavailable.
// It honours a restricted facet set and always sorts newest first.
func (s *Service) List(ctx context.Context, m filter.Model) (models.ResultPage, error) {
	n := m.Normalize()
	return s.run(ctx, n, compiler.CompileListing(n))
}

func (s *Service) run(ctx context.Context, n filter.Model, q compiler.Query) (models.ResultPage, error) {
	var (
		total int64
		docs  []models.Opportunity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.store.Count(gctx, q)
		if err != nil {
			return fmt.Errorf("count opportunities: %w", err)
		}
		total = c
		return nil
	})
	g.Go(func() error {
		d, err := s.store.Find(gctx, q)
		if err != nil {
			return fmt.Errorf("find opportunities: %w", err)
		}
		docs = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.ResultPage{}, err
	}

	if docs == nil {
		docs = []models.Opportunity{}
	}
	return models.ResultPage{
		Opportunities: docs,
		Pagination:    models.NewPagination(n.Page, n.Limit, total),
	}, nil
}

// Suggest returns up to compiler.SuggestionLimit title/type/category
// projections for prefix. A prefix shorter than compiler.MinSuggestionLength
// runes yields an empty list without touching the store.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]models.Suggestion, error) {
	p := strings.TrimSpace(prefix)
	if utf8.RuneCountInString(p) < compiler.MinSuggestionLength {
		return []models.Suggestion{}, nil
	}

	if hit, ok := s.cache.Get(ctx, p); ok {
		return hit, nil
	}

	out, err := s.store.Suggest(ctx, compiler.CompileSuggest(p), compiler.SuggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest opportunities: %w", err)
	}
	if out == nil {
		out = []models.Suggestion{}
	}
	s.cache.Set(ctx, p, out)
	return out, nil
}
