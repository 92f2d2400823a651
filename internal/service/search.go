package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// SearchService turns parsed queries into storage-layer lookups and decorates
// each candidate with the derived recommendation fields.
type SearchService struct {
	store           PropertyStore
	defaultLimit    int
	defaultDuration int
	logger          *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(store PropertyStore, defaultLimit, defaultDuration int, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:           store,
		defaultLimit:    defaultLimit,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Search parses the free-text query, merges explicit filters and runs the lookup
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	parsed := ParseQuery(req.Query)
	filters := s.mergeFilters(req.Filters, parsed)

	duration := s.defaultDuration
	if filters.Duration != nil {
		duration = *filters.Duration
	}

	results, err := s.execute(ctx, filters, duration)
	if err != nil {
		return nil, err
	}

	return &model.SearchResponse{
		Results: results,
		Total:   len(results),
		Parsed:  parsed,
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// SearchParsed runs the lookup for an already parsed query. Only approved,
// active listings are considered; results are capped and newest-first.
func (s *SearchService) SearchParsed(ctx context.Context, parsed *model.ParsedQuery, durationMonths int) ([]model.ScoredProperty, error) {
	filters := s.mergeFilters(nil, parsed)
	if durationMonths == 0 {
		durationMonths = s.defaultDuration
		if parsed.Duration != nil {
			durationMonths = *parsed.Duration
		}
	}
	return s.execute(ctx, filters, durationMonths)
}

func (s *SearchService) execute(ctx context.Context, filters *model.SearchFilters, durationMonths int) ([]model.ScoredProperty, error) {
	properties, err := s.store.Search(ctx, filters, s.defaultLimit)
	if err != nil {
		s.logger.Error("property search failed", zap.Error(err))
		return nil, err
	}

	results := make([]model.ScoredProperty, 0, len(properties))
	for _, p := range properties {
		results = append(results, ScoreProperty(p, durationMonths))
	}
	return results, nil
}

// mergeFilters merges explicit filters with parsed query fields; explicit
// filters win, parsed fields fill the gaps.
func (s *SearchService) mergeFilters(explicit *model.SearchFilters, parsed *model.ParsedQuery) *model.SearchFilters {
	merged := &model.SearchFilters{}
	if explicit != nil {
		*merged = *explicit
	}

	if parsed != nil {
		if merged.Location == nil && parsed.Location != nil {
			merged.Location = parsed.Location
		}
		if merged.MinPrice == nil && parsed.MinPrice != nil {
			merged.MinPrice = parsed.MinPrice
		}
		if merged.MaxPrice == nil && parsed.MaxPrice != nil {
			merged.MaxPrice = parsed.MaxPrice
		}
		if merged.Type == nil && parsed.Type != nil {
			merged.Type = parsed.Type
		}
		if merged.Bedrooms == nil && parsed.Bedrooms != nil {
			merged.Bedrooms = parsed.Bedrooms
		}
		if merged.Duration == nil && parsed.Duration != nil {
			merged.Duration = parsed.Duration
		}
		if merged.Verified == nil && parsed.HasPreference(model.PrefVerified) {
			verified := true
			merged.Verified = &verified
		}
	}

	return merged
}
