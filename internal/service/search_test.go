package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

func newTestSearch(properties []model.Property) *SearchService {
	store := &fakePropertyStore{properties: properties}
	return NewSearchService(store, 20, 6, zap.NewNop())
}

func TestSearch_QueryOnly(t *testing.T) {
	svc := newTestSearch(testListings())

	resp, err := svc.Search(context.Background(), &model.SearchRequest{Query: "flat in kathmandu"})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Thamel Studio", resp.Results[0].Title)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Parsed)
	assert.Equal(t, "Kathmandu", *resp.Parsed.Location)
	assert.GreaterOrEqual(t, resp.Took, int64(0))
}

func TestSearch_ExplicitFiltersWin(t *testing.T) {
	svc := newTestSearch(testListings())

	// The query says Kathmandu but the explicit filter pins Pokhara.
	location := "Pokhara"
	resp, err := svc.Search(context.Background(), &model.SearchRequest{
		Query:   "flat in kathmandu",
		Filters: &model.SearchFilters{Location: &location},
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Lakeside Flat", resp.Results[0].Title)
}

func TestSearch_ParsedFillsGaps(t *testing.T) {
	svc := newTestSearch(testListings())

	maxPrice := 30000.0
	resp, err := svc.Search(context.Background(), &model.SearchRequest{
		Query:   "house in kathmandu",
		Filters: &model.SearchFilters{MaxPrice: &maxPrice},
	})
	require.NoError(t, err)

	// Explicit max price plus parsed location and type.
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Sunny Family House", resp.Results[0].Title)
}

func TestSearch_ResultsAreScored(t *testing.T) {
	svc := newTestSearch(testListings())

	resp, err := svc.Search(context.Background(), &model.SearchRequest{Query: "flat in pokhara for 12 months"})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	result := resp.Results[0]
	assert.NotEmpty(t, result.BestFor)
	require.NotNil(t, result.FairFlex)
	assert.Equal(t, 12, result.FairFlex.DurationMonths)
	assert.Equal(t, 15, result.FairFlex.DiscountPercent)
}

func TestSearch_DefaultDurationWhenNoneGiven(t *testing.T) {
	svc := newTestSearch(testListings())

	resp, err := svc.Search(context.Background(), &model.SearchRequest{Query: "flat in pokhara"})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].FairFlex)
	assert.Equal(t, 6, resp.Results[0].FairFlex.DurationMonths)
}
