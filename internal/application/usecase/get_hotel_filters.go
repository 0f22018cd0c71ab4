package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

type GetHotelFiltersUseCase struct {
	searchEngine search.Engine
	logger       *slog.Logger
}

func NewGetHotelFiltersUseCase(
	searchEngine search.Engine,
	logger *slog.Logger,
) *GetHotelFiltersUseCase {
	return &GetHotelFiltersUseCase{
		searchEngine: searchEngine,
		logger:       logger,
	}
}

// Execute returns the brand, city and star values present among the hotels
// matching filter. Pagination and location are ignored.
func (uc *GetHotelFiltersUseCase) Execute(ctx context.Context, filter search.Filter) (search.FilterFacets, error) {
	startTime := time.Now()

	request := &search.Request{
		Index: search.HotelIndex,
		Query: search.BuildQuery(filter),
		Size:  0,
	}
	for _, facet := range search.FacetOrder {
		request.Aggregations = append(request.Aggregations, search.FacetAggregations[facet])
	}

	response, err := uc.searchEngine.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search engine error: %w", err)
	}

	facets := make(search.FilterFacets, len(search.FacetOrder))
	for _, facet := range search.FacetOrder {
		aggregation := search.FacetAggregations[facet]

		buckets, ok := response.Aggregations[aggregation.Name]
		if !ok {
			uc.logger.Error("Aggregation missing from engine response", "aggregation", aggregation.Name)
			return nil, fmt.Errorf("%w: %s", search.ErrAggregationMissing, aggregation.Name)
		}

		if len(buckets) > aggregation.Size {
			buckets = buckets[:aggregation.Size]
		}

		values := make([]string, 0, len(buckets))
		for _, bucket := range buckets {
			values = append(values, bucket.Key)
		}
		facets[facet] = values
	}

	uc.logger.Debug("Hotel filters computed",
		"brands", len(facets[search.FacetBrand]),
		"cities", len(facets[search.FacetCity]),
		"stars", len(facets[search.FacetStarName]),
		"duration", time.Since(startTime))

	return facets, nil
}
