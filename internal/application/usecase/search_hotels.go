package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

type SearchHotelsUseCase struct {
	searchEngine search.Engine
	logger       *slog.Logger
}

func NewSearchHotelsUseCase(
	searchEngine search.Engine,
	logger *slog.Logger,
) *SearchHotelsUseCase {
	return &SearchHotelsUseCase{
		searchEngine: searchEngine,
		logger:       logger,
	}
}

// Execute runs a paginated hotel search. When filter.Location is set the hits
// are sorted by distance and each document carries it.
func (uc *SearchHotelsUseCase) Execute(ctx context.Context, filter search.Filter) (*search.PageResult, error) {
	startTime := time.Now()

	request, err := uc.buildRequest(filter)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Searching hotels",
		"intent", search.DescribeQuery(request.Query),
		"from", request.From,
		"size", request.Size,
		"geo_sort", request.HasGeoSort())

	response, err := uc.searchEngine.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search engine error: %w", err)
	}

	result := uc.decodeHits(response, request.HasGeoSort())

	uc.logger.Debug("Hotel search completed",
		"total", result.Total,
		"returned", len(result.Hotels),
		"skipped", result.Skipped,
		"duration", time.Since(startTime))

	return result, nil
}

func (uc *SearchHotelsUseCase) buildRequest(filter search.Filter) (*search.Request, error) {
	_, size, offset := filter.Window()

	request := &search.Request{
		Index: search.HotelIndex,
		Query: search.BuildQuery(filter),
		From:  offset,
		Size:  size,
	}

	if filter.HasLocation() {
		point, err := search.ParseLocation(filter.Location)
		if err != nil {
			return nil, err
		}
		request.Sorts = append(request.Sorts, search.GeoDistanceSort{
			Field: search.FieldLocation,
			Point: point,
			Unit:  search.UnitKilometers,
		})
	}

	// Field sorts go after the geo sort so the first sort value stays the distance.
	if fieldSort, ok := filter.FieldSort(); ok {
		request.Sorts = append(request.Sorts, fieldSort)
	}

	return request, nil
}

func (uc *SearchHotelsUseCase) decodeHits(response *search.Response, geoSorted bool) *search.PageResult {
	result := &search.PageResult{
		Total:  response.Total,
		Hotels: make([]*hotel.Document, 0, len(response.Hits)),
	}

	for _, hit := range response.Hits {
		document, err := hotel.DecodeDocument(hit.Source)
		if err != nil {
			uc.logger.Warn("Skipping undecodable hotel hit", "hit_id", hit.ID, "error", err)
			result.Skipped++
			continue
		}

		// A geo sorted page only carries hotels with a distance.
		if geoSorted {
			distance, ok := hitDistance(hit)
			if !ok {
				uc.logger.Warn("Skipping hotel hit without a distance sort value", "hit_id", hit.ID, "sort", hit.Sort)
				result.Skipped++
				continue
			}
			document.Distance = &distance
		}

		result.Hotels = append(result.Hotels, document)
	}

	return result
}

func hitDistance(hit search.Hit) (float64, bool) {
	if len(hit.Sort) == 0 {
		return 0, false
	}
	return sortValueAsFloat(hit.Sort[0])
}

func sortValueAsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
