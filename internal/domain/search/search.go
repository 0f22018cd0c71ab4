package search

import (
	"context"
	"encoding/json"

	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
)

const (
	HotelIndex = "hotel"

	AggBrand = "brandAgg"
	AggCity  = "cityAgg"
	AggStar  = "starAgg"

	FacetBrand    = "brand"
	FacetCity     = "city"
	FacetStarName = "starName"

	MaxFacetBuckets = 100

	UnitKilometers = "km"
)

type Sort interface {
	sort()
}

// GeoDistanceSort orders hits by ascending distance from Point.
type GeoDistanceSort struct {
	Field string
	Point GeoPoint
	Unit  string
}

type FieldSort struct {
	Field     string
	Ascending bool
}

func (GeoDistanceSort) sort() {}
func (FieldSort) sort()       {}

type TermsAggregation struct {
	Name  string
	Field string
	Size  int
}

// Request is one round trip to the engine. Size 0 asks for aggregations only.
type Request struct {
	Index        string
	Query        Predicate
	From         int
	Size         int
	Sorts        []Sort
	Aggregations []TermsAggregation
}

func (r *Request) HasGeoSort() bool {
	for _, s := range r.Sorts {
		if _, ok := s.(GeoDistanceSort); ok {
			return true
		}
	}
	return false
}

type Hit struct {
	ID     string
	Source json.RawMessage
	Sort   []any
}

type Bucket struct {
	Key      string
	DocCount int64
}

type Response struct {
	Total        int64
	Hits         []Hit
	Aggregations map[string][]Bucket
}

// Engine is the document-search boundary. Implementations must be safe for
// concurrent use.
type Engine interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	HealthCheck(ctx context.Context) error
}

type PageResult struct {
	Total   int64             `json:"total"`
	Hotels  []*hotel.Document `json:"hotels"`
	Skipped int               `json:"skipped,omitempty"`
}

// FilterFacets maps a facet name to its distinct values, most frequent first.
type FilterFacets map[string][]string

// FacetAggregations are the terms aggregations requested in facet mode, keyed
// by the facet they fill.
var FacetAggregations = map[string]TermsAggregation{
	FacetBrand:    {Name: AggBrand, Field: FieldBrand, Size: MaxFacetBuckets},
	FacetCity:     {Name: AggCity, Field: FieldCity, Size: MaxFacetBuckets},
	FacetStarName: {Name: AggStar, Field: FieldStarName, Size: MaxFacetBuckets},
}

// FacetOrder fixes the order aggregations are requested in.
var FacetOrder = []string{FacetBrand, FacetCity, FacetStarName}
