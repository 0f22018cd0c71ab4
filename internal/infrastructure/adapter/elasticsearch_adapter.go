package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olivere/elastic/v7"
	"github.com/sony/gobreaker"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/config"
)

type ElasticsearchOptions struct {
	URLs        []string
	Username    string
	Password    string
	Sniff       bool
	Healthcheck bool
	Breaker     BreakerOptions
}

type BreakerOptions struct {
	MaxFailures  uint32
	ResetTimeout time.Duration
	Interval     time.Duration
}

type ElasticsearchAdapter struct {
	client         *elastic.Client
	circuitBreaker *gobreaker.CircuitBreaker
	logger         *slog.Logger
}

func NewElasticsearchAdapter(options ElasticsearchOptions, logger *slog.Logger) (*ElasticsearchAdapter, error) {
	clientOptions := []elastic.ClientOptionFunc{
		elastic.SetURL(options.URLs...),
		elastic.SetSniff(options.Sniff),
		elastic.SetHealthcheck(options.Healthcheck),
	}
	if options.Username != "" {
		clientOptions = append(clientOptions, elastic.SetBasicAuth(options.Username, options.Password))
	}

	client, err := elastic.NewClient(clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create elasticsearch client: %v", search.ErrEngineUnavailable, err)
	}

	logger.Info("Elasticsearch client created", "urls", options.URLs)
	return NewElasticsearchAdapterWithClient(client, options.Breaker, logger), nil
}

func NewElasticsearchAdapterFromConfig(cfg config.ElasticsearchConfig, logger *slog.Logger) (*ElasticsearchAdapter, error) {
	return NewElasticsearchAdapter(ElasticsearchOptions{
		URLs:        cfg.URLs,
		Username:    cfg.Username,
		Password:    cfg.Password,
		Sniff:       cfg.Sniff,
		Healthcheck: cfg.Healthcheck,
		Breaker: BreakerOptions{
			MaxFailures:  cfg.Breaker.MaxFailures,
			ResetTimeout: cfg.Breaker.ResetTimeout,
			Interval:     cfg.Breaker.Interval,
		},
	}, logger)
}

func NewElasticsearchAdapterWithClient(client *elastic.Client, breaker BreakerOptions, logger *slog.Logger) *ElasticsearchAdapter {
	cbSettings := gobreaker.Settings{
		Name:        "elasticsearch",
		MaxRequests: 1,
		Interval:    breaker.Interval,
		Timeout:     breaker.ResetTimeout,
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, search.ErrEngineUnavailable) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	maxFailures := breaker.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	cbSettings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= maxFailures
	}

	return &ElasticsearchAdapter{
		client:         client,
		circuitBreaker: gobreaker.NewCircuitBreaker(cbSettings),
		logger:         logger,
	}
}

func (e *ElasticsearchAdapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	query, err := toElasticQuery(req.Query)
	if err != nil {
		return nil, err
	}

	service := e.client.Search().
		Index(req.Index).
		Query(query).
		Size(req.Size).
		TrackTotalHits(true)

	if req.Size > 0 {
		service = service.From(req.From)
	}

	for _, s := range req.Sorts {
		sorter, err := toElasticSorter(s)
		if err != nil {
			return nil, err
		}
		service = service.SortBy(sorter)
	}

	for _, agg := range req.Aggregations {
		service = service.Aggregation(agg.Name, elastic.NewTermsAggregation().Field(agg.Field).Size(agg.Size))
	}

	raw, err := e.circuitBreaker.Execute(func() (interface{}, error) {
		result, err := service.Do(ctx)
		if err != nil {
			return nil, classifyElasticError(err)
		}
		return result, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", search.ErrEngineUnavailable, err)
		}
		e.logger.Error("Elasticsearch search failed", "index", req.Index, "error", err)
		return nil, err
	}

	return toSearchResponse(raw.(*elastic.SearchResult), req.Aggregations), nil
}

func (e *ElasticsearchAdapter) HealthCheck(ctx context.Context) error {
	health, err := e.client.ClusterHealth().Do(ctx)
	if err != nil {
		return fmt.Errorf("elasticsearch health check failed: %w", classifyElasticError(err))
	}
	if health.Status == "red" {
		return fmt.Errorf("%w: cluster %s status is red", search.ErrEngineUnavailable, health.ClusterName)
	}
	return nil
}

func (e *ElasticsearchAdapter) Close() {
	e.client.Stop()
}

func toElasticQuery(p search.Predicate) (elastic.Query, error) {
	switch q := p.(type) {
	case search.MatchAll:
		return elastic.NewMatchAllQuery(), nil
	case search.Match:
		return elastic.NewMatchQuery(q.Field, q.Value), nil
	case search.Term:
		return elastic.NewTermQuery(q.Field, q.Value), nil
	case search.Range:
		return elastic.NewRangeQuery(q.Field).Gte(q.Gte).Lte(q.Lte), nil
	case search.And:
		boolQuery := elastic.NewBoolQuery()
		for _, m := range q.Must {
			inner, err := toElasticQuery(m)
			if err != nil {
				return nil, err
			}
			boolQuery = boolQuery.Must(inner)
		}
		return boolQuery, nil
	case search.FunctionScore:
		inner, err := toElasticQuery(q.Query)
		if err != nil {
			return nil, err
		}
		filter, err := toElasticQuery(q.Filter)
		if err != nil {
			return nil, err
		}
		return elastic.NewFunctionScoreQuery().
			Query(inner).
			Add(filter, elastic.NewWeightFactorFunction(q.Weight)).
			BoostMode(q.BoostMode), nil
	default:
		return nil, fmt.Errorf("%w: unsupported predicate %T", search.ErrEngineQueryRejected, p)
	}
}

func toElasticSorter(s search.Sort) (elastic.Sorter, error) {
	switch v := s.(type) {
	case search.GeoDistanceSort:
		return elastic.NewGeoDistanceSort(v.Field).
			Point(v.Point.Lat, v.Point.Lon).
			Unit(v.Unit).
			Asc(), nil
	case search.FieldSort:
		return elastic.NewFieldSort(v.Field).Order(v.Ascending), nil
	default:
		return nil, fmt.Errorf("%w: unsupported sort %T", search.ErrEngineQueryRejected, s)
	}
}

func toSearchResponse(result *elastic.SearchResult, aggregations []search.TermsAggregation) *search.Response {
	response := &search.Response{
		Total: result.TotalHits(),
	}

	if result.Hits != nil {
		response.Hits = make([]search.Hit, 0, len(result.Hits.Hits))
		for _, hit := range result.Hits.Hits {
			response.Hits = append(response.Hits, search.Hit{
				ID:     hit.Id,
				Source: hit.Source,
				Sort:   hit.Sort,
			})
		}
	}

	if len(aggregations) > 0 {
		response.Aggregations = make(map[string][]search.Bucket, len(aggregations))
		for _, agg := range aggregations {
			terms, found := result.Aggregations.Terms(agg.Name)
			if !found {
				continue
			}
			buckets := make([]search.Bucket, 0, len(terms.Buckets))
			for _, bucket := range terms.Buckets {
				buckets = append(buckets, search.Bucket{
					Key:      bucketKey(bucket),
					DocCount: bucket.DocCount,
				})
			}
			response.Aggregations[agg.Name] = buckets
		}
	}

	return response
}

func bucketKey(bucket *elastic.AggregationBucketKeyItem) string {
	if bucket.KeyAsString != nil {
		return *bucket.KeyAsString
	}
	return fmt.Sprint(bucket.Key)
}

// classifyElasticError maps a client error onto the engine error kinds.
// 400, 404 and request bodies that cannot be encoded are the caller's fault;
// everything else is transport.
func classifyElasticError(err error) error {
	var elasticErr *elastic.Error
	if errors.As(err, &elasticErr) {
		switch elasticErr.Status {
		case http.StatusBadRequest, http.StatusNotFound:
			return fmt.Errorf("%w: %s", search.ErrEngineQueryRejected, elasticErrorReason(elasticErr))
		default:
			return fmt.Errorf("%w: %s", search.ErrEngineUnavailable, elasticErrorReason(elasticErr))
		}
	}
	if isEncodingError(err) {
		return fmt.Errorf("%w: request not encodable: %w", search.ErrEngineQueryRejected, err)
	}
	return fmt.Errorf("%w: %w", search.ErrEngineUnavailable, err)
}

// isEncodingError reports whether err happened while serializing the request
// body, before anything was sent.
func isEncodingError(err error) bool {
	var unsupportedValue *json.UnsupportedValueError
	var unsupportedType *json.UnsupportedTypeError
	var marshalerErr *json.MarshalerError
	return errors.As(err, &unsupportedValue) || errors.As(err, &unsupportedType) || errors.As(err, &marshalerErr)
}

func elasticErrorReason(err *elastic.Error) string {
	if err.Details != nil && err.Details.Reason != "" {
		return fmt.Sprintf("status %d: %s: %s", err.Status, err.Details.Type, err.Details.Reason)
	}
	return fmt.Sprintf("status %d", err.Status)
}
