package search

import "errors"

var (
	// ErrEngineUnavailable signals a connection or transport failure talking to the engine.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineQueryRejected signals that the engine refused the request as malformed.
	ErrEngineQueryRejected = errors.New("search engine rejected query")
	// ErrInvalidLocation signals a location that is not "lat,lon".
	ErrInvalidLocation = errors.New("invalid location")
	// ErrAggregationMissing signals an expected aggregation absent from the response.
	ErrAggregationMissing = errors.New("aggregation missing from response")
)
