package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

type stubEngine struct {
	err error
}

func (s *stubEngine) Search(_ context.Context, _ *search.Request) (*search.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &search.Response{Total: 1}, nil
}

func (s *stubEngine) HealthCheck(_ context.Context) error { return s.err }

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("wrapped: %w", search.ErrEngineUnavailable), "unavailable"},
		{fmt.Errorf("wrapped: %w", search.ErrEngineQueryRejected), "rejected"},
		{search.ErrAggregationMissing, "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}

func TestInstrumentedEngine_RecordsModeAndOutcome(t *testing.T) {
	engine := NewInstrumentedEngine(&stubEngine{})

	before := testutil.ToFloat64(engineRequestsTotal.WithLabelValues("facets", "ok"))
	_, err := engine.Search(context.Background(), &search.Request{
		Size:         0,
		Aggregations: []search.TermsAggregation{search.FacetAggregations[search.FacetBrand]},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(engineRequestsTotal.WithLabelValues("facets", "ok")))

	failing := NewInstrumentedEngine(&stubEngine{err: search.ErrEngineUnavailable})
	before = testutil.ToFloat64(engineRequestsTotal.WithLabelValues("search", "unavailable"))
	_, err = failing.Search(context.Background(), &search.Request{Size: 10})
	require.ErrorIs(t, err, search.ErrEngineUnavailable)
	assert.Equal(t, before+1, testutil.ToFloat64(engineRequestsTotal.WithLabelValues("search", "unavailable")))
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Middleware())
	router.HandleFunc("/hotel/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/hotel/42", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/hotel/{id}", "404")), 1.0)
}
