package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

type searcherFunc func(ctx context.Context, filter search.Filter) (*search.PageResult, error)

func (f searcherFunc) Execute(ctx context.Context, filter search.Filter) (*search.PageResult, error) {
	return f(ctx, filter)
}

type filterListerFunc func(ctx context.Context, filter search.Filter) (search.FilterFacets, error)

func (f filterListerFunc) Execute(ctx context.Context, filter search.Filter) (search.FilterFacets, error) {
	return f(ctx, filter)
}

type getterFunc func(ctx context.Context, id int64) (*hotel.Hotel, error)

func (f getterFunc) Execute(ctx context.Context, id int64) (*hotel.Hotel, error) {
	return f(ctx, id)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

type testDeps struct {
	searcher HotelSearcher
	lister   FilterLister
	getter   HotelGetter
	health   HealthChecker
}

func newTestRouter(deps testDeps) *mux.Router {
	if deps.searcher == nil {
		deps.searcher = searcherFunc(func(context.Context, search.Filter) (*search.PageResult, error) {
			return &search.PageResult{Hotels: []*hotel.Document{}}, nil
		})
	}
	if deps.lister == nil {
		deps.lister = filterListerFunc(func(context.Context, search.Filter) (search.FilterFacets, error) {
			return search.FilterFacets{}, nil
		})
	}
	if deps.health == nil {
		deps.health = healthFunc(func(context.Context) error { return nil })
	}

	h := NewHotelHandler(deps.searcher, deps.lister, deps.getter, deps.health, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]json.RawMessage
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	}
	return rec, envelope
}

func TestSearchHotels(t *testing.T) {
	var received search.Filter
	distance := 1.25
	router := newTestRouter(testDeps{
		searcher: searcherFunc(func(_ context.Context, filter search.Filter) (*search.PageResult, error) {
			received = filter
			return &search.PageResult{
				Total:  1,
				Hotels: []*hotel.Document{{ID: 7, Name: "如家", Distance: &distance}},
			}, nil
		}),
	})

	rec, envelope := do(t, router, http.MethodPost, "/hotel/list",
		`{"key":"如家","city":"上海","minPrice":100,"maxPrice":300,"location":"31.2,121.5","page":2,"size":5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "true", string(envelope["success"]))
	assert.JSONEq(t, `{"total":1,"hotels":[{"id":7,"name":"如家","address":"","price":0,"score":0,"brand":"","city":"","starName":"","business":"","location":"","pic":"","isAD":false,"distance":1.25}]}`, string(envelope["data"]))
	assert.JSONEq(t, `{"page":2,"size":5}`, string(envelope["meta"]))

	assert.Equal(t, "如家", received.Key)
	assert.Equal(t, "上海", received.City)
	require.NotNil(t, received.MinPrice)
	assert.Equal(t, 100, *received.MinPrice)
	assert.Equal(t, "31.2,121.5", received.Location)
}

func TestSearchHotels_EmptyBody(t *testing.T) {
	called := false
	router := newTestRouter(testDeps{
		searcher: searcherFunc(func(_ context.Context, filter search.Filter) (*search.PageResult, error) {
			called = true
			assert.Equal(t, search.Filter{}, filter)
			return &search.PageResult{Hotels: []*hotel.Document{}}, nil
		}),
	})

	rec, envelope := do(t, router, http.MethodPost, "/hotel/list", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.JSONEq(t, `{"page":1,"size":10}`, string(envelope["meta"]))
}

func TestSearchHotels_MalformedBody(t *testing.T) {
	router := newTestRouter(testDeps{
		searcher: searcherFunc(func(context.Context, search.Filter) (*search.PageResult, error) {
			t.Fatal("use case must not run on a malformed body")
			return nil, nil
		}),
	})

	rec, envelope := do(t, router, http.MethodPost, "/hotel/list", `{"page":"two"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "false", string(envelope["success"]))
	assert.Contains(t, string(envelope["error"]), "invalid request body")
}

func TestSearchHotels_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid location", err: fmt.Errorf("%w: bad", search.ErrInvalidLocation), want: http.StatusBadRequest},
		{name: "engine unavailable", err: fmt.Errorf("search engine error: %w", search.ErrEngineUnavailable), want: http.StatusServiceUnavailable},
		{name: "query rejected", err: fmt.Errorf("search engine error: %w", search.ErrEngineQueryRejected), want: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(testDeps{
				searcher: searcherFunc(func(context.Context, search.Filter) (*search.PageResult, error) {
					return nil, tt.err
				}),
			})

			rec, envelope := do(t, router, http.MethodPost, "/hotel/list", `{}`)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "false", string(envelope["success"]))
		})
	}
}

func TestGetHotelFilters(t *testing.T) {
	router := newTestRouter(testDeps{
		lister: filterListerFunc(func(_ context.Context, filter search.Filter) (search.FilterFacets, error) {
			assert.Equal(t, "上海", filter.City)
			return search.FilterFacets{
				"brand":    {"如家"},
				"city":     {"上海"},
				"starName": {},
			}, nil
		}),
	})

	rec, envelope := do(t, router, http.MethodPost, "/hotel/filters", `{"city":"上海"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"brand":["如家"],"city":["上海"],"starName":[]}`, string(envelope["data"]))
}

func TestGetHotelFilters_AggregationMissing(t *testing.T) {
	router := newTestRouter(testDeps{
		lister: filterListerFunc(func(context.Context, search.Filter) (search.FilterFacets, error) {
			return nil, fmt.Errorf("%w: cityAgg", search.ErrAggregationMissing)
		}),
	})

	rec, _ := do(t, router, http.MethodPost, "/hotel/filters", `{}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetHotelByID(t *testing.T) {
	router := newTestRouter(testDeps{
		getter: getterFunc(func(_ context.Context, id int64) (*hotel.Hotel, error) {
			if id == 36934 {
				return &hotel.Hotel{ID: id, Name: "7天酒店"}, nil
			}
			return nil, fmt.Errorf("%w: %d", usecase.ErrHotelNotFound, id)
		}),
	})

	t.Run("found", func(t *testing.T) {
		rec, envelope := do(t, router, http.MethodGet, "/hotel/36934", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(envelope["data"]), `"name":"7天酒店"`)
	})

	t.Run("not found", func(t *testing.T) {
		rec, _ := do(t, router, http.MethodGet, "/hotel/1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec, envelope := do(t, router, http.MethodGet, "/hotel/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, string(envelope["error"]), "invalid hotel ID")
	})
}

func TestGetHotelByID_NotRegisteredWithoutStore(t *testing.T) {
	router := newTestRouter(testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/hotel/36934", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		rec, envelope := do(t, newTestRouter(testDeps{}), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy","search_engine":"up"}`, string(envelope["data"]))
	})

	t.Run("unhealthy", func(t *testing.T) {
		router := newTestRouter(testDeps{
			health: healthFunc(func(context.Context) error { return search.ErrEngineUnavailable }),
		})
		rec, envelope := do(t, router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "false", string(envelope["success"]))
	})
}
