package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/search"
)

type HotelSearcher interface {
	Execute(ctx context.Context, filter search.Filter) (*search.PageResult, error)
}

type FilterLister interface {
	Execute(ctx context.Context, filter search.Filter) (search.FilterFacets, error)
}

type HotelGetter interface {
	Execute(ctx context.Context, hotelID int64) (*hotel.Hotel, error)
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HotelHandler struct {
	searchHotelsUseCase    HotelSearcher
	getHotelFiltersUseCase FilterLister
	getHotelByIDUseCase    HotelGetter
	searchEngine           HealthChecker
	logger                 *slog.Logger
}

// NewHotelHandler builds the HTTP surface. getHotelByIDUseCase may be nil when
// no relational store is configured.
func NewHotelHandler(
	searchHotelsUseCase HotelSearcher,
	getHotelFiltersUseCase FilterLister,
	getHotelByIDUseCase HotelGetter,
	searchEngine HealthChecker,
	logger *slog.Logger,
) *HotelHandler {
	return &HotelHandler{
		searchHotelsUseCase:    searchHotelsUseCase,
		getHotelFiltersUseCase: getHotelFiltersUseCase,
		getHotelByIDUseCase:    getHotelByIDUseCase,
		searchEngine:           searchEngine,
		logger:                 logger,
	}
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// RegisterRoutes mounts the hotel endpoints on router.
func (h *HotelHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/hotel/list", h.SearchHotels).Methods(http.MethodPost)
	router.HandleFunc("/hotel/filters", h.GetHotelFilters).Methods(http.MethodPost)
	if h.getHotelByIDUseCase != nil {
		router.HandleFunc("/hotel/{id}", h.GetHotelByID).Methods(http.MethodGet)
	}
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
}

// SearchHotels returns one page of hotels matching the filter
// @Summary Search hotels
// @Description Keyword, city, brand, star and price filtering with promoted hotels boosted. A location sorts by distance and fills distance in kilometers.
// @Tags search
// @Accept json
// @Produce json
// @Param filter body search.Filter true "Search filter"
// @Success 200 {object} APIResponse{data=search.PageResult} "Total matches and the requested page"
// @Failure 400 {object} APIResponse "Bad Request - Malformed body or location"
// @Failure 502 {object} APIResponse "Bad Gateway - Query rejected by the search engine"
// @Failure 503 {object} APIResponse "Service Unavailable - Search engine unreachable"
// @Router /hotel/list [post]
func (h *HotelHandler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decodeFilter(w, r)
	if !ok {
		return
	}

	result, err := h.searchHotelsUseCase.Execute(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to search hotels", "error", err)
		h.writeErrorResponse(w, err.Error(), statusFor(err))
		return
	}

	page, size, _ := filter.Window()
	meta := map[string]interface{}{
		"page": page,
		"size": size,
	}
	if result.Skipped > 0 {
		meta["skipped"] = result.Skipped
	}

	h.writeSuccessResponse(w, result, meta)
}

// GetHotelFilters lists the brands, cities and star names present among matching hotels
// @Summary Get filter values
// @Description Distinct brand, city and starName values of the hotels matching the filter. Pagination and location are ignored.
// @Tags search
// @Accept json
// @Produce json
// @Param filter body search.Filter true "Search filter"
// @Success 200 {object} APIResponse{data=search.FilterFacets} "Facet values keyed by brand, city and starName"
// @Failure 400 {object} APIResponse "Bad Request - Malformed body"
// @Failure 502 {object} APIResponse "Bad Gateway - Query rejected or aggregation missing"
// @Failure 503 {object} APIResponse "Service Unavailable - Search engine unreachable"
// @Router /hotel/filters [post]
func (h *HotelHandler) GetHotelFilters(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decodeFilter(w, r)
	if !ok {
		return
	}

	facets, err := h.getHotelFiltersUseCase.Execute(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to get hotel filters", "error", err)
		h.writeErrorResponse(w, err.Error(), statusFor(err))
		return
	}

	h.writeSuccessResponse(w, facets, nil)
}

// GetHotelByID retrieves a hotel by its ID
// @Summary Get hotel by ID
// @Description Get the stored record of a specific hotel
// @Tags hotels
// @Produce json
// @Param id path integer true "Hotel ID"
// @Success 200 {object} APIResponse{data=hotel.Hotel} "Hotel details"
// @Failure 400 {object} APIResponse "Bad Request - Invalid ID"
// @Failure 404 {object} APIResponse "Not Found - Hotel not found"
// @Failure 500 {object} APIResponse "Internal Server Error"
// @Router /hotel/{id} [get]
func (h *HotelHandler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	hotelID := mux.Vars(r)["id"]

	hotelIDInt, err := strconv.ParseInt(hotelID, 10, 64)
	if err != nil {
		h.logger.Warn("Invalid hotel ID", "hotel_id", hotelID)
		h.writeErrorResponse(w, "invalid hotel ID: "+hotelID, http.StatusBadRequest)
		return
	}

	foundHotel, err := h.getHotelByIDUseCase.Execute(r.Context(), hotelIDInt)
	if err != nil {
		h.logger.Error("Failed to get hotel by ID", "hotel_id", hotelIDInt, "error", err)
		h.writeErrorResponse(w, err.Error(), statusFor(err))
		return
	}

	h.writeSuccessResponse(w, foundHotel, nil)
}

// HealthCheck reports search engine reachability
// @Summary Health check
// @Description Reports whether the search engine cluster is reachable
// @Tags system
// @Produce json
// @Success 200 {object} APIResponse "Service healthy"
// @Failure 503 {object} APIResponse "Search engine unreachable"
// @Router /health [get]
func (h *HotelHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.searchEngine.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Search engine health check failed", "error", err)
		h.writeJSONResponse(w, APIResponse{
			Success: false,
			Data:    map[string]string{"status": "unhealthy", "search_engine": "down"},
			Error:   err.Error(),
		}, http.StatusServiceUnavailable)
		return
	}

	h.writeSuccessResponse(w, map[string]string{"status": "healthy", "search_engine": "up"}, nil)
}

func (h *HotelHandler) decodeFilter(w http.ResponseWriter, r *http.Request) (search.Filter, bool) {
	var filter search.Filter
	if r.Body == nil {
		return filter, true
	}

	// An empty body is an empty filter.
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Failed to decode search filter", "error", err)
		h.writeErrorResponse(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return filter, false
	}

	return filter, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrHotelNotFound):
		return http.StatusNotFound
	case errors.Is(err, search.ErrEngineUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, search.ErrEngineQueryRejected), errors.Is(err, search.ErrAggregationMissing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *HotelHandler) writeSuccessResponse(w http.ResponseWriter, data interface{}, meta interface{}) {
	h.writeJSONResponse(w, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	}, http.StatusOK)
}

func (h *HotelHandler) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	h.writeJSONResponse(w, APIResponse{
		Success: false,
		Error:   message,
	}, statusCode)
}

func (h *HotelHandler) writeJSONResponse(w http.ResponseWriter, response APIResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}
