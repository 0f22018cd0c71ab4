package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
)

var ErrHotelNotFound = errors.New("hotel not found")

type GetHotelByIDUseCase struct {
	hotelRepo hotel.Repository
	logger    *slog.Logger
}

func NewGetHotelByIDUseCase(
	hotelRepo hotel.Repository,
	logger *slog.Logger,
) *GetHotelByIDUseCase {
	return &GetHotelByIDUseCase{
		hotelRepo: hotelRepo,
		logger:    logger,
	}
}

func (uc *GetHotelByIDUseCase) Execute(ctx context.Context, hotelID int64) (*hotel.Hotel, error) {
	uc.logger.Debug("Getting hotel by ID", "hotel_id", hotelID)

	foundHotel, err := uc.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel %d: %w", hotelID, err)
	}
	if foundHotel == nil {
		return nil, fmt.Errorf("%w: %d", ErrHotelNotFound, hotelID)
	}

	return foundHotel, nil
}
