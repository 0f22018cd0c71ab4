package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/victoragudo/hotel-management-system/hotel-search/internal/domain/hotel"
	"github.com/victoragudo/hotel-management-system/hotel-search/pkg/entities"
	"gorm.io/gorm"
)

type PostgresHotelRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgresHotelRepository(db *gorm.DB, logger *slog.Logger) *PostgresHotelRepository {
	return &PostgresHotelRepository{
		db:     db,
		logger: logger,
	}
}

// FindByID returns nil, nil when no hotel has the id.
func (r *PostgresHotelRepository) FindByID(ctx context.Context, id int64) (*hotel.Hotel, error) {
	var hotelModel entities.HotelData

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotelModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find hotel by ID", "hotel_id", id, "error", err)
		return nil, fmt.Errorf("failed to find hotel by ID %d: %w", id, err)
	}

	return convertModelToDomain(&hotelModel), nil
}

func (r *PostgresHotelRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresHotelRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func convertModelToDomain(model *entities.HotelData) *hotel.Hotel {
	return &hotel.Hotel{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		Price:     model.Price,
		Score:     model.Score,
		Brand:     model.Brand,
		City:      model.City,
		StarName:  model.StarName,
		Business:  model.Business,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		Location:  model.Location(),
		Pic:       model.Pic,
	}
}
