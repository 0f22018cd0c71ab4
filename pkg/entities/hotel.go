package entities

import (
	"strings"
)

// HotelData is a row of the hotel table the search index is built from.
type HotelData struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null;type:varchar(255)"`
	Address   string `gorm:"type:varchar(255)"`
	Price     int    `gorm:"type:integer"`
	Score     int    `gorm:"type:integer"`
	Brand     string `gorm:"type:varchar(32);index:idx_hotel_brand"`
	Type      string `gorm:"type:varchar(32)"`
	City      string `gorm:"type:varchar(32);index:idx_hotel_city"`
	StarName  string `gorm:"column:star_name;type:varchar(16)"`
	Business  string `gorm:"type:varchar(255)"`
	Latitude  string `gorm:"type:varchar(32)"`
	Longitude string `gorm:"type:varchar(32)"`
	Pic       string `gorm:"type:varchar(255)"`
}

func (h *HotelData) TableName() string {
	return "tb_hotel"
}

// Location renders the coordinates the way the index stores geo points.
func (h *HotelData) Location() string {
	lat := strings.TrimSpace(h.Latitude)
	lon := strings.TrimSpace(h.Longitude)
	if lat == "" || lon == "" {
		return ""
	}
	return lat + ", " + lon
}
