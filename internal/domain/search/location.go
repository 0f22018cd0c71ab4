package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type GeoPoint struct {
	Lat float64
	Lon float64
}

// ParseLocation parses a "lat,lon" string.
func ParseLocation(s string) (GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, fmt.Errorf("%w: %q is not \"lat,lon\"", ErrInvalidLocation, s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("%w: latitude %q: %v", ErrInvalidLocation, parts[0], err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("%w: longitude %q: %v", ErrInvalidLocation, parts[1], err)
	}

	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoPoint{}, fmt.Errorf("%w: %q is not a finite coordinate", ErrInvalidLocation, s)
	}

	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidLocation, lat)
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, fmt.Errorf("%w: longitude %v out of range", ErrInvalidLocation, lon)
	}

	return GeoPoint{Lat: lat, Lon: lon}, nil
}

func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
