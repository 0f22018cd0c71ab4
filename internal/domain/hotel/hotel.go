package hotel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrMissingAttribute = errors.New("missing required attribute")

// Document is the read-optimized projection of a hotel stored in the search
// index. Distance is only set when the query was geo-sorted.
type Document struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Price    int      `json:"price"`
	Score    int      `json:"score"`
	Brand    string   `json:"brand"`
	City     string   `json:"city"`
	StarName string   `json:"starName"`
	Business string   `json:"business"`
	Location string   `json:"location"`
	Pic      string   `json:"pic"`
	IsAD     bool     `json:"isAD"`
	Distance *float64 `json:"distance,omitempty"`
}

type rawDocument struct {
	ID       json.Number `json:"id"`
	Name     *string     `json:"name"`
	Address  string      `json:"address"`
	Price    int         `json:"price"`
	Score    int         `json:"score"`
	Brand    string      `json:"brand"`
	City     string      `json:"city"`
	StarName string      `json:"starName"`
	Business string      `json:"business"`
	Location string      `json:"location"`
	Pic      string      `json:"pic"`
	IsAD     bool        `json:"isAD"`
}

// DecodeDocument parses an index document body. id and name are required;
// the id may be stored as a number or a numeric string.
func DecodeDocument(source []byte) (*Document, error) {
	var raw rawDocument
	dec := json.NewDecoder(bytes.NewReader(source))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode hotel document: %w", err)
	}

	if raw.ID == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingAttribute)
	}
	id, err := strconv.ParseInt(raw.ID.String(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hotel id %q: %w", raw.ID, err)
	}

	if raw.Name == nil || *raw.Name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingAttribute)
	}

	return &Document{
		ID:       id,
		Name:     *raw.Name,
		Address:  raw.Address,
		Price:    raw.Price,
		Score:    raw.Score,
		Brand:    raw.Brand,
		City:     raw.City,
		StarName: raw.StarName,
		Business: raw.Business,
		Location: raw.Location,
		Pic:      raw.Pic,
		IsAD:     raw.IsAD,
	}, nil
}

// Hotel is the relational record a Document is projected from.
type Hotel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Price     int    `json:"price"`
	Score     int    `json:"score"`
	Brand     string `json:"brand"`
	City      string `json:"city"`
	StarName  string `json:"starName"`
	Business  string `json:"business"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Location  string `json:"location"`
	Pic       string `json:"pic"`
}
