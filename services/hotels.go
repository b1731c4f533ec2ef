package services

import (
	"context"
	"fmt"
	"strconv"
)

// Hotel defines a public type used by goPortal APIs.
type Hotel struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Stars         int      `json:"stars"`
	BasePrice     float64  `json:"basePrice"`
	Rating        float64  `json:"rating"`
	ImageURL      string   `json:"imageUrl"`
	Amenities     []string `json:"amenities"`
	DestinationID int64    `json:"destinationId"`
	Available     bool     `json:"available"`
}

// HotelQuery defines a public type used by goPortal APIs.
//
// HotelQuery narrows a hotel search. Zero-value fields are omitted from the
// request.
type HotelQuery struct {
	Name     string
	Location string
	MinStars int
	MaxPrice float64
	Page     int
	Size     int
}

// HotelService defines a public type used by goPortal APIs.
type HotelService struct {
	c *Client
}

// NewHotelService describes the newhotelservice operation and its observable behavior.
func NewHotelService(c *Client) *HotelService {
	return &HotelService{c: c}
}

// List returns a page of hotels.
//
// List may return an error when input validation, dependency calls, or security checks fail.
func (s *HotelService) List(ctx context.Context, page, size int) (*Page[Hotel], error) {
	var out Page[Hotel]
	if err := s.c.get(ctx, "/hotels", pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single hotel by ID.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
func (s *HotelService) Get(ctx context.Context, id int64) (*Hotel, error) {
	var out Hotel
	if err := s.c.get(ctx, fmt.Sprintf("/hotels/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns hotels matching the query.
//
// Search may return an error when input validation, dependency calls, or security checks fail.
func (s *HotelService) Search(ctx context.Context, query HotelQuery) (*Page[Hotel], error) {
	q := pageQuery(query.Page, query.Size)
	if query.Name != "" {
		q.Set("name", query.Name)
	}
	if query.Location != "" {
		q.Set("location", query.Location)
	}
	if query.MinStars > 0 {
		q.Set("minStars", strconv.Itoa(query.MinStars))
	}
	if query.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(query.MaxPrice, 'f', 2, 64))
	}

	var out Page[Hotel]
	if err := s.c.get(ctx, "/hotels/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
