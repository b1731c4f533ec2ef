package services

import (
	"context"
	"fmt"
)

// Destination defines a public type used by goPortal APIs.
type Destination struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags"`
	LowSeason   string   `json:"lowSeasonPrice"`
	HighSeason  string   `json:"highSeasonPrice"`
}

// Experience defines a public type used by goPortal APIs.
type Experience struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
}

// DestinationService defines a public type used by goPortal APIs.
type DestinationService struct {
	c *Client
}

// NewDestinationService describes the newdestinationservice operation and its observable behavior.
func NewDestinationService(c *Client) *DestinationService {
	return &DestinationService{c: c}
}

// List returns all destinations.
//
// List may return an error when input validation, dependency calls, or security checks fail.
func (s *DestinationService) List(ctx context.Context) ([]Destination, error) {
	var out []Destination
	if err := s.c.get(ctx, "/destinations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single destination by ID.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
func (s *DestinationService) Get(ctx context.Context, id int64) (*Destination, error) {
	var out Destination
	if err := s.c.get(ctx, fmt.Sprintf("/destinations/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Experiences returns the experiences offered at a destination.
//
// Experiences may return an error when input validation, dependency calls, or security checks fail.
func (s *DestinationService) Experiences(ctx context.Context, destinationID int64) ([]Experience, error) {
	var out []Experience
	if err := s.c.get(ctx, fmt.Sprintf("/destinations/%d/experiences", destinationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
