package services

import (
	"context"
	"fmt"
	"time"
)

// Review defines a public type used by goPortal APIs.
type Review struct {
	ID        int64     `json:"id"`
	HotelID   int64     `json:"hotelId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest defines a public type used by goPortal APIs.
type ReviewRequest struct {
	HotelID int64  `json:"hotelId"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewStats defines a public type used by goPortal APIs.
type ReviewStats struct {
	HotelID       int64       `json:"hotelId"`
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int64       `json:"totalReviews"`
	Distribution  map[int]int `json:"distribution"`
}

// ReviewService defines a public type used by goPortal APIs.
type ReviewService struct {
	c *Client
}

// NewReviewService describes the newreviewservice operation and its observable behavior.
func NewReviewService(c *Client) *ReviewService {
	return &ReviewService{c: c}
}

// ByHotel returns a page of reviews for a hotel.
//
// ByHotel may return an error when input validation, dependency calls, or security checks fail.
func (s *ReviewService) ByHotel(ctx context.Context, hotelID int64, page, size int) (*Page[Review], error) {
	var out Page[Review]
	if err := s.c.get(ctx, fmt.Sprintf("/reviews/hotel/%d", hotelID), pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new review for a hotel.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (s *ReviewService) Create(ctx context.Context, req ReviewRequest) (*Review, error) {
	var out Review
	if err := s.c.send(ctx, "POST", "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits the current user's review.
//
// Update may return an error when input validation, dependency calls, or security checks fail.
func (s *ReviewService) Update(ctx context.Context, id int64, req ReviewRequest) (*Review, error) {
	var out Review
	if err := s.c.send(ctx, "PUT", fmt.Sprintf("/reviews/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the current user's review.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.c.send(ctx, "DELETE", fmt.Sprintf("/reviews/%d", id), nil, nil)
}

// Stats returns the aggregate rating statistics for a hotel.
//
// Stats may return an error when input validation, dependency calls, or security checks fail.
func (s *ReviewService) Stats(ctx context.Context, hotelID int64) (*ReviewStats, error) {
	var out ReviewStats
	if err := s.c.get(ctx, fmt.Sprintf("/reviews/hotel/%d/stats", hotelID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
