package services

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// BookingStatus defines a public type used by goPortal APIs.
type BookingStatus string

const (
	// BookingPending is an exported constant or variable used by the portal client.
	BookingPending BookingStatus = "PENDING"
	// BookingConfirmed is an exported constant or variable used by the portal client.
	BookingConfirmed BookingStatus = "CONFIRMED"
	// BookingCancelled is an exported constant or variable used by the portal client.
	BookingCancelled BookingStatus = "CANCELLED"
	// BookingCompleted is an exported constant or variable used by the portal client.
	BookingCompleted BookingStatus = "COMPLETED"
)

const dateLayout = "2006-01-02"

// Date defines a public type used by goPortal APIs.
//
// Date is a calendar day with the backend's yyyy-MM-dd JSON encoding.
type Date struct {
	time.Time
}

// NewDate describes the newdate operation and its observable behavior.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements [encoding/json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements [encoding/json.Unmarshaler].
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// Booking defines a public type used by goPortal APIs.
type Booking struct {
	ID           int64         `json:"id"`
	HotelID      int64         `json:"hotelId"`
	HotelName    string        `json:"hotelName"`
	CheckIn      Date          `json:"checkInDate"`
	CheckOut     Date          `json:"checkOutDate"`
	Guests       int           `json:"numGuests"`
	RoomType     string        `json:"roomType"`
	TotalPrice   float64       `json:"totalPrice"`
	Status       BookingStatus `json:"status"`
	SpecialNotes string        `json:"specialNotes"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Nights returns the stay length in nights. An inverted or same-day range
// yields zero.
func (b *Booking) Nights() int {
	nights := int(b.CheckOut.Sub(b.CheckIn.Time).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// BookingRequest defines a public type used by goPortal APIs.
type BookingRequest struct {
	HotelID      int64  `json:"hotelId"`
	CheckIn      Date   `json:"checkInDate"`
	CheckOut     Date   `json:"checkOutDate"`
	Guests       int    `json:"numGuests"`
	RoomType     string `json:"roomType"`
	SpecialNotes string `json:"specialNotes,omitempty"`
}

// BookingService defines a public type used by goPortal APIs.
type BookingService struct {
	c *Client
}

// NewBookingService describes the newbookingservice operation and its observable behavior.
func NewBookingService(c *Client) *BookingService {
	return &BookingService{c: c}
}

// List returns the current user's bookings.
//
// List may return an error when input validation, dependency calls, or security checks fail.
func (s *BookingService) List(ctx context.Context, page, size int) (*Page[Booking], error) {
	var out Page[Booking]
	if err := s.c.get(ctx, "/bookings", pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single booking by ID.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
func (s *BookingService) Get(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := s.c.get(ctx, fmt.Sprintf("/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create places a new booking.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (*Booking, error) {
	var out Booking
	if err := s.c.send(ctx, "POST", "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a booking. Cancelling an already-cancelled booking is a
// backend-side error and comes back as an [goPortal.APIError].
//
// Cancel may return an error when input validation, dependency calls, or security checks fail.
func (s *BookingService) Cancel(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := s.c.send(ctx, "PUT", fmt.Sprintf("/bookings/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
