package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	goPortal "github.com/caribevibes/goPortal"
)

func noRetry() goPortal.RetryConfig {
	return goPortal.RetryConfig{Enabled: false}
}

func fastRetry() goPortal.RetryConfig {
	return goPortal.RetryConfig{
		Enabled:      true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestHotelListDecodesPageEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/hotels" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "1" || r.URL.Query().Get("size") != "10" {
			t.Errorf("query = %v", r.URL.Query())
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"id": 1, "name": "Coral Reef Resort", "location": "Cancún", "stars": 4, "basePrice": 180.0},
			},
			"totalElements": 37,
			"totalPages":    4,
			"number":        1,
			"size":          10,
		})
	}))
	defer server.Close()

	hotels := NewHotelService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	page, err := hotels.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalElements != 37 || page.TotalPages != 4 || page.Number != 1 {
		t.Fatalf("envelope = %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].Name != "Coral Reef Resort" {
		t.Fatalf("content = %+v", page.Content)
	}
}

func TestHotelSearchQuery(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	hotels := NewHotelService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	_, err := hotels.Search(context.Background(), HotelQuery{
		Location: "Cancún",
		MinStars: 3,
		MaxPrice: 250,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery["location"][0] != "Cancún" || gotQuery["minStars"][0] != "3" || gotQuery["maxPrice"][0] != "250.00" {
		t.Fatalf("query = %v", gotQuery)
	}
	if _, ok := gotQuery["name"]; ok {
		t.Fatal("zero-value name must be omitted")
	}
}

func TestAPIErrorDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"hotel not found"}`))
	}))
	defer server.Close()

	hotels := NewHotelService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	_, err := hotels.Get(context.Background(), 99)
	var apiErr *goPortal.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "hotel not found" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if !goPortal.IsStatus(err, http.StatusNotFound) {
		t.Fatal("IsStatus must match")
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	hotels := NewHotelService(NewClient(server.Client(), server.URL+"/api", fastRetry()))

	if _, err := hotels.List(context.Background(), 0, 10); err != nil {
		t.Fatalf("List failed after retries: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer server.Close()

	hotels := NewHotelService(NewClient(server.Client(), server.URL+"/api", fastRetry()))

	_, err := hotels.List(context.Background(), 0, 10)
	if !goPortal.IsStatus(err, http.StatusForbidden) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d; 4xx must not be retried", calls)
	}
}

func TestWritesNeverRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	bookings := NewBookingService(NewClient(server.Client(), server.URL+"/api", fastRetry()))

	_, err := bookings.Create(context.Background(), BookingRequest{HotelID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d; writes must go out exactly once", calls)
	}
}

func TestBookingDateEncoding(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           12,
			"hotelId":      1,
			"checkInDate":  "2026-09-12",
			"checkOutDate": "2026-09-15",
			"status":       "PENDING",
		})
	}))
	defer server.Close()

	bookings := NewBookingService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	booking, err := bookings.Create(context.Background(), BookingRequest{
		HotelID:  1,
		CheckIn:  NewDate(2026, time.September, 12),
		CheckOut: NewDate(2026, time.September, 15),
		Guests:   2,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if gotBody["checkInDate"] != "2026-09-12" || gotBody["checkOutDate"] != "2026-09-15" {
		t.Fatalf("wire dates = %v / %v", gotBody["checkInDate"], gotBody["checkOutDate"])
	}
	if booking.Status != BookingPending {
		t.Fatalf("status = %q", booking.Status)
	}
	if got := booking.Nights(); got != 3 {
		t.Fatalf("Nights = %d, want 3", got)
	}
}

func TestBookingNightsInvertedRange(t *testing.T) {
	b := &Booking{
		CheckIn:  NewDate(2026, time.September, 15),
		CheckOut: NewDate(2026, time.September, 12),
	}
	if got := b.Nights(); got != 0 {
		t.Fatalf("Nights = %d, want 0 for an inverted range", got)
	}
}

func TestBookingCancel(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 12, "status": "CANCELLED"})
	}))
	defer server.Close()

	bookings := NewBookingService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	booking, err := bookings.Cancel(context.Background(), 12)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if gotMethod != "PUT" || gotPath != "/api/bookings/12/cancel" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if booking.Status != BookingCancelled {
		t.Fatalf("status = %q", booking.Status)
	}
}

func TestDestinationExperiences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/destinations/3/experiences" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "name": "Reef snorkeling", "price": 65.0},
		})
	}))
	defer server.Close()

	dests := NewDestinationService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	experiences, err := dests.Experiences(context.Background(), 3)
	if err != nil {
		t.Fatalf("Experiences failed: %v", err)
	}
	if len(experiences) != 1 || experiences[0].Name != "Reef snorkeling" {
		t.Fatalf("experiences = %+v", experiences)
	}
}

func TestContactWorkflow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/contact":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "status": "NEW"})
		case "PUT /api/contact/5/reply":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "status": "IN_PROGRESS", "reply": body["reply"]})
		case "PUT /api/contact/5/status":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "status": "RESOLVED"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	contacts := NewContactService(NewClient(server.Client(), server.URL+"/api", noRetry()))
	ctx := context.Background()

	msg, err := contacts.Create(ctx, ContactRequest{Name: "Ana", Email: "ana@example.com", Subject: "hi", Message: "hello"})
	if err != nil || msg.Status != ContactNew {
		t.Fatalf("Create = %+v, %v", msg, err)
	}

	msg, err = contacts.Reply(ctx, 5, "thanks for reaching out")
	if err != nil || msg.Reply != "thanks for reaching out" {
		t.Fatalf("Reply = %+v, %v", msg, err)
	}

	msg, err = contacts.UpdateStatus(ctx, 5, ContactResolved)
	if err != nil || msg.Status != ContactResolved {
		t.Fatalf("UpdateStatus = %+v, %v", msg, err)
	}
}

func TestReviewStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reviews/hotel/1/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hotelId":       1,
			"averageRating": 4.3,
			"totalReviews":  12,
		})
	}))
	defer server.Close()

	reviews := NewReviewService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	stats, err := reviews.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.AverageRating != 4.3 || stats.TotalReviews != 12 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestReviewDelete(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	reviews := NewReviewService(NewClient(server.Client(), server.URL+"/api", noRetry()))

	if err := reviews.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gotMethod != "DELETE" {
		t.Fatalf("method = %q", gotMethod)
	}
}
