package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cinema-checkout-cli/model"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestPostJSON_NeverRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail": "try later"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	_, err := client.CreateBooking(context.Background(), model.BookingRequest{
		SessionId: 1,
		SeatIds:   []int64{2},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for POST, got %d", attempts)
	}
}

func TestGetSession_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": 42,
  "base_price": 300,
  "start_time": "2026-09-01T19:30:00Z",
  "film": {"id": 7, "title": "Film One"},
  "hall": {"id": 3, "name": "Hall 3", "cinema": {"id": 1, "name": "Cinema One"}}
}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	session, err := client.GetSession(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if session.Id != 42 || session.BasePrice != 300 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Hall.Cinema.Name != "Cinema One" {
		t.Fatalf("unexpected cinema: %+v", session.Hall)
	}
}

func TestGetSessionSeats_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/42/seats" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"id": 1, "row_number": "1", "seat_number": 1, "seat_type": "normal", "ticket_status": "none"},
  {"id": 2, "row_number": "1", "seat_number": 2, "seat_type": "aisle"},
  {"id": 3, "row_number": "1", "seat_number": 3, "seat_type": "normal", "is_booked": true}
]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	seats, err := client.GetSessionSeats(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(seats))
	}
	if seats[2].Occupancy() != model.OccupancyReserved {
		t.Fatalf("expected legacy booked seat to be reserved, got %v", seats[2].Occupancy())
	}
}

func TestGetConcessions_FiltersByCinema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/concessions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "cinema_id=5" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Popcorn", "price": 150}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	items, err := client.GetConcessions(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 1 || items[0].Price != 150 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestCreateBooking_SendsDraftAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		var req model.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionId != 42 || len(req.SeatIds) != 2 || req.PromoCode != "SUMMER" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 9, "total": 1100}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "token-1")
	booking, err := client.CreateBooking(context.Background(), model.BookingRequest{
		SessionId:   42,
		SeatIds:     []int64{1, 2},
		PromoCode:   "SUMMER",
		UseBonuses:  true,
		BonusAmount: 500,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if booking.Id != 9 || booking.Total != 1100 {
		t.Fatalf("unexpected booking: %+v", booking)
	}
}

func TestCreateBooking_SurfacesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "seat 7 is no longer available"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	_, err := client.CreateBooking(context.Background(), model.BookingRequest{
		SessionId: 42,
		SeatIds:   []int64{7},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorDetail(err); got != "seat 7 is no longer available" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestCreatePayment_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings/9/payments" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req model.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 1100 || req.PaymentMethod != model.PaymentMethodCard {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 77, "status": "confirmed"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	payment, err := client.CreatePayment(context.Background(), 9, model.PaymentRequest{
		Amount:        1100,
		PaymentMethod: model.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if payment.Id != 77 || payment.Status != "confirmed" {
		t.Fatalf("unexpected payment: %+v", payment)
	}
}

func TestIsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "authentication required"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "")
	_, err := client.GetSession(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatal("did not expect not-found")
	}
}
