package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cinema-checkout-cli/model"
)

const (
	defaultUserAgent   = "cinema-checkout-cli"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client wraps HTTP access to the cinema booking API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the API responds with a non-2xx status. Detail
// carries the human-readable message from the backend error payload when
// one was provided.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Detail     string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "cinema api error"
	}
	if e.Detail != "" {
		return fmt.Sprintf("cinema api error: %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("cinema api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized reports whether the error represents a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// ErrorDetail extracts the backend-provided message from err, or returns ""
// so callers can fall back to a generic one.
func ErrorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// NewClient creates a new API client. If httpClient is nil, a default client
// is used. token may be empty for anonymous browsing.
func NewClient(httpClient *http.Client, baseURL string, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

// GetSession fetches the screening detail including the base ticket price.
func (c *Client) GetSession(ctx context.Context, sessionID int64) (model.Session, error) {
	if sessionID <= 0 {
		return model.Session{}, errors.New("session id is required")
	}
	endpoint := fmt.Sprintf("%s/sessions/%d", c.baseURL, sessionID)
	var session model.Session
	if err := c.getJSON(ctx, endpoint, &session); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// GetSessionSeats fetches the seat list for a screening. Occupancy in the
// response is a snapshot; the server re-checks it on booking.
func (c *Client) GetSessionSeats(ctx context.Context, sessionID int64) ([]model.Seat, error) {
	if sessionID <= 0 {
		return nil, errors.New("session id is required")
	}
	endpoint := fmt.Sprintf("%s/sessions/%d/seats", c.baseURL, sessionID)
	var seats []model.Seat
	if err := c.getJSON(ctx, endpoint, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetConcessions fetches the concession catalog, optionally filtered by
// cinema. cinemaID <= 0 fetches the full catalog.
func (c *Client) GetConcessions(ctx context.Context, cinemaID int64) ([]model.Concession, error) {
	endpoint := fmt.Sprintf("%s/concessions", c.baseURL)
	if cinemaID > 0 {
		endpoint = fmt.Sprintf("%s?cinema_id=%d", endpoint, cinemaID)
	}
	var items []model.Concession
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBooking submits the draft order. Never retried: a timed-out attempt
// may still have created the booking server-side.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	if req.SessionId <= 0 {
		return model.Booking{}, errors.New("session id is required")
	}
	if len(req.SeatIds) == 0 {
		return model.Booking{}, errors.New("at least one seat is required")
	}
	endpoint := fmt.Sprintf("%s/bookings", c.baseURL)
	var booking model.Booking
	if err := c.postJSON(ctx, endpoint, req, &booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// CreatePayment pays for an existing booking. Never retried.
func (c *Client) CreatePayment(ctx context.Context, bookingID int64, req model.PaymentRequest) (model.Payment, error) {
	if bookingID <= 0 {
		return model.Payment{}, errors.New("booking id is required")
	}
	endpoint := fmt.Sprintf("%s/bookings/%d/payments", c.baseURL, bookingID)
	var payment model.Payment
	if err := c.postJSON(ctx, endpoint, req, &payment); err != nil {
		return model.Payment{}, err
	}
	return payment, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		c.setHeaders(req)

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := c.readAPIError(res, endpoint)
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			return apiErr
		}

		return decodeBody(res, endpoint, out)
	}

	return errors.New("request failed after retries")
}

// postJSON performs a single attempt. Booking and payment calls must never
// be retried automatically; a failure surfaces to the user instead.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return c.readAPIError(res, endpoint)
	}
	return decodeBody(res, endpoint, out)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) readAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	_ = res.Body.Close()

	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(snippet, &payload); err == nil {
		apiErr.Detail = strings.TrimSpace(payload.Detail)
	}
	return apiErr
}

func decodeBody(res *http.Response, endpoint string, out any) error {
	dec := json.NewDecoder(res.Body)
	err := dec.Decode(out)
	_ = res.Body.Close()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.retryDelay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
