package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID attaches the console request id so backend calls can be
// correlated across both services.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Client is the typed HTTP client for the commerce backend. Every call gets a
// per-request timeout, the service bearer token, and passes through a circuit
// breaker so a dead backend fails fast instead of stacking up requests.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[httpResult]
	log     *logrus.Entry
}

type httpResult struct {
	status int
	body   []byte
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[httpResult](gobreaker.Settings{
		Name:        "commerce-backend",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: timeout,
		httpc:   &http.Client{},
		breaker: breaker,
		log:     logrus.WithField("module", "backend"),
	}
}

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int            `json:"total"`
}

// ListOrders fetches one page of orders.
func (c *Client) ListOrders(ctx context.Context, page domain.PageParams) ([]models.Order, error) {
	page = page.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("page_size", strconv.Itoa(page.PageSize))

	body, err := c.do(ctx, http.MethodGet, "/orders", q, nil)
	if err != nil {
		return nil, err
	}

	var resp ordersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.ServerError{Op: "list orders", StatusCode: http.StatusOK, Body: "unparsable order list"}
	}
	return resp.Orders, nil
}

// Stats fetches the aggregate order counters.
func (c *Client) Stats(ctx context.Context) (models.OrderStats, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/stats", nil, nil)
	if err != nil {
		return models.OrderStats{}, err
	}

	var stats models.OrderStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return models.OrderStats{}, domain.ServerError{Op: "load stats", StatusCode: http.StatusOK, Body: "unparsable stats"}
	}
	return stats, nil
}

// UpdateStatus PATCHes a single order's status.
func (c *Client) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	payload := map[string]models.OrderStatus{"status": status}
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/status", nil, payload)
	return err
}

type bulkRequest struct {
	IDs    []string              `json:"ids"`
	Action models.BulkActionType `json:"actionType"`
	Reason string                `json:"reason,omitempty"`
}

// BulkAction sends one batched request and returns the per-order outcome.
func (c *Client) BulkAction(ctx context.Context, ids []string, action models.BulkActionType, reason string) (models.BulkResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders/bulk", nil, bulkRequest{IDs: ids, Action: action, Reason: reason})
	if err != nil {
		return models.BulkResult{}, err
	}

	var result models.BulkResult
	if err := json.Unmarshal(body, &result); err != nil {
		return models.BulkResult{}, domain.ServerError{Op: "bulk action", StatusCode: http.StatusOK, Body: "unparsable bulk result"}
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	op := fmt.Sprintf("%s %s", method, path)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.ValidationError{Field: "payload", Msg: "unserializable request body", Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, domain.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	result, err := c.breaker.Execute(func() (httpResult, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return httpResult{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		if err != nil {
			return httpResult{}, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			// 5xx counts against the breaker; 4xx is the caller's problem.
			return httpResult{}, domain.ServerError{Op: op, StatusCode: resp.StatusCode, Body: truncate(body)}
		}
		return httpResult{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		mapped := c.mapError(op, err)
		c.log.WithFields(logrus.Fields{"op": op, "request_id": requestIDFrom(ctx)}).WithError(mapped).Warn("backend call failed")
		return nil, mapped
	}

	if result.status < 200 || result.status > 299 {
		return nil, domain.ServerError{Op: op, StatusCode: result.status, Body: truncate(result.body)}
	}
	return result.body, nil
}

func (c *Client) mapError(op string, err error) error {
	switch {
	case domain.IsServer(err):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domain.NetworkError{Op: op, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return domain.TimeoutError{Op: op, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return domain.TimeoutError{Op: op, Err: err}
	}
	return domain.NetworkError{Op: op, Err: err}
}

func truncate(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
