package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// APIClient talks to the order board REST endpoints. Calls run to
// completion or failure; there are no automatic retries.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the server at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchOrders retrieves the full current order list.
func (c *APIClient) FetchOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// SubmitOrder posts a candidate order and returns the committed order with
// its server-assigned id.
func (c *APIClient) SubmitOrder(ctx context.Context, candidate models.Order) (models.Order, error) {
	var out struct {
		OK    bool         `json:"ok"`
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", candidate, &out); err != nil {
		return models.Order{}, err
	}
	return out.Order, nil
}

// CompleteOrder marks the order as completed on the server.
func (c *APIClient) CompleteOrder(ctx context.Context, id int) error {
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/complete", id), nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return models.ErrOrderNotFound
	}
	return err
}

// ResetOrders clears the active order list on the server.
func (c *APIClient) ResetOrders(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/orders/reset", nil, nil)
}

// SaveDaily writes the end-of-day archive and returns the archive paths.
func (c *APIClient) SaveDaily(ctx context.Context, report models.DailyReport) (itemsFile, ordersFile string, err error) {
	var out struct {
		OK         bool   `json:"ok"`
		ItemsFile  string `json:"itemsFile"`
		OrdersFile string `json:"ordersFile"`
	}
	if err := c.do(ctx, http.MethodPost, "/daily/save", report, &out); err != nil {
		return "", "", err
	}
	return out.ItemsFile, out.OrdersFile, nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

func isStatus(err error, code int) bool {
	se, ok := err.(*StatusError)
	return ok && se.Code == code
}

func (c *APIClient) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
