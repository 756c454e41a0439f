// Package client talks to the storefront REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"momo-store/models"
)

// Client calls <baseURL>/api/... and maps failures to APIError, ErrNetwork or
// ErrRequest.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the request timeout on a copy of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal request: %v", ErrRequest, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}
	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Categories returns the menu grouped by category. Unrecognized response
// shapes give an empty list.
func (c *Client) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	data, err := c.do(ctx, http.MethodGet, "/menu/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeCategories(data), nil
}

// Items lists menu items, optionally filtered by category name.
func (c *Client) Items(ctx context.Context, category string) ([]models.MenuItem, error) {
	var q url.Values
	if category != "" {
		q = url.Values{"category": {category}}
	}
	data, err := c.do(ctx, http.MethodGet, "/menu/items", q, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeItems(data), nil
}

func (c *Client) Item(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.getJSON(ctx, "/menu/item/"+strconv.FormatInt(id, 10), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateOrder(ctx context.Context, in models.CreateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := c.postJSON(ctx, "/orders", in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Order(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Reviews returns up to limit approved reviews. Unrecognized response shapes
// give an empty list.
func (c *Client) Reviews(ctx context.Context, limit int) ([]models.Review, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	data, err := c.do(ctx, http.MethodGet, "/reviews", q, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeReviews(data), nil
}

func (c *Client) CreateReview(ctx context.Context, in models.CreateReviewInput) (*models.Review, error) {
	var review models.Review
	if err := c.postJSON(ctx, "/reviews", in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) SendContact(ctx context.Context, in models.CreateContactInput) error {
	return c.postJSON(ctx, "/contact", in, nil)
}

func (c *Client) RestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error) {
	var info models.RestaurantInfo
	if err := c.getJSON(ctx, "/restaurant/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
