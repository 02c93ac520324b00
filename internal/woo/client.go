// Package woo is the client for the WooCommerce-compatible catalog API.
//
// Authentication is HTTP Basic with the REST consumer key/secret pair.
// List endpoints paginate with per_page/page query parameters and carry the
// total row count in the X-WP-Total response header.
package woo

import (
	"fmt"
	"strconv"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/httpx"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/metrics"
)

// TotalHeader carries the collection size on list responses.
const TotalHeader = "X-WP-Total"

type Client struct {
	baseURL string
	key     string
	secret  string
	timeout time.Duration
}

// New builds a client for an explicit endpoint (tests point this at a stub
// server).
func New(baseURL, key, secret string) *Client {
	return &Client{baseURL: baseURL, key: key, secret: secret, timeout: 15 * time.Second}
}

// NewFromConfig builds the production client from WOO_* settings.
func NewFromConfig() *Client {
	return New(config.WooBaseURL(), config.WooConsumerKey(), config.WooConsumerSecret())
}

func (c *Client) request(method func(string) *httpx.Request, path string) *httpx.Request {
	return method(c.baseURL + path).
		BasicAuth(c.key, c.secret).
		Timeout(c.timeout)
}

func (c *Client) observe(resource string, resp *httpx.Response, start time.Time) {
	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	metrics.WooRequestDuration.WithLabelValues(resource, status).Observe(time.Since(start).Seconds())
}

// ── Categories ───────────────────────────────────────────────────────────────

// ListCategories fetches one page of categories and the collection total.
func (c *Client) ListCategories(page, perPage int) ([]Category, int, error) {
	start := time.Now()
	resp, err := c.request(httpx.Get, "/products/categories").
		Query("page", strconv.Itoa(page)).
		Query("per_page", strconv.Itoa(perPage)).
		Send()
	c.observe("categories", resp, start)
	if err != nil {
		return nil, 0, fmt.Errorf("woo: list categories: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, 0, err
	}

	var cats []Category
	if err := resp.JSON(&cats); err != nil {
		return nil, 0, err
	}
	total, _ := strconv.Atoi(resp.Header(TotalHeader))
	return cats, total, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ListProducts fetches one page of products and the collection total.
func (c *Client) ListProducts(page, perPage int) ([]Product, int, error) {
	start := time.Now()
	resp, err := c.request(httpx.Get, "/products").
		Query("page", strconv.Itoa(page)).
		Query("per_page", strconv.Itoa(perPage)).
		Send()
	c.observe("products", resp, start)
	if err != nil {
		return nil, 0, fmt.Errorf("woo: list products: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, 0, err
	}

	var products []Product
	if err := resp.JSON(&products); err != nil {
		return nil, 0, err
	}
	total, _ := strconv.Atoi(resp.Header(TotalHeader))
	return products, total, nil
}

// CreateProduct creates a product in the external catalog.
func (c *Client) CreateProduct(fields map[string]interface{}) (*Product, error) {
	start := time.Now()
	resp, err := c.request(httpx.Post, "/products").Body(fields).Send()
	c.observe("products", resp, start)
	if err != nil {
		return nil, fmt.Errorf("woo: create product: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, err
	}

	var p Product
	if err := resp.JSON(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies a partial field map to an external product.
func (c *Client) UpdateProduct(id int64, fields map[string]interface{}) error {
	start := time.Now()
	resp, err := c.request(httpx.Put, fmt.Sprintf("/products/%d", id)).Body(fields).Send()
	c.observe("products", resp, start)
	if err != nil {
		return fmt.Errorf("woo: update product %d: %w", id, err)
	}
	return resp.Throw()
}

// ── Orders ───────────────────────────────────────────────────────────────────

// CreateOrder submits an order to the external catalog.
func (c *Client) CreateOrder(req OrderRequest) (*Order, error) {
	start := time.Now()
	resp, err := c.request(httpx.Post, "/orders").Body(req).Send()
	c.observe("orders", resp, start)
	if err != nil {
		return nil, fmt.Errorf("woo: create order: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, err
	}

	var order Order
	if err := resp.JSON(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ── Attributes ───────────────────────────────────────────────────────────────

// ListAttributes fetches the catalog's product attributes.
func (c *Client) ListAttributes() ([]Attribute, error) {
	start := time.Now()
	resp, err := c.request(httpx.Get, "/products/attributes").Send()
	c.observe("attributes", resp, start)
	if err != nil {
		return nil, fmt.Errorf("woo: list attributes: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return nil, err
	}

	var attrs []Attribute
	if err := resp.JSON(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
