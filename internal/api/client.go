// Package api is the typed HTTP client for the planning server. All business
// computation (BOM explosion, forecasting, MRP) happens server-side; this
// package only moves JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"planctl/internal/models"
)

// APIError is a non-2xx response from the server. Detail carries the server's
// own message verbatim when the body could be parsed.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error (HTTP %d)", e.StatusCode)
}

// Client talks to one planning server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client for the given base URL. A zero timeout falls back to
// 30 seconds.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server base URL the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes the request and decodes a 2xx JSON body into out (out may be
// nil for empty responses). Any non-2xx status becomes an *APIError carrying
// the server's detail message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, "GET", path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	bodyBytes, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// ListBOMs returns top-level BOM summaries, optionally filtered by a search
// string and an item type.
func (c *Client) ListBOMs(ctx context.Context, search, itemType string) ([]models.BOMSummary, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if itemType != "" {
		q.Set("item_type", itemType)
	}
	path := "/boms"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.BOMSummary
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBOM fetches the stored component list for one product.
func (c *Client) GetBOM(ctx context.Context, sku string) (*models.BOMRecord, error) {
	var out models.BOMRecord
	if err := c.getJSON(ctx, "/boms/"+url.PathEscape(sku), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveBOM creates or replaces the BOM for payload.ProductSKU.
func (c *Client) SaveBOM(ctx context.Context, payload models.BOMPayload) error {
	return c.sendJSON(ctx, "POST", "/boms", payload, nil)
}

// DeleteBOM deletes one BOM by product sku.
func (c *Client) DeleteBOM(ctx context.Context, sku string) error {
	req, err := c.newRequest(ctx, "DELETE", "/boms/"+url.PathEscape(sku), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// BulkDeleteBOMs deletes every BOM in skus in one call.
func (c *Client) BulkDeleteBOMs(ctx context.Context, skus []string) error {
	body := struct {
		SKUs []string `json:"skus"`
	}{SKUs: skus}
	return c.sendJSON(ctx, "POST", "/boms/bulk-delete", body, nil)
}

// GetTree fetches the fully exploded hierarchy, stats and flattened
// requirement list for one product. The client performs no explosion or
// aggregation of its own.
func (c *Client) GetTree(ctx context.Context, sku string) (*models.TreeResponse, error) {
	var out models.TreeResponse
	if err := c.getJSON(ctx, "/boms/tree/"+url.PathEscape(sku), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportBOMsCSV uploads a BOM definition file for server-side parsing. The
// client does not inspect the file content.
func (c *Client) ImportBOMsCSV(ctx context.Context, path string) (*models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, "POST", "/boms/import/csv", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.ImportResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportBOMsCSV streams the server's BOM export into destPath.
func (c *Client) ExportBOMsCSV(ctx context.Context, destPath string) error {
	req, err := c.newRequest(ctx, "GET", "/boms/export/csv", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ListItems returns planning items, optionally filtered by search string and
// item type. The editor uses the item_type filter to restrict candidate lists.
func (c *Client) ListItems(ctx context.Context, search, itemType string) ([]models.Item, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if itemType != "" {
		q.Set("item_type", itemType)
	}
	path := "/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.Item
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItemStatus sets the status field of one item.
func (c *Client) UpdateItemStatus(ctx context.Context, sku, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.sendJSON(ctx, "PATCH", "/items/"+url.PathEscape(sku)+"/status", body, nil)
}

// ImportForecast submits locally column-mapped forecast rows.
func (c *Client) ImportForecast(ctx context.Context, rows []models.ForecastRow) (*models.ImportResult, error) {
	body := struct {
		Rows []models.ForecastRow `json:"rows"`
	}{Rows: rows}
	var out models.ImportResult
	if err := c.sendJSON(ctx, "POST", "/forecasts/import", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
