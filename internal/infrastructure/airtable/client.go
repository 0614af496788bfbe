// Package airtable is the record-store adapter: a thin REST client for the
// Airtable API plus repositories mapping its rows onto domain types.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/pkg/metrics"
)

// DefaultBaseURL is the public Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// ErrRecordNotFound is returned by Get when the record id does not exist.
var ErrRecordNotFound = errors.New("airtable: record not found")

// Config holds everything needed to reach one base.
type Config struct {
	BaseURL string
	APIKey  string
	BaseID  string
	Timeout time.Duration
}

// Client talks to a single Airtable base. It is safe for concurrent use.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(base, "/") + "/" + url.PathEscape(cfg.BaseID),
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Record is one row. Fields is decoded lazily by the repositories.
type Record struct {
	ID          string          `json:"id"`
	CreatedTime time.Time       `json:"createdTime"`
	Fields      json.RawMessage `json:"fields"`
}

// Sort orders List results by a single field.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ListParams narrows a List call. MaxRecords of zero means no limit.
type ListParams struct {
	Formula    string
	MaxRecords int
	Sort       []Sort
	Fields     []string
}

// APIError is a non-2xx response from the store.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airtable: status %d %s", e.Status, e.Type)
	}
	return fmt.Sprintf("airtable: status %d %s: %s", e.Status, e.Type, e.Message)
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// List returns every record matching p, following offset pagination until
// the store stops returning one or MaxRecords is reached.
func (c *Client) List(ctx context.Context, table string, p ListParams) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		q := url.Values{}
		if p.Formula != "" {
			q.Set("filterByFormula", p.Formula)
		}
		if p.MaxRecords > 0 {
			q.Set("maxRecords", strconv.Itoa(p.MaxRecords))
		}
		for i, s := range p.Sort {
			q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
			if s.Direction != "" {
				q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
			}
		}
		for _, f := range p.Fields {
			q.Add("fields[]", f)
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, table, "list", c.tableURL(table)+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		if page.Offset == "" || (p.MaxRecords > 0 && len(records) >= p.MaxRecords) {
			break
		}
		offset = page.Offset
	}
	if p.MaxRecords > 0 && len(records) > p.MaxRecords {
		records = records[:p.MaxRecords]
	}
	return records, nil
}

// Get fetches one record by id. A 404 yields ErrRecordNotFound.
func (c *Client) Get(ctx context.Context, table, recordID string) (*Record, error) {
	var rec Record
	err := c.do(ctx, http.MethodGet, table, "get", c.tableURL(table)+"/"+url.PathEscape(recordID), nil, &rec)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a row. fields is marshalled as the record's "fields" object.
func (c *Client) Create(ctx context.Context, table string, fields any) (*Record, error) {
	body := map[string]any{"fields": fields, "typecast": true}
	var rec Record
	if err := c.do(ctx, http.MethodPost, table, "create", c.tableURL(table), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches the given fields of a row, leaving the others untouched.
func (c *Client) Update(ctx context.Context, table, recordID string, fields any) (*Record, error) {
	body := map[string]any{"fields": fields, "typecast": true}
	var rec Record
	if err := c.do(ctx, http.MethodPatch, table, "update", c.tableURL(table)+"/"+url.PathEscape(recordID), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) tableURL(table string) string {
	return c.endpoint + "/" + url.PathEscape(table)
}

// do performs one request. Every failure is wrapped in
// domain.ErrStoreUnavailable so callers can map it without knowing the adapter.
func (c *Client) do(ctx context.Context, method, table, op, rawURL string, in, out any) (err error) {
	timer := prometheus.NewTimer(metrics.StoreRequestDuration.WithLabelValues(table, op))
	defer func() {
		timer.ObserveDuration()
		if err != nil {
			metrics.StoreErrorsTotal.WithLabelValues(table, op).Inc()
		}
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("airtable: encode %s body: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrStoreUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrStoreUnavailable, op, table, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %w", domain.ErrStoreUnavailable, op, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, parseAPIError(res.StatusCode, raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode %s response: %w", domain.ErrStoreUnavailable, op, err)
		}
	}
	return nil
}

// parseAPIError accepts both error shapes the API uses: an object with type
// and message, or a bare string such as "NOT_FOUND".
func parseAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}
	var env errorResponse
	if json.Unmarshal(raw, &env) != nil || len(env.Error) == 0 {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}
	var obj struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if json.Unmarshal(env.Error, &obj) == nil {
		apiErr.Type = obj.Type
		apiErr.Message = obj.Message
		return apiErr
	}
	var s string
	if json.Unmarshal(env.Error, &s) == nil {
		apiErr.Type = s
	}
	return apiErr
}
