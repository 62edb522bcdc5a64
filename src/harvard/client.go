// Package harvard fetches object records from the Harvard Art Museums API.
package harvard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/antonholmquist/jason"
)

const (
	DefaultBaseURL  = "https://api.harvardartmuseums.org"
	DefaultPageSize = 100

	objectPath = "/object"
	userAgent  = "museum-insights"
)

// Record is one untyped object document as returned by the API.
type Record = *jason.Object

// Classification is a museum category accepted by the fetcher.
type Classification string

const (
	Paintings   Classification = "Paintings"
	Sculpture   Classification = "Sculpture"
	Drawings    Classification = "Drawings"
	Fragments   Classification = "Fragments"
	Photographs Classification = "Photographs"
)

// Classifications returns the labels the fetcher accepts, in display order.
func Classifications() []Classification {
	return []Classification{Paintings, Sculpture, Drawings, Fragments, Photographs}
}

// ParseClassification validates a label against the known set.
func ParseClassification(label string) (Classification, error) {
	for _, c := range Classifications() {
		if string(c) == label {
			return c, nil
		}
	}
	return "", apperr.Invalid("harvard.classification", "unknown classification %q", label)
}

// Fetcher produces raw records for a classification.
type Fetcher interface {
	FetchClassification(ctx context.Context, classification Classification, pages int) ([]Record, error)
}

// Client talks to the object endpoint. It keeps no state between calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at another API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithPageSize overrides the number of records requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchClassification requests pages 1..pages for classification and returns
// all records in page order. Any failed page aborts the whole fetch. An empty
// page, or a page past the API's declared page count, ends the fetch early.
func (c *Client) FetchClassification(ctx context.Context, classification Classification, pages int) ([]Record, error) {
	if _, err := ParseClassification(string(classification)); err != nil {
		return nil, err
	}
	if pages <= 0 {
		return nil, apperr.Invalid("harvard.fetch", "page count must be positive, got %d", pages)
	}

	var all []Record
	for page := 1; page <= pages; page++ {
		records, totalPages, err := c.fetchPage(ctx, classification, page)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)

		if len(records) == 0 || (totalPages > 0 && page >= totalPages) {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, classification Classification, page int) ([]Record, int, error) {
	op := fmt.Sprintf("harvard.fetch page %d", page)

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("classification", string(classification))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+objectPath+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, 0, apperr.New(apperr.ErrTransport, op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apperr.New(apperr.ErrTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, apperr.New(apperr.ErrTransport, op, fmt.Errorf("non-OK response: %s", resp.Status))
	}

	body, err := jason.NewObjectFromReader(resp.Body)
	if err != nil {
		return nil, 0, apperr.New(apperr.ErrTransport, op, fmt.Errorf("decoding response: %w", err))
	}

	// a missing or null records array reads as an empty page
	var records []Record
	if value, err := body.GetValue("records"); err == nil && value.Null() != nil {
		records, err = body.GetObjectArray("records")
		if err != nil {
			return nil, 0, apperr.New(apperr.ErrTransport, op, fmt.Errorf("unexpected records field: %w", err))
		}
	}

	totalPages := 0
	if n, err := body.GetInt64("info", "pages"); err == nil {
		totalPages = int(n)
	}
	return records, totalPages, nil
}
