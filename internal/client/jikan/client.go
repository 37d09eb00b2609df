package jikan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client talks to the Jikan REST API (MyAnimeList mirror).
type Client struct {
	host       string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jikan API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host string) *Client {
	if host == "" {
		host = "https://api.jikan.moe/v4"
	}
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// SearchRaw returns the raw JSON body of a title search, ordered by
// popularity ascending as the UI expects.
func (c *Client) SearchRaw(ctx context.Context, q string, page, limit int) ([]byte, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("order_by", "popularity")
	query.Set("sort", "asc")
	return c.doRequest(ctx, "/anime", query)
}

// AnimeFullRaw returns the raw JSON body of the full detail endpoint.
func (c *Client) AnimeFullRaw(ctx context.Context, id int64) ([]byte, error) {
	return c.doRequest(ctx, fmt.Sprintf("/anime/%d/full", id), nil)
}

// TopRaw returns the raw JSON body of the global popularity listing.
func (c *Client) TopRaw(ctx context.Context, page, limit int) ([]byte, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return c.doRequest(ctx, "/top/anime", query)
}

// SeasonNowRaw returns the raw JSON body of the current-season listing.
func (c *Client) SeasonNowRaw(ctx context.Context, page int) ([]byte, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return c.doRequest(ctx, "/seasons/now", query)
}

// GetAnimeFull fetches and decodes the full detail of one anime. An unknown
// id yields ErrNotInCatalog, whether the API signals it with HTTP 404 or with
// a 200 body carrying no data object.
func (c *Client) GetAnimeFull(ctx context.Context, id int64) (*Anime, []byte, error) {
	body, err := c.AnimeFullRaw(ctx, id)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil, ErrNotInCatalog
		}
		return nil, nil, err
	}
	anime, err := parseAnime(body)
	if err != nil {
		return nil, body, err
	}
	return anime, body, nil
}
