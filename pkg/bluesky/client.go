package bluesky

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bskycrawl/pkg/errors"
	"bskycrawl/pkg/logger"
	"bskycrawl/pkg/models"
)

// Client is a thin client over the search endpoint. It performs exactly
// one network request per call and never retries; the caller decides
// disposition on failure.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	language   string
	limit      int
	logger     logger.Logger
}

// NewClient creates a search client. language and limit are fixed for
// the lifetime of the client and sent on every request.
func NewClient(timeout time.Duration, language string, limit int, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "bskycrawl/1.0",
		},
		baseURL:  BaseURL,
		language: language,
		limit:    limit,
		logger:   log,
	}
}

// SetBaseURL overrides the API host, used to point at a test server.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SearchPosts fetches one page of results for the query within the
// window. cursor continues a previous page; empty means first page.
// The resolved request is logged before it is issued, so a crashed
// run's log shows the last attempted call.
func (c *Client) SearchPosts(query string, w models.TimeWindow, cursor string) (*models.Page, error) {
	url := SearchURL(c.baseURL, query, w, c.language, c.limit, cursor)

	logger.LogSearchRequest(query, w.Since.Format(time.RFC3339), w.Until.Format(time.RFC3339), cursor)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Transport(err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorWithFields("search request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": time.Since(start),
		})
		return nil, errors.Transport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorWithFields("search request rejected", map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
		})
		return nil, errors.HTTPStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport(err)
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse search response", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return nil, errors.Decode(err)
	}

	c.logger.DebugWithFields("search request completed", map[string]interface{}{
		"url":      url,
		"posts":    len(result.Posts),
		"cursor":   result.Cursor,
		"duration": time.Since(start),
	})

	return result.ToPage(), nil
}
