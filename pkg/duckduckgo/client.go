package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ddgscraper/pkg/config"
	scrapererrors "ddgscraper/pkg/errors"
	"ddgscraper/pkg/logger"
)

// Client talks to the DuckDuckGo landing page, the i.js endpoint and the
// image hosts the results point to
type Client struct {
	searchClient   *http.Client
	downloadClient *http.Client
	headers        map[string]string
	baseURL        string
	locale         string
	logger         logger.Logger
}

// NewClient creates a new DuckDuckGo client
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.Search.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		searchClient: &http.Client{
			Timeout: cfg.Search.Timeout,
		},
		downloadClient: &http.Client{
			Timeout: cfg.Download.Timeout,
		},
		headers: map[string]string{
			"User-Agent": cfg.Search.UserAgent,
		},
		baseURL: baseURL,
		locale:  cfg.Search.Locale,
		logger:  log,
	}
}

// doRequest performs an HTTP GET with the configured headers
func (c *Client) doRequest(ctx context.Context, httpClient *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeUnknown, err, "failed to create request")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"url": rawURL,
	})

	resp, err := httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeNetwork, err, "network error")
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// Token fetches the landing page for query and scrapes its vqd token.
// Any failure is fatal for the query.
func (c *Client) Token(ctx context.Context, query string) (string, error) {
	pageURL := GetTokenPageURL(c.baseURL, query)

	resp, err := c.doRequest(ctx, c.searchClient, pageURL)
	if err != nil {
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeToken, err, "failed to fetch token page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorWithFields("failed trying to get vqd", map[string]interface{}{
			"query":  query,
			"status": resp.StatusCode,
		})
		return "", &scrapererrors.Error{
			Type:    scrapererrors.ErrorTypeToken,
			Message: fmt.Sprintf("token page returned status %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", scrapererrors.Wrap(scrapererrors.ErrorTypeToken, err, "failed to read token page")
	}

	return ExtractToken(body)
}

// Search fetches one page of image results starting at offset.
// A non-200 status yields an error wrapping ErrNoResults.
func (c *Client) Search(ctx context.Context, session Session, offset int) ([]Result, error) {
	searchURL := GetSearchURL(c.baseURL, c.locale, session, offset)

	resp, err := c.doRequest(ctx, c.searchClient, searchURL)
	if err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeSearch, err, "failed to fetch search page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnWithFields("request returned with status code", map[string]interface{}{
			"query":  session.Query,
			"offset": offset,
			"status": resp.StatusCode,
		})
		return nil, &scrapererrors.Error{
			Type:    scrapererrors.ErrorTypeSearch,
			Message: fmt.Sprintf("search page returned status %d", resp.StatusCode),
			Code:    resp.StatusCode,
			Err:     scrapererrors.ErrNoResults,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeSearch, err, "failed to read search page")
	}

	results, err := decodeResults(body)
	if err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse search response", map[string]interface{}{
			"query":        session.Query,
			"offset":       offset,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return nil, err
	}

	c.logger.InfoWithFields("request returned results", map[string]interface{}{
		"query":   session.Query,
		"offset":  offset,
		"results": len(results),
	})

	return results, nil
}

func decodeResults(body []byte) ([]Result, error) {
	var page SearchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeParsing, err, "failed to parse JSON")
	}
	if page.Results == nil {
		return nil, scrapererrors.New(scrapererrors.ErrorTypeParsing, "response has no results field")
	}

	for i, r := range *page.Results {
		if r.Image == "" {
			return nil, scrapererrors.New(scrapererrors.ErrorTypeParsing, fmt.Sprintf("result %d has no image field", i))
		}
	}
	return *page.Results, nil
}

// DownloadImage fetches imageURL with the download timeout. The status code
// is reported but not checked; callers decide by Content-Type.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) (*Image, error) {
	resp, err := c.doRequest(ctx, c.downloadClient, imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scrapererrors.Wrap(scrapererrors.ErrorTypeNetwork, err, "failed to read image body")
	}

	return &Image{
		URL:         imageURL,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Data:        data,
	}, nil
}
