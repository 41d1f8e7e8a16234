package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rmarques/wishflix/internal/config"
	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// ErrNoResults is returned when a search matches nothing.
var ErrNoResults = errors.New("no results")

// Client handles communication with the TMDB API
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	genres     *cache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	baseURL := cfg.TMDBBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:     cfg.TMDBAPIKey,
		baseURL:    baseURL,
		language:   cfg.TMDBLanguage,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		genres:     cache.New(24*time.Hour, time.Hour),
		logger:     logger,
	}
}

// doRequest performs an authenticated GET against the TMDB API
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	fullURL := c.baseURL + path + "?" + params.Encode()
	c.logger.WithField("path", path).Debug("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
