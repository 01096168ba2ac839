package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"steamsync/internal/config"
)

// Client provides access to the Steam listing, detail, and achievement
// endpoints. All outbound requests pass through a shared rate limiter so the
// remote service is never hit faster than configured.
type Client struct {
	appListURL      string
	appDetailsURL   string
	achievementsURL string
	httpClient      *http.Client
	limiter         *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Steam API client from configuration.
func New(cfg config.Steam, opts ...Option) (*Client, error) {
	for name, value := range map[string]string{
		"applist url":      cfg.AppListURL,
		"appdetails url":   cfg.AppDetailsURL,
		"achievements url": cfg.AchievementsURL,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("steam %s required", name)
		}
	}

	client := &Client{
		appListURL:      strings.TrimSpace(cfg.AppListURL),
		appDetailsURL:   strings.TrimSpace(cfg.AppDetailsURL),
		achievementsURL: strings.TrimSpace(cfg.AchievementsURL),
		httpClient:      &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second},
		limiter:         rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AppList fetches the full {appid, name} listing.
func (c *Client) AppList(ctx context.Context) (map[int64]string, error) {
	var envelope AppListEnvelope
	if err := c.getJSON(ctx, c.appListURL, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch app list: %w", err)
	}

	apps := make(map[int64]string, len(envelope.AppList.Apps))
	for _, entry := range envelope.AppList.Apps {
		apps[entry.AppID] = entry.Name
	}
	return apps, nil
}

// AppDetails fetches the detail payload for one appid. The envelope is
// returned even when the remote reports success=false; classifying that is
// the normalizer's job. A missing envelope for the id is a transport-level
// error.
func (c *Client) AppDetails(ctx context.Context, appID int64) (*AppEnvelope, error) {
	params := url.Values{}
	params.Set("appids", strconv.FormatInt(appID, 10))

	payload := map[string]*AppEnvelope{}
	if err := c.getJSON(ctx, c.appDetailsURL, params, &payload); err != nil {
		return nil, fmt.Errorf("fetch details for %d: %w", appID, err)
	}

	envelope, ok := payload[strconv.FormatInt(appID, 10)]
	if !ok || envelope == nil {
		return nil, fmt.Errorf("details for %d missing from response", appID)
	}
	return envelope, nil
}

// AchievementPercentages fetches global unlock percentages for one appid.
func (c *Client) AchievementPercentages(ctx context.Context, appID int64) ([]AchievementPercentage, error) {
	params := url.Values{}
	params.Set("gameid", strconv.FormatInt(appID, 10))

	var envelope achievementsEnvelope
	if err := c.getJSON(ctx, c.achievementsURL, params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch achievements for %d: %w", appID, err)
	}
	return envelope.AchievementPercentages.Achievements, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, target any) error {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ErrEmptyListing indicates the listing source produced no apps.
var ErrEmptyListing = errors.New("listing contains no apps")
