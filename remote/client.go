// Package remote talks to the hosted backend that owns the durable copy
// of allocations, projects, and settings. Authentication happens
// elsewhere; this client only carries the token it is given.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// Client defines the backend operations the application consumes.
type Client interface {
	FetchAllAllocations(ctx context.Context, userID string) (timesheet.AllAllocations, error)
	PutDay(ctx context.Context, userID, date string, entry timesheet.DailyEntry) error
	DeleteDay(ctx context.Context, userID, date string) error
	FetchProjects(ctx context.Context, userID string) ([]timesheet.Project, error)
	PutProjects(ctx context.Context, userID string, projects []timesheet.Project) error
	FetchSettings(ctx context.Context, userID string) (map[string]string, error)
	PutSettings(ctx context.Context, userID string, settings map[string]string) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIToken   string
	UserAgent  string
	HTTPClient httpDoer
}

// HTTPClient implements Client against the backend's JSON API.
type HTTPClient struct {
	baseURL    string
	apiToken   string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiToken:   strings.TrimSpace(cfg.APIToken),
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

func (c *HTTPClient) FetchAllAllocations(ctx context.Context, userID string) (timesheet.AllAllocations, error) {
	var all timesheet.AllAllocations
	if err := c.doJSON(ctx, http.MethodGet, c.userPath(userID, "allocations"), nil, &all); err != nil {
		return nil, fmt.Errorf("fetch allocations: %w", err)
	}
	if all == nil {
		all = make(timesheet.AllAllocations)
	}
	return all, nil
}

func (c *HTTPClient) PutDay(ctx context.Context, userID, date string, entry timesheet.DailyEntry) error {
	path := c.userPath(userID, "allocations") + "/" + url.PathEscape(date)
	if err := c.doJSON(ctx, http.MethodPut, path, entry, nil); err != nil {
		return fmt.Errorf("put day %s: %w", date, err)
	}
	return nil
}

func (c *HTTPClient) DeleteDay(ctx context.Context, userID, date string) error {
	path := c.userPath(userID, "allocations") + "/" + url.PathEscape(date)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	return nil
}

func (c *HTTPClient) FetchProjects(ctx context.Context, userID string) ([]timesheet.Project, error) {
	var projects []timesheet.Project
	if err := c.doJSON(ctx, http.MethodGet, c.userPath(userID, "projects"), nil, &projects); err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	return projects, nil
}

func (c *HTTPClient) PutProjects(ctx context.Context, userID string, projects []timesheet.Project) error {
	if err := c.doJSON(ctx, http.MethodPut, c.userPath(userID, "projects"), projects, nil); err != nil {
		return fmt.Errorf("put projects: %w", err)
	}
	return nil
}

func (c *HTTPClient) FetchSettings(ctx context.Context, userID string) (map[string]string, error) {
	var settings map[string]string
	if err := c.doJSON(ctx, http.MethodGet, c.userPath(userID, "settings"), nil, &settings); err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}
	if settings == nil {
		settings = make(map[string]string)
	}
	return settings, nil
}

func (c *HTTPClient) PutSettings(ctx context.Context, userID string, settings map[string]string) error {
	if err := c.doJSON(ctx, http.MethodPut, c.userPath(userID, "settings"), settings, nil); err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

func (c *HTTPClient) userPath(userID, resource string) string {
	return c.baseURL + "/users/" + url.PathEscape(userID) + "/" + resource
}

func (c *HTTPClient) doJSON(ctx context.Context, method, requestURL string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
