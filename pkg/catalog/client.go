package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var baseURL = "http://localhost:5173"

const (
	// MajorsPath lists the lectures of the major programmes.
	MajorsPath = "schedules-majors.json"
	// LiberalArtsPath lists the liberal-arts lectures.
	LiberalArtsPath = "schedules-liberal-arts.json"
)

// Client handles HTTP requests to the lecture catalog
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client. An empty base URL uses the default catalog host.
func NewClient(base string) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(base, "/"),
	}
}

// BaseURL returns the catalog host this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchLectures downloads one lecture list, e.g. MajorsPath.
func (c *Client) FetchLectures(ctx context.Context, path string) ([]Lecture, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "timetabler/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	var lectures []Lecture
	if err := json.NewDecoder(resp.Body).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("failed to decode JSON response from %s: %w", url, err)
	}

	return lectures, nil
}
