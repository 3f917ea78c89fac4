package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is an authenticated accessor for the Basecamp classic API.
// Credentials are immutable; a Client is safe for concurrent use.
type Client struct {
	baseURL   string
	username  string
	password  string
	userAgent string
	http      *http.Client
}

// NewClient creates a Basecamp API client from a parsed config.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL:   cfg.URL + "/api/v1",
		username:  cfg.Username,
		password:  cfg.Password,
		userAgent: fmt.Sprintf("Campsync (%s)", cfg.Username),
		http:      &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// Useful for tests.
func NewClientWithHTTPClient(cfg *Config, httpClient *http.Client) *Client {
	c := NewClient(cfg)
	c.http = httpClient
	return c
}

// ListProjects enumerates all projects visible to the credentials.
// Any non-success response or transport failure aborts the call; there
// are no retries.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var records []projectRecord
	if err := c.getJSON(ctx, c.baseURL+"/projects.json", &records); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, len(records))
	for i, r := range records {
		projects[i] = domain.Project{ID: r.ID, Name: r.Name}
	}
	return projects, nil
}

// ListTodos returns the full detail records of every to-do in a project.
//
// Pages are fetched starting at 1; every summary on a page costs one more
// request to its own detail URL before the next page is considered. The
// first empty page terminates the iteration, so the final page always
// costs one round trip. Any failure on any page or detail fetch aborts
// the whole call and the partial result is discarded.
func (c *Client) ListTodos(ctx context.Context, projectID int64) ([]Todo, error) {
	pageURL := c.baseURL + "/projects/" + strconv.FormatInt(projectID, 10) + "/todos.json"

	var todos []Todo
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var summaries []TodoSummary
		if err := c.getJSON(ctx, pageURL+"?page="+strconv.Itoa(page), &summaries); err != nil {
			return nil, fmt.Errorf("list todos page %d: %w", page, err)
		}

		for _, summary := range summaries {
			var todo Todo
			if err := c.getJSON(ctx, summary.URL, &todo); err != nil {
				return nil, fmt.Errorf("todo %d detail: %w", summary.ID, err)
			}
			todos = append(todos, todo)
		}

		if len(summaries) == 0 {
			break
		}
		page++
	}

	return todos, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
