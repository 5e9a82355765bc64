// Package gitlab is a minimal client for the GitLab REST API (v4). It covers
// only the endpoints glcheck consumes: project lookup, user search, project
// listing, repository file metadata, and repository tree listing.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated requests against one GitLab instance.
type Client struct {
	baseURL    string
	apiBase    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the instance rooted at baseURL
// (e.g. "https://code.swecha.org"). The token is sent as PRIVATE-TOKEN on
// every request.
func NewClient(baseURL, token string) *Client {
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: base,
		apiBase: base + "/api/v4",
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// BaseURL returns the instance root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON performs an authenticated GET of an API path relative to /api/v4
// and returns the HTTP status and raw body. Transport failures are returned
// as errors; any HTTP status, including 404, is data for the caller to
// interpret. There are no retries.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	u := c.apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response for %s: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// getInto unmarshals a 200 response into out. A non-200 status or transport
// failure returns ok=false with no error: absence and failure are
// indistinguishable by design, and callers treat both as "not found".
func (c *Client) getInto(ctx context.Context, path string, query url.Values, out any) bool {
	status, body, err := c.GetJSON(ctx, path, query)
	if err != nil || status != http.StatusOK {
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false
	}
	return true
}

// GetProject fetches a project by numeric ID. Returns nil if the lookup
// does not succeed.
func (c *Client) GetProject(ctx context.Context, projectID int) *Project {
	var p Project
	if !c.getInto(ctx, fmt.Sprintf("/projects/%d", projectID), nil, &p) {
		return nil
	}
	return &p
}

// GetProjectByPath fetches a project by its namespaced path
// (e.g. "group/project"). The path is URL-encoded as a single segment.
func (c *Client) GetProjectByPath(ctx context.Context, namespacedPath string) *Project {
	var p Project
	if !c.getInto(ctx, "/projects/"+url.PathEscape(namespacedPath), nil, &p) {
		return nil
	}
	return &p
}

// FindUser resolves a username via the user-search endpoint. GitLab returns
// a list; the first entry is the exact match. Returns nil when no user is
// found or the request fails.
func (c *Client) FindUser(ctx context.Context, username string) *User {
	q := url.Values{"username": {username}}
	var users []User
	if !c.getInto(ctx, "/users", q, &users) || len(users) == 0 {
		return nil
	}
	return &users[0]
}

// FileExistsOnBranch reports whether a repository file exists on the given
// branch, using the single-file metadata endpoint. Any non-200 outcome,
// including transport failure, reads as absent.
func (c *Client) FileExistsOnBranch(ctx context.Context, projectID int, filePath, branch string) bool {
	path := fmt.Sprintf("/projects/%d/repository/files/%s", projectID, url.PathEscape(filePath))
	status, _, err := c.GetJSON(ctx, path, url.Values{"ref": {branch}})
	return err == nil && status == http.StatusOK
}

// ListTree lists the repository tree under dir. Recursive listings are
// capped at a single page of perPage entries; large directories are
// silently truncated.
func (c *Client) ListTree(ctx context.Context, projectID int, dir string, recursive bool, perPage int) ([]TreeEntry, error) {
	q := url.Values{
		"path":     {dir},
		"per_page": {fmt.Sprintf("%d", perPage)},
	}
	if recursive {
		q.Set("recursive", "true")
	}
	path := fmt.Sprintf("/projects/%d/repository/tree", projectID)
	status, body, err := c.GetJSON(ctx, path, q)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list tree for project %d: status %d", projectID, status)
	}
	var entries []TreeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse tree listing: %w", err)
	}
	return entries, nil
}
