package gitlab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// pageSize is the fixed per_page value for paged project listings.
	pageSize = 100
	// maxPages is a safety cap on pagination. Hitting it means the result
	// set is almost certainly incomplete.
	maxPages = 1000
)

// ProjectList is the aggregated result of a paged project listing.
// Truncated is set when the pagination safety cap was reached, so callers
// can warn that some projects may be missing.
type ProjectList struct {
	Projects  []Project
	Truncated bool
}

// ListAllProjects walks the paged /projects endpoint, appending results
// until a short page (end of data), a failed request (keep what was
// collected so far), or the page cap. Pages are 1-indexed. No
// deduplication is performed; ordering is whatever the params request.
func (c *Client) ListAllProjects(ctx context.Context, params url.Values) ProjectList {
	var result ProjectList

	for page := 1; ; page++ {
		if page > maxPages {
			result.Truncated = true
			break
		}

		q := url.Values{}
		for k, vs := range params {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(pageSize))

		status, body, err := c.GetJSON(ctx, "/projects", q)
		if err != nil || status != http.StatusOK {
			break
		}

		var projects []Project
		if err := json.Unmarshal(body, &projects); err != nil {
			break
		}
		if len(projects) == 0 {
			break
		}

		result.Projects = append(result.Projects, projects...)
		if len(projects) < pageSize {
			break
		}
	}

	return result
}
