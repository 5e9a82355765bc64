package compliance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/codehealth/glcheck/internal/gitlab"
)

// InputKind tags the outcome of classifying a free-text input.
type InputKind int

const (
	// KindProject means the input resolved to a single project.
	KindProject InputKind = iota
	// KindProjectList means the input was a username with one or more
	// member projects.
	KindProjectList
	// KindError means the input could not be resolved; Message explains why.
	KindError
)

// Classification is the tagged result of Classify. Exactly one of the three
// cases applies, per Kind.
type Classification struct {
	Kind      InputKind
	Project   *gitlab.Project
	Projects  []gitlab.Project
	Truncated bool // project list may be incomplete (pagination cap)
	Message   string
}

func classifyErr(format string, args ...any) Classification {
	return Classification{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}

// Classify inspects a free-text input and resolves it as a project URL, a
// numeric project ID, or a username, in that order of precedence.
//
// Numeric input is treated exclusively as a project ID, never a user ID, to
// avoid ambiguity with numeric usernames.
func (c *Checker) Classify(ctx context.Context, raw string) Classification {
	input := strings.TrimSpace(raw)
	base := c.api.BaseURL()

	switch {
	case strings.Contains(input, base):
		path := projectPathFromURL(input, base)
		project := c.api.GetProjectByPath(ctx, path)
		if project == nil {
			return classifyErr("Could not fetch project from the provided URL")
		}
		return Classification{Kind: KindProject, Project: project}

	case isDigits(input):
		id, err := strconv.Atoi(input)
		if err != nil {
			return classifyErr("No project found with ID: %s", input)
		}
		project := c.api.GetProject(ctx, id)
		if project == nil {
			return classifyErr("No project found with ID: %s", input)
		}
		return Classification{Kind: KindProject, Project: project}

	default:
		return c.classifyUsername(ctx, input)
	}
}

// classifyUsername resolves a username and gathers the member projects
// ordered by last activity, across all pages.
func (c *Checker) classifyUsername(ctx context.Context, username string) Classification {
	user := c.api.FindUser(ctx, username)
	if user == nil {
		return classifyErr("No projects found for username: %s", username)
	}

	params := url.Values{
		"membership": {"true"},
		"order_by":   {"last_activity_at"},
	}
	list := c.api.ListAllProjects(ctx, params)
	if len(list.Projects) == 0 {
		return classifyErr("No projects found for username: %s", username)
	}
	return Classification{
		Kind:      KindProjectList,
		Projects:  list.Projects,
		Truncated: list.Truncated,
	}
}

// projectPathFromURL extracts the namespaced project path from an instance
// URL, dropping any trailing /-/... route suffix.
func projectPathFromURL(input, base string) string {
	path := input
	if idx := strings.Index(path, base); idx >= 0 {
		path = path[idx+len(base):]
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.SplitN(path, "/-/", 2)[0]
	return strings.TrimRight(path, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
