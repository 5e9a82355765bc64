package compliance

import (
	"context"
	"fmt"
)

// ProfileReadme is the outcome of a profile-repository README check.
// ReadmeURL is set only when the README was located on a known branch.
type ProfileReadme struct {
	Found     bool
	ReadmeURL string
}

// CheckProfileReadme checks the user's profile repository
// (<username>/<username>) for a README.md and, when present, resolves the
// blob URL on whichever branch holds it (main preferred for the link).
func (c *Checker) CheckProfileReadme(ctx context.Context, username string) ProfileReadme {
	project := c.api.GetProjectByPath(ctx, username+"/"+username)
	if project == nil {
		return ProfileReadme{}
	}

	if !c.FileExists(ctx, project.ID, "README.md") {
		return ProfileReadme{}
	}

	result := ProfileReadme{Found: true}
	for _, branch := range []string{"main", "master"} {
		if c.api.FileExistsOnBranch(ctx, project.ID, "README.md", branch) {
			result.ReadmeURL = fmt.Sprintf("%s/%s/%s/-/blob/%s/README.md",
				c.api.BaseURL(), username, username, branch)
			break
		}
	}
	return result
}
