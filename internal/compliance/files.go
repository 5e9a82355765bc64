package compliance

import (
	"context"
	"strings"
)

// branchPrecedence is the fixed order of default branches probed for file
// existence. Not configurable.
var branchPrecedence = []string{"master", "main"}

// FileExists reports whether the file exists on any candidate default
// branch, probing them in precedence order and stopping at the first hit.
func (c *Checker) FileExists(ctx context.Context, projectID int, filePath string) bool {
	for _, branch := range branchPrecedence {
		if c.api.FileExistsOnBranch(ctx, projectID, filePath, branch) {
			return true
		}
	}
	return false
}

// FileExistsOnBranch probes a single named branch.
func (c *Checker) FileExistsOnBranch(ctx context.Context, projectID int, filePath, branch string) bool {
	return c.api.FileExistsOnBranch(ctx, projectID, filePath, branch)
}

// FileExistsFlexible checks the canonical path first, then, for files
// designated flexible, a fixed ordered list of case and extension variants:
// the bare base name, upper/lower case, and the same crossed with .txt and
// .rst. Short-circuits on the first variant found.
func (c *Checker) FileExistsFlexible(ctx context.Context, projectID int, canonicalPath string) bool {
	if c.FileExists(ctx, projectID, canonicalPath) {
		return true
	}
	base := strings.TrimSuffix(canonicalPath, ".md")
	if !flexibleFiles[base] {
		return false
	}
	if c.FileExists(ctx, projectID, base) {
		return true
	}
	variants := []string{
		strings.ToUpper(base),
		strings.ToLower(base),
		base + ".txt",
		strings.ToUpper(base) + ".txt",
		strings.ToLower(base) + ".txt",
		base + ".rst",
		strings.ToUpper(base) + ".rst",
		strings.ToLower(base) + ".rst",
	}
	for _, v := range variants {
		if c.FileExists(ctx, projectID, v) {
			return true
		}
	}
	return false
}
