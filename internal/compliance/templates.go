package compliance

import (
	"context"
	"regexp"
	"strings"
)

// templateDir is the directory tree scanned for issue and merge-request
// templates.
const templateDir = ".gitlab"

// treePageSize caps the tree listing at a single page. Directories with
// more entries are silently truncated.
const treePageSize = 100

// Template filename patterns, matched case-insensitively against lower-cased
// blob names. The variants tolerate singular/plural and run-together naming
// ("issue template", "issuetemplates", "mr-template", ...).
var (
	IssueTemplatePatterns = compilePatterns([]string{
		`issue.*template.*\.md$`,
		`issue.*templates.*\.md$`,
		`issuetemplate.*\.md$`,
		`issuetemplates.*\.md$`,
	})

	MergeRequestTemplatePatterns = compilePatterns([]string{
		`merge.*request.*template.*\.md$`,
		`merge.*request.*templates.*\.md$`,
		`mr.*template.*\.md$`,
		`mr.*templates.*\.md$`,
		`mergerequesttemplate.*\.md$`,
		`mergerequesttemplates.*\.md$`,
	})
)

func compilePatterns(exprs []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}

// MatchesTemplatePatterns reports whether a filename matches any pattern.
// Matching is case-insensitive but extension-sensitive: only .md files can
// match, regardless of pattern.
func MatchesTemplatePatterns(filename string, patterns []*regexp.Regexp) bool {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".md") {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// HasTemplates reports whether any file under .gitlab/ (recursively)
// matches the given pattern set. A failed listing reads as "no templates":
// absence of the directory is indistinguishable from an API error.
func (c *Checker) HasTemplates(ctx context.Context, projectID int, patterns []*regexp.Regexp) bool {
	entries, err := c.api.ListTree(ctx, projectID, templateDir, true, treePageSize)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		if MatchesTemplatePatterns(entry.Name, patterns) {
			return true
		}
	}
	return false
}
