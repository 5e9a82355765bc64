// Package compliance implements the community-health checklist: required
// file probes, template directory scanning, free-text input classification,
// and the evaluation that ties them together into a scored status map.
package compliance

import (
	"github.com/codehealth/glcheck/internal/gitlab"
)

// Requirement keys, as they appear in a Status map and in rendered reports.
const (
	KeyReadme                = "README.md"
	KeyContributing          = "CONTRIBUTING.md"
	KeyChangelog             = "CHANGELOG.md"
	KeyLicense               = "LICENSE"
	KeyIssueTemplates        = ".gitlab/issue_templates"
	KeyMergeRequestTemplates = ".gitlab/merge_request_templates"
	KeyDescriptionPresent    = "description_present"
	KeyTagsPresent           = "tags_present"
)

// RequiredFiles lists the canonical file requirements in report order.
var RequiredFiles = []string{
	KeyReadme,
	KeyContributing,
	KeyChangelog,
	KeyLicense,
}

// flexibleFiles are the base names allowed to satisfy their requirement
// under alternate case and extension variants.
var flexibleFiles = map[string]bool{
	"CHANGELOG": true,
}

// AllRequirements returns every checklist key in report order. A valid
// Status contains exactly these keys.
func AllRequirements() []string {
	return []string{
		KeyReadme,
		KeyContributing,
		KeyChangelog,
		KeyLicense,
		KeyIssueTemplates,
		KeyMergeRequestTemplates,
		KeyDescriptionPresent,
		KeyTagsPresent,
	}
}

// Checker runs compliance checks against one GitLab instance. All calls are
// synchronous and sequential; the checker holds no mutable state.
type Checker struct {
	api *gitlab.Client
}

// New creates a Checker backed by the given API client.
func New(api *gitlab.Client) *Checker {
	return &Checker{api: api}
}

// API exposes the underlying client for callers that need direct lookups
// (profile checks, metadata display).
func (c *Checker) API() *gitlab.Client { return c.api }
