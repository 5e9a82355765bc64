package compliance

import (
	"context"
	"strings"
)

// Status maps requirement keys to pass/fail. An empty Status means the
// evaluation as a whole failed (project metadata could not be fetched).
type Status map[string]bool

// Score counts the satisfied requirements.
func (s Status) Score() int {
	score := 0
	for _, ok := range s {
		if ok {
			score++
		}
	}
	return score
}

// Total is the number of checklist entries.
func (s Status) Total() int { return len(s) }

// Tier is the qualitative compliance verdict.
type Tier string

const (
	TierExcellent        Tier = "Excellent"
	TierGood             Tier = "Good"
	TierNeedsImprovement Tier = "Needs Improvement"
	TierPoor             Tier = "Poor"
)

// Tier buckets the score: 100% Excellent, >=80% Good, >=60% Needs
// Improvement, below that Poor.
func (s Status) Tier() Tier {
	total := s.Total()
	if total == 0 {
		return TierPoor
	}
	score := s.Score()
	switch {
	case score == total:
		return TierExcellent
	case float64(score) >= float64(total)*0.8:
		return TierGood
	case float64(score) >= float64(total)*0.6:
		return TierNeedsImprovement
	default:
		return TierPoor
	}
}

// Evaluate runs the full checklist against a project and returns the 8-key
// status map. If the project's own metadata record cannot be fetched the
// whole evaluation is discarded and nil is returned, even when every file
// and template check already succeeded: the description and tag flags
// cannot be derived without it.
func (c *Checker) Evaluate(ctx context.Context, projectID int) Status {
	status := Status{}

	for _, file := range RequiredFiles {
		if flexibleFiles[strings.TrimSuffix(file, ".md")] {
			status[file] = c.FileExistsFlexible(ctx, projectID, file)
		} else {
			status[file] = c.FileExists(ctx, projectID, file)
		}
	}

	status[KeyIssueTemplates] = c.HasTemplates(ctx, projectID, IssueTemplatePatterns)
	status[KeyMergeRequestTemplates] = c.HasTemplates(ctx, projectID, MergeRequestTemplatePatterns)

	project := c.api.GetProject(ctx, projectID)
	if project == nil {
		return nil
	}
	status[KeyDescriptionPresent] = project.Description != ""
	status[KeyTagsPresent] = len(project.TagList) > 0

	return status
}
