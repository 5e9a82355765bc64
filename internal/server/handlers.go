package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/history"
)

// Handlers carries the dependencies shared by all routes.
type Handlers struct {
	checker *compliance.Checker
	store   *history.Store
}

// NewHandlers creates the handler set.
func NewHandlers(checker *compliance.Checker, store *history.Store) Handlers {
	return Handlers{checker: checker, store: store}
}

type checkEntry struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Passed   bool   `json:"passed"`
}

type complianceView struct {
	Project   projectView  `json:"project"`
	Score     int          `json:"score"`
	Total     int          `json:"total"`
	Tier      string       `json:"tier"`
	Checks    []checkEntry `json:"checks"`
	Truncated bool         `json:"truncated,omitempty"`
}

type projectView struct {
	ID                int    `json:"id"`
	NameWithNamespace string `json:"name_with_namespace"`
	WebURL            string `json:"web_url"`
	StarCount         int    `json:"star_count"`
	ForksCount        int    `json:"forks_count"`
	LastActivity      string `json:"last_activity"`
}

func toProjectView(p *gitlab.Project, baseURL string) projectView {
	return projectView{
		ID:                p.ID,
		NameWithNamespace: p.NameWithNamespace,
		WebURL:            p.URL(baseURL),
		StarCount:         p.StarCount,
		ForksCount:        p.ForksCount,
		LastActivity:      p.LastActivityDate(),
	}
}

func toChecks(status compliance.Status) []checkEntry {
	categories := map[string]string{
		compliance.KeyIssueTemplates:        "templates",
		compliance.KeyMergeRequestTemplates: "templates",
		compliance.KeyDescriptionPresent:    "metadata",
		compliance.KeyTagsPresent:           "metadata",
	}
	checks := make([]checkEntry, 0, len(status))
	for _, key := range compliance.AllRequirements() {
		passed, ok := status[key]
		if !ok {
			continue
		}
		category := categories[key]
		if category == "" {
			category = "files"
		}
		checks = append(checks, checkEntry{Key: key, Category: category, Passed: passed})
	}
	return checks
}

// Check classifies a free-text input and, for single-project inputs, runs
// the evaluation. Username inputs return the candidate project list for the
// client to pick from.
func (h Handlers) Check(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "missing input parameter"})
		return
	}

	result := h.checker.Classify(c.Request.Context(), input)
	switch result.Kind {
	case compliance.KindError:
		c.JSON(http.StatusNotFound, gin.H{"err": result.Message})

	case compliance.KindProjectList:
		views := make([]projectView, 0, len(result.Projects))
		for i := range result.Projects {
			views = append(views, toProjectView(&result.Projects[i], h.checker.API().BaseURL()))
		}
		c.JSON(http.StatusOK, gin.H{"projects": views, "truncated": result.Truncated})

	case compliance.KindProject:
		h.respondWithEvaluation(c, input, result.Project)
	}
}

// ProjectCompliance evaluates a project addressed directly by numeric ID.
func (h Handlers) ProjectCompliance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid project id"})
		return
	}
	project := h.checker.API().GetProject(c.Request.Context(), id)
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "No project found with ID: " + c.Param("id")})
		return
	}
	h.respondWithEvaluation(c, c.Param("id"), project)
}

func (h Handlers) respondWithEvaluation(c *gin.Context, input string, project *gitlab.Project) {
	status := h.checker.Evaluate(c.Request.Context(), project.ID)
	if len(status) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"err": "failed to fetch compliance info"})
		return
	}

	if h.store != nil {
		if _, err := h.store.RecordRun(c.Request.Context(), input, project.ID, project.NameWithNamespace, status); err != nil {
			log.Printf("record run: %v", err)
		}
	}

	c.JSON(http.StatusOK, complianceView{
		Project: toProjectView(project, h.checker.API().BaseURL()),
		Score:   status.Score(),
		Total:   status.Total(),
		Tier:    string(status.Tier()),
		Checks:  toChecks(status),
	})
}

// ProfileReadme runs the profile-repository README check.
func (h Handlers) ProfileReadme(c *gin.Context) {
	username := c.Param("username")
	result := h.checker.CheckProfileReadme(c.Request.Context(), username)
	c.JSON(http.StatusOK, gin.H{
		"username":   username,
		"found":      result.Found,
		"readme_url": result.ReadmeURL,
	})
}

// History lists recent recorded runs.
func (h Handlers) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []history.Run{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.store.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
