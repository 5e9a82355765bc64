package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/history"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var upstreamFileRoute = regexp.MustCompile(`^/api/v4/projects/(\d+)/repository/files/`)

// newUpstream fakes just enough of the GitLab API for handler tests:
// project 7 is fully compliant except for tags.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	project := gitlab.Project{
		ID:                7,
		NameWithNamespace: "group / proj",
		PathWithNamespace: "group/proj",
		Description:       "described",
		LastActivityAt:    "2024-06-01T00:00:00Z",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.EscapedPath()
		switch {
		case path == "/api/v4/projects/7" || path == "/api/v4/projects/group%2Fproj":
			json.NewEncoder(w).Encode(project)
		case upstreamFileRoute.MatchString(path):
			if r.URL.Query().Get("ref") == "main" {
				fmt.Fprint(w, `{"file_name":"x"}`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case strings.HasSuffix(path, "/repository/tree"):
			json.NewEncoder(w).Encode([]gitlab.TreeEntry{
				{Name: "issue_template.md", Type: "blob"},
				{Name: "merge_request_template.md", Type: "blob"},
			})
		case path == "/api/v4/users":
			json.NewEncoder(w).Encode([]gitlab.User{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, store *history.Store) *gin.Engine {
	t.Helper()
	upstream := newUpstream(t)
	checker := compliance.New(gitlab.NewClient(upstream.URL, "t"))
	return New(checker, store)
}

func doGet(g *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	g.ServeHTTP(w, req)
	return w
}

func TestCheckMissingInput(t *testing.T) {
	g := newTestAPI(t, nil)
	w := doGet(g, "/v1/check")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckUnknownInput(t *testing.T) {
	g := newTestAPI(t, nil)
	w := doGet(g, "/v1/check?input=nobody")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No projects found for username: nobody", resp["err"])
}

func TestCheckByProjectID(t *testing.T) {
	g := newTestAPI(t, nil)
	w := doGet(g, "/v1/check?input=7")

	require.Equal(t, http.StatusOK, w.Code)
	var view complianceView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 7, view.Project.ID)
	assert.Equal(t, 8, view.Total)
	// Everything passes except tags_present.
	assert.Equal(t, 7, view.Score)
	assert.Equal(t, "Good", view.Tier)
	assert.Len(t, view.Checks, 8)
}

func TestProjectCompliance(t *testing.T) {
	g := newTestAPI(t, nil)

	w := doGet(g, "/v1/projects/7/compliance")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(g, "/v1/projects/nope/compliance")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(g, "/v1/projects/404/compliance")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckRecordsHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer store.Close()

	g := newTestAPI(t, store)
	w := doGet(g, "/v1/check?input=7")
	require.Equal(t, http.StatusOK, w.Code)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "7", runs[0].Input)
	assert.Equal(t, 7, runs[0].ProjectID)
}

func TestHistoryEndpointWithoutStore(t *testing.T) {
	g := newTestAPI(t, nil)
	w := doGet(g, "/v1/history")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Runs []history.Run `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Runs)
}

func TestProfileReadmeEndpoint(t *testing.T) {
	g := newTestAPI(t, nil)
	w := doGet(g, "/v1/profile/ghost/readme")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Username string `json:"username"`
		Found    bool   `json:"found"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ghost", resp.Username)
	assert.False(t, resp.Found)
}
