package compliance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/codehealth/glcheck/internal/gitlab"
)

// fakeGitLab is a minimal in-memory GitLab API for tests. Route handling
// uses the escaped path so URL-encoded namespaced project lookups
// (group%2Fproject) stay distinguishable from numeric ID lookups.
type fakeGitLab struct {
	t *testing.T

	projects     map[int]gitlab.Project
	byPath       map[string]gitlab.Project
	files        map[string]bool // "id/branch/path" -> present
	tree         map[int][]gitlab.TreeEntry
	treeFail     bool
	users        map[string]gitlab.User
	listing      []gitlab.Project
	metadataFail bool

	fileProbes []string // "id/branch/path" in probe order
	pageHits   int
}

func newFakeGitLab(t *testing.T) *fakeGitLab {
	return &fakeGitLab{
		t:        t,
		projects: make(map[int]gitlab.Project),
		byPath:   make(map[string]gitlab.Project),
		files:    make(map[string]bool),
		tree:     make(map[int][]gitlab.TreeEntry),
		users:    make(map[string]gitlab.User),
	}
}

func (f *fakeGitLab) addProject(p gitlab.Project) {
	f.projects[p.ID] = p
	if p.PathWithNamespace != "" {
		f.byPath[p.PathWithNamespace] = p
	}
}

func (f *fakeGitLab) addFile(projectID int, branch, path string) {
	f.files[fmt.Sprintf("%d/%s/%s", projectID, branch, path)] = true
}

var (
	fileRoute = regexp.MustCompile(`^/api/v4/projects/(\d+)/repository/files/(.+)$`)
	treeRoute = regexp.MustCompile(`^/api/v4/projects/(\d+)/repository/tree$`)
	projRoute = regexp.MustCompile(`^/api/v4/projects/([^/]+)$`)
)

func (f *fakeGitLab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("PRIVATE-TOKEN") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	path := r.URL.EscapedPath()
	switch {
	case path == "/api/v4/users":
		f.serveUsers(w, r)
	case path == "/api/v4/projects":
		f.serveListing(w, r)
	case fileRoute.MatchString(path):
		f.serveFile(w, r, fileRoute.FindStringSubmatch(path))
	case treeRoute.MatchString(path):
		f.serveTree(w, r, treeRoute.FindStringSubmatch(path))
	case projRoute.MatchString(path):
		f.serveProject(w, projRoute.FindStringSubmatch(path))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeGitLab) serveProject(w http.ResponseWriter, m []string) {
	raw := m[1]
	if id, err := strconv.Atoi(raw); err == nil {
		if f.metadataFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if p, ok := f.projects[id]; ok {
			writeJSON(w, p)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}
	decoded := strings.ReplaceAll(raw, "%2F", "/")
	if p, ok := f.byPath[decoded]; ok {
		writeJSON(w, p)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeGitLab) serveFile(w http.ResponseWriter, r *http.Request, m []string) {
	branch := r.URL.Query().Get("ref")
	filePath := strings.ReplaceAll(m[2], "%2F", "/")
	key := m[1] + "/" + branch + "/" + filePath
	f.fileProbes = append(f.fileProbes, key)
	if f.files[key] {
		writeJSON(w, map[string]string{"file_name": filePath, "ref": branch})
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeGitLab) serveTree(w http.ResponseWriter, r *http.Request, m []string) {
	if f.treeFail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	id, _ := strconv.Atoi(m[1])
	entries, ok := f.tree[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, entries)
}

func (f *fakeGitLab) serveUsers(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if u, ok := f.users[username]; ok {
		writeJSON(w, []gitlab.User{u})
		return
	}
	writeJSON(w, []gitlab.User{})
}

func (f *fakeGitLab) serveListing(w http.ResponseWriter, r *http.Request) {
	f.pageHits++
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 || perPage < 1 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	start := (page - 1) * perPage
	if start >= len(f.listing) {
		writeJSON(w, []gitlab.Project{})
		return
	}
	end := start + perPage
	if end > len(f.listing) {
		end = len(f.listing)
	}
	writeJSON(w, f.listing[start:end])
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newTestChecker spins up the fake API and returns a Checker wired to it.
func newTestChecker(t *testing.T, f *fakeGitLab) *Checker {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return New(gitlab.NewClient(srv.URL, "test-token"))
}
