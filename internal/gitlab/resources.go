package gitlab

// Project is the subset of GitLab's project record that glcheck reads.
// It is a transient snapshot; nothing is persisted from it except the
// fields copied into a history record.
type Project struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	NameWithNamespace string   `json:"name_with_namespace"`
	PathWithNamespace string   `json:"path_with_namespace"`
	WebURL            string   `json:"web_url"`
	Description       string   `json:"description"`
	StarCount         int      `json:"star_count"`
	ForksCount        int      `json:"forks_count"`
	LastActivityAt    string   `json:"last_activity_at"`
	TagList           []string `json:"tag_list"`
}

// URL returns the project's web URL, falling back to the instance base plus
// the namespaced path when the API omitted web_url.
func (p Project) URL(baseURL string) string {
	if p.WebURL != "" {
		return p.WebURL
	}
	return baseURL + "/" + p.PathWithNamespace
}

// LastActivityDate truncates the last-activity timestamp to its date part.
func (p Project) LastActivityDate() string {
	if len(p.LastActivityAt) >= 10 {
		return p.LastActivityAt[:10]
	}
	return p.LastActivityAt
}

// User is the subset of GitLab's user record needed for username resolution.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	WebURL   string `json:"web_url"`
}

// TreeEntry is one row of a repository tree listing. Type is "blob" for
// files and "tree" for directories.
type TreeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}
