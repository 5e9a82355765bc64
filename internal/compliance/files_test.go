package compliance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	tests := []struct {
		name   string
		branch string // branch carrying the file; "" for absent
		path   string
		want   bool
	}{
		{name: "present on master", branch: "master", path: "README.md", want: true},
		{name: "present on main only", branch: "main", path: "README.md", want: true},
		{name: "absent on both branches", branch: "", path: "README.md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGitLab(t)
			if tt.branch != "" {
				fake.addFile(7, tt.branch, tt.path)
			}
			checker := newTestChecker(t, fake)

			got := checker.FileExists(context.Background(), 7, tt.path)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileExistsBranchPrecedence(t *testing.T) {
	fake := newFakeGitLab(t)
	fake.addFile(7, "master", "LICENSE")
	checker := newTestChecker(t, fake)

	assert.True(t, checker.FileExists(context.Background(), 7, "LICENSE"))
	// master is probed first and hits, so main is never consulted.
	assert.Equal(t, []string{"7/master/LICENSE"}, fake.fileProbes)
}

func TestFileExistsFlexible(t *testing.T) {
	tests := []struct {
		name string
		file string // stored file, on main
		want bool
	}{
		{name: "canonical markdown", file: "CHANGELOG.md", want: true},
		{name: "bare name", file: "CHANGELOG", want: true},
		{name: "lowercase txt variant", file: "changelog.txt", want: true},
		{name: "uppercase rst variant", file: "CHANGELOG.rst", want: true},
		{name: "lowercase no extension", file: "changelog", want: true},
		{name: "unrelated file only", file: "HISTORY.md", want: false},
		{name: "nothing at all", file: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGitLab(t)
			if tt.file != "" {
				fake.addFile(7, "main", tt.file)
			}
			checker := newTestChecker(t, fake)

			got := checker.FileExistsFlexible(context.Background(), 7, "CHANGELOG.md")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileExistsFlexibleOnlyForDesignatedFiles(t *testing.T) {
	fake := newFakeGitLab(t)
	fake.addFile(7, "main", "readme.txt")
	checker := newTestChecker(t, fake)

	// README is not a flexible file: variants must not be probed.
	assert.False(t, checker.FileExistsFlexible(context.Background(), 7, "README.md"))
}
