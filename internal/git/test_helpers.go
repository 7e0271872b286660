package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestCommit describes one commit created by CreateTestRepo
type TestCommit struct {
	Files map[string]string // Map of filename to content
	Tag   string            // Optional lightweight tag pointing at the commit
}

// CreateTestRepo creates a Git repository in a temporary directory with one
// commit per entry on the default branch. It returns the repository path and
// the commit hashes in order.
func CreateTestRepo(t *testing.T, commits ...TestCommit) (string, []plumbing.Hash) {
	t.Helper()

	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}

	workTree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	author := &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	hashes := make([]plumbing.Hash, 0, len(commits))
	for i, commit := range commits {
		for filename, content := range commit.Files {
			filePath := filepath.Join(repoDir, filename)
			if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", filename, err)
			}
			if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", filename, err)
			}
			if _, err := workTree.Add(filename); err != nil {
				t.Fatalf("Failed to add file %s: %v", filename, err)
			}
		}

		hash, err := workTree.Commit("Commit "+string(rune('A'+i)), &git.CommitOptions{
			Author:            author,
			AllowEmptyCommits: true,
		})
		if err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}

		if commit.Tag != "" {
			if _, err := repo.CreateTag(commit.Tag, hash, nil); err != nil {
				t.Fatalf("Failed to create tag %s: %v", commit.Tag, err)
			}
		}
		hashes = append(hashes, hash)
	}

	return repoDir, hashes
}
