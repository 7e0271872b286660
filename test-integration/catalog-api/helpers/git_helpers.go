package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/onsi/gomega"
)

// GitTestRepository is a local repository served over file://
type GitTestRepository struct {
	Path     string
	CloneURL string
	repo     *git.Repository
}

// CreateGitRepository initializes a repository in dir
func CreateGitRepository(dir string) *GitTestRepository {
	repoPath := filepath.Join(dir, "catalog-repo")
	gomega.Expect(os.MkdirAll(repoPath, 0750)).To(gomega.Succeed())

	repo, err := git.PlainInit(repoPath, false)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	return &GitTestRepository{
		Path:     repoPath,
		CloneURL: fmt.Sprintf("file://%s", repoPath),
		repo:     repo,
	}
}

// CommitCatalog writes the catalog to filename and commits it
func (r *GitTestRepository) CommitCatalog(filename string, data CatalogData, message string) {
	path := filepath.Join(r.Path, filename)
	gomega.Expect(os.MkdirAll(filepath.Dir(path), 0750)).To(gomega.Succeed())
	gomega.Expect(os.WriteFile(path, MarshalCatalog(data), 0600)).To(gomega.Succeed())

	worktree, err := r.repo.Worktree()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	_, err = worktree.Add(filename)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
}

// Branch returns the name of the checked out branch
func (r *GitTestRepository) Branch() string {
	head, err := r.repo.Head()
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return head.Name().Short()
}
