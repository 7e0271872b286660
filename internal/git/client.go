package git

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// MaxDocumentSize caps the catalog documents read from a repository
const MaxDocumentSize = 32 << 20

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go Client

// Client reads catalog documents from Git repositories
type Client interface {
	// ReadDocument reads the file at path from the revision selected by ref
	ReadDocument(ctx context.Context, ref *Ref, path string) (*Document, error)
}

// defaultGitClient implements Client using go-git
type defaultGitClient struct {
	maxSize int64
}

var _ Client = (*defaultGitClient)(nil)

// NewDefaultGitClient creates a new defaultGitClient
func NewDefaultGitClient() Client {
	return &defaultGitClient{maxSize: MaxDocumentSize}
}

// ReadDocument clones ref into memory, reads one document and releases the clone
func (c *defaultGitClient) ReadDocument(ctx context.Context, ref *Ref, path string) (*Document, error) {
	if ref == nil || ref.URL == "" {
		return nil, fmt.Errorf("repository URL is required")
	}
	if ref.Commit != "" && !plumbing.IsHash(ref.Commit) {
		return nil, fmt.Errorf("invalid commit hash %q", ref.Commit)
	}

	storerFs := memfs.New()
	objectCache := cache.NewObjectLRUDefault()
	defer func() {
		objectCache.Clear()
		if err := util.RemoveAll(storerFs, "/"); err != nil {
			slog.Debug("Failed to clear in-memory object store", "error", err)
		}
	}()

	// A nil worktree makes the clone bare
	repo, err := git.CloneContext(ctx, filesystem.NewStorage(storerFs, objectCache), nil, cloneOptions(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	commit, branch, err := resolveCommit(repo, ref)
	if err != nil {
		return nil, err
	}

	content, err := c.readFile(commit, path)
	if err != nil {
		return nil, err
	}

	return &Document{
		Path:    path,
		Content: content,
		Commit:  commit.Hash.String(),
		Branch:  branch,
	}, nil
}

// cloneOptions returns a shallow single-ref clone unless a commit is pinned,
// which needs the full history to be reachable
func cloneOptions(ref *Ref) *git.CloneOptions {
	opts := &git.CloneOptions{URL: ref.URL}
	if ref.Commit != "" {
		return opts
	}

	opts.Depth = 1
	switch {
	case ref.Branch != "":
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref.Branch)
		opts.SingleBranch = true
	case ref.Tag != "":
		opts.ReferenceName = plumbing.NewTagReferenceName(ref.Tag)
		opts.SingleBranch = true
	}
	return opts
}

// resolveCommit returns the commit selected by ref and the branch it was reached through
func resolveCommit(repo *git.Repository, ref *Ref) (*object.Commit, string, error) {
	if ref.Commit != "" {
		commit, err := repo.CommitObject(plumbing.NewHash(ref.Commit))
		if err != nil {
			return nil, "", fmt.Errorf("failed to find commit %s: %w", ref.Commit, err)
		}
		return commit, "", nil
	}

	head, err := repo.Head()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, "", fmt.Errorf("failed to get commit object: %w", err)
	}

	branch := ""
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return commit, branch, nil
}

func (c *defaultGitClient) readFile(commit *object.Commit, path string) ([]byte, error) {
	file, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", path, err)
	}

	if file.Size > c.maxSize {
		return nil, fmt.Errorf("file %s is %d bytes, larger than the %d byte limit", path, file.Size, c.maxSize)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}

	return []byte(content), nil
}
