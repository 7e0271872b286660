// Package git reads catalog documents from Git repositories.
//
// Each read is a bare clone into a go-billy memfs object store: no worktree
// is checked out and nothing touches the local disk. The document is read
// straight from the commit tree and the store is released before returning.
package git
