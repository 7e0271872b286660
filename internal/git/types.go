package git

// Ref selects the revision of a catalog repository to read.
// At most one of Branch, Tag and Commit is set; none means the remote HEAD.
type Ref struct {
	URL    string
	Branch string
	Tag    string
	Commit string
}

// Document is a catalog document read from a repository revision
type Document struct {
	// Path of the document inside the repository
	Path string

	// Content is the raw document
	Content []byte

	// Commit is the hash of the revision the document was read at
	Commit string

	// Branch is set when the revision was resolved through a branch
	Branch string
}
