package knowdoc

import "context"

// DocTree is the absolute filesystem path of a generated documentation root.
// It is written once by a DocBuilder and read-only afterwards.
type DocTree string

// DocBuilder runs the external documentation generator for a source tree.
type DocBuilder interface {
	// BuildDocs generates documentation for the tree at root and returns the
	// location of the output.
	// Returns EGENERATOR if the generator fails and EOUTPUT if it succeeds
	// without producing the expected output directory.
	BuildDocs(ctx context.Context, root string) (DocTree, error)
}
