package knowdoc

import "strings"

// SourceKind identifies a kind of documentation source.
// The set is closed: every kind has exactly one arm in the crawler's
// dispatch, and adding a kind means adding an arm.
type SourceKind string

// Supported source kinds.
const (
	// SourceRustdoc is a Cargo workspace documented by rustdoc.
	SourceRustdoc SourceKind = "rustdoc"
)

// sourceAliases maps accepted spellings to their kind.
var sourceAliases = map[string]SourceKind{
	"rustdoc":  SourceRustdoc,
	"cratesio": SourceRustdoc,
	"cargo":    SourceRustdoc,
}

// SourceKinds returns the supported source kinds.
func SourceKinds() []SourceKind {
	return []SourceKind{SourceRustdoc}
}

// ParseSourceKind returns the kind named by s.
// Returns EINVALID for unknown names.
func ParseSourceKind(s string) (SourceKind, error) {
	if kind, ok := sourceAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return kind, nil
	}
	return "", Errorf(EINVALID, "unsupported source type: %s", s)
}

// Source is a documentation source to turn into knowledge.
type Source struct {
	Kind SourceKind
	Path string
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Kind == "" {
		return Errorf(EINVALID, "source kind required")
	}
	if s.Path == "" {
		return Errorf(EINVALID, "source path required")
	}
	return nil
}
