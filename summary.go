package knowdoc

import "strings"

// NoArtifactsMessage is the summary reported when a run wrote no files.
const NoArtifactsMessage = "No Markdown files were created."

// RunSummary lists the artifacts written by one pipeline run, in write order.
type RunSummary struct {
	OutputDir string
	Artifacts []*Artifact
}

// Paths returns the paths of the written artifacts.
func (s *RunSummary) Paths() []string {
	paths := make([]string, 0, len(s.Artifacts))
	for _, a := range s.Artifacts {
		paths = append(paths, a.Path)
	}
	return paths
}

// Bytes returns the total size of the written artifacts.
func (s *RunSummary) Bytes() int {
	var n int
	for _, a := range s.Artifacts {
		n += a.Bytes
	}
	return n
}

// Tokens returns the total token estimate of the written artifacts.
func (s *RunSummary) Tokens() int {
	var n int
	for _, a := range s.Artifacts {
		n += a.Tokens
	}
	return n
}

// String renders the summary for display.
func (s *RunSummary) String() string {
	if s == nil || len(s.Artifacts) == 0 {
		return NoArtifactsMessage
	}

	var b strings.Builder
	b.WriteString("Created the following Markdown files in `")
	b.WriteString(s.OutputDir)
	b.WriteString("`:\n\n")
	for _, a := range s.Artifacts {
		b.WriteString("- ")
		b.WriteString(a.Path)
		b.WriteString("\n")
	}
	return b.String()
}
