package main

import (
	"fmt"

	"github.com/fwojciec/knowdoc"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Supported source types:")
	for _, kind := range knowdoc.SourceKinds() {
		fmt.Fprintf(deps.Stdout, "- %s\n", kind)
	}
	return nil
}
