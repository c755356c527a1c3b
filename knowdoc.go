// Package knowdoc turns an offline-generated API documentation tree into flat,
// per-package markdown knowledge files suitable for feeding a language model.
// It resolves the packages of a source tree, generates their documentation,
// serves the generated tree locally, crawls each package's page index,
// extracts and converts every page, and writes one artifact per package.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., cargo/, chi/, goquery/, sqlite/).
package knowdoc
