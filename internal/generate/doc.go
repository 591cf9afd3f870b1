// Package generate runs the "new parachain" workflow: it resolves the
// destination directory, resolves a conflict with an existing directory
// through the user, materializes the chosen template, initializes a git
// repository with one commit, and reports the outcome.
//
// The template materializer and the repository initializer are injected so
// the workflow can be exercised without network access or a git identity.
package generate
