// Package scaffold materializes project templates on disk. It powers the
// "pop new parachain" command: the Embedded materializer renders templates
// baked into the binary, and the Remote materializer clones a template's
// upstream repository at its latest release tag. Both render *.tmpl files
// with the token parameters from Config and report the template version.
package scaffold
