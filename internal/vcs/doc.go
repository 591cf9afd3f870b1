// Package vcs initializes a git repository for a freshly generated project
// and classifies failures so callers can react to specific causes, such as
// a missing author identity, without parsing error strings.
package vcs
