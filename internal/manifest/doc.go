// Package manifest parses and validates template.yaml, the manifest every
// project template ships at its root. The manifest records which template
// produced a project, the template release, and the token parameters it was
// generated with.
package manifest
