package ui

import (
	"os"

	"github.com/popcli/pop/internal/branding"
	"golang.org/x/term"
)

// IsNonInteractive detects if the current execution context is non-interactive.
// Indicators, in priority order:
//
// 1. POP_NON_INTERACTIVE=true
// 2. CI environment detection (CI, GITHUB_ACTIONS, GITLAB_CI, CIRCLECI, JENKINS_HOME)
// 3. stdin is not a TTY
func IsNonInteractive() bool {
	if os.Getenv(branding.EnvVar("NON_INTERACTIVE")) == "true" {
		return true
	}
	if isCIEnvironment() {
		return true
	}
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// isCIEnvironment checks for common CI environment variables.
func isCIEnvironment() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_HOME",
	}

	for _, envVar := range ciVars {
		value := os.Getenv(envVar)
		if value == "true" || value == "1" {
			return true
		}
		// JENKINS_HOME is set to a path.
		if envVar == "JENKINS_HOME" && value != "" {
			return true
		}
	}
	return false
}
