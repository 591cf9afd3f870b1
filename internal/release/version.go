// Package release picks the newest template release tag.
package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Latest returns the highest semver tag among tags, preserving its original
// spelling (e.g. "v1.2.0"). Tags that do not parse as semver are ignored.
// Pre-releases are only chosen when no stable release exists.
// Returns "" and false when no tag qualifies.
func Latest(tags []string) (string, bool) {
	var (
		best       string
		bestVer    *semver.Version
		bestPre    string
		bestPreVer *semver.Version
	)

	for _, tag := range tags {
		v, err := parseSemver(tag)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			if bestPreVer == nil || v.GreaterThan(bestPreVer) {
				bestPre, bestPreVer = tag, v
			}
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = tag, v
		}
	}

	if bestVer != nil {
		return best, true
	}
	if bestPreVer != nil {
		return bestPre, true
	}
	return "", false
}

// parseSemver strips a leading "v" and parses the version string strictly.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.StrictNewVersion(version)
}
