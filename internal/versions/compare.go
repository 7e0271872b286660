// Package versions provides build version information and version comparison helpers.
package versions

import "github.com/Masterminds/semver/v3"

// IsNewerVersion reports whether newVersion is strictly greater than oldVersion.
// It uses semantic versioning for comparison when both strings are valid semver,
// and falls back to lexicographic string comparison otherwise.
func IsNewerVersion(newVersion, oldVersion string) bool {
	newSemver, errNew := semver.NewVersion(newVersion)
	oldSemver, errOld := semver.NewVersion(oldVersion)

	if errNew != nil || errOld != nil {
		return newVersion > oldVersion
	}

	return newSemver.GreaterThan(oldSemver)
}

// IsDowngrade reports whether a catalog document version is older than the one currently served.
// Unversioned documents are never considered a downgrade.
func IsDowngrade(served, fetched string) bool {
	if served == "" || fetched == "" {
		return false
	}
	return IsNewerVersion(served, fetched)
}
