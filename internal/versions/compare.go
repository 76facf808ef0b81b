package versions

import "github.com/Masterminds/semver/v3"

// IsNewerVersion reports whether candidate is strictly greater than current. Both are
// compared as semantic versions when they parse; otherwise as plain strings.
func IsNewerVersion(candidate, current string) bool {
	a, errA := semver.NewVersion(candidate)
	b, errB := semver.NewVersion(current)
	if errA != nil || errB != nil {
		return candidate > current
	}
	return a.GreaterThan(b)
}
