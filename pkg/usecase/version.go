package usecase

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// compareVersions compares the formula version with the release version.
// Returns -1 if current is older, 0 if equal, 1 if newer. Versions that are
// not valid semver fall back to plain string equality, reporting -1 when they
// differ.
func compareVersions(current, latest string) int {
	cv, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return fallbackCompare(current, latest)
	}
	lv, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return fallbackCompare(current, latest)
	}
	return cv.Compare(lv)
}

func fallbackCompare(current, latest string) int {
	if strings.TrimPrefix(current, "v") == strings.TrimPrefix(latest, "v") {
		return 0
	}
	return -1
}
