package formula

import (
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/formulasync/pkg/domain/model"
)

var versionPattern = regexp.MustCompile(`version\s+"[^"]+"`)

// ReplaceVersion rewrites the first `version "..."` field. Text without a
// version field is returned unchanged.
func ReplaceVersion(text, version string) string {
	loc := versionPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + `version "` + version + `"` + text[loc[1]:]
}

// ReplaceURL rewrites every `url "..."` field whose value contains the platform marker
func ReplaceURL(text string, platform model.Platform, newURL string) string {
	pattern := regexp.MustCompile(`(url\s+")[^"]*` + regexp.QuoteMeta(string(platform)) + `[^"]*(")`)
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := pattern.FindStringSubmatch(match)
		return sub[1] + newURL + sub[2]
	})
}

// ReplaceHash substitutes every literal occurrence of oldHash. An empty oldHash is a no-op.
func ReplaceHash(text, oldHash, newHash string) string {
	if oldHash == "" {
		return text
	}
	return strings.ReplaceAll(text, oldHash, newHash)
}

// Patch applies the version, URL and hash substitutions in order. Checksums
// without an OldHash only get their URL updated.
func Patch(text string, release *model.ReleaseInfo, checksums []model.PlatformChecksum) string {
	text = ReplaceVersion(text, release.Version)

	for _, c := range checksums {
		if c.NewHash == "" {
			continue
		}
		text = ReplaceURL(text, c.Platform, c.URL)
		text = ReplaceHash(text, c.OldHash, c.NewHash)
	}

	return text
}

// SharedHashes returns old hash values claimed by more than one platform.
// Patching such a formula gives every occurrence the hash of whichever
// platform is processed first.
func SharedHashes(hashes map[model.Platform]string) map[string][]model.Platform {
	owners := make(map[string][]model.Platform)
	for _, p := range sortedPlatforms(hashes) {
		owners[hashes[p]] = append(owners[hashes[p]], p)
	}
	for h, ps := range owners {
		if len(ps) < 2 {
			delete(owners, h)
		}
	}
	return owners
}

func sortedPlatforms(hashes map[model.Platform]string) []model.Platform {
	platforms := make([]model.Platform, 0, len(hashes))
	for p := range hashes {
		platforms = append(platforms, p)
	}
	slices.Sort(platforms)
	return platforms
}
