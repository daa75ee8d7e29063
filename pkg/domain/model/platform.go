package model

import (
	"fmt"
	"strings"
)

// Platform is an OS/architecture pair used as a release asset suffix
type Platform string

const (
	PlatformDarwinAMD64 Platform = "darwin-amd64"
	PlatformDarwinARM64 Platform = "darwin-arm64"
	PlatformLinuxAMD64  Platform = "linux-amd64"
	PlatformLinuxARM64  Platform = "linux-arm64"
)

// DefaultPlatforms returns the platforms published by default, in marker precedence order
func DefaultPlatforms() []Platform {
	return []Platform{
		PlatformDarwinAMD64,
		PlatformDarwinARM64,
		PlatformLinuxAMD64,
		PlatformLinuxARM64,
	}
}

// AssetName returns the archive filename for the platform, e.g. "tool-v1.0.0-linux-amd64.tar.gz"
func (p Platform) AssetName(repoName, tag string) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", repoName, tag, p)
}

// AssetURL returns the download URL of the platform archive under downloadBase
func (p Platform) AssetURL(downloadBase string, repo *Repository, tag string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(downloadBase, "/"), repo.Owner, repo.Name, tag, p.AssetName(repo.Name, tag))
}

// ParsePlatforms converts "os-arch" strings into platforms, rejecting empty or malformed entries
func ParsePlatforms(values []string) ([]Platform, error) {
	platforms := make([]Platform, 0, len(values))
	seen := make(map[Platform]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		goos, arch, ok := strings.Cut(v, "-")
		if !ok || goos == "" || arch == "" || strings.ContainsAny(v, " \t\"/") {
			return nil, fmt.Errorf("invalid platform %q: expected 'os-arch'", v)
		}
		p := Platform(v)
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	return platforms, nil
}
