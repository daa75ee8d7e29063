package model

import "strings"

// ReleaseInfo represents the latest published release of a repository
type ReleaseInfo struct {
	Tag     string // Release tag name, e.g. "v1.1.0"
	Version string // Tag without the leading "v", e.g. "1.1.0"
}

// NewReleaseInfo builds ReleaseInfo from a release tag
func NewReleaseInfo(tag string) *ReleaseInfo {
	return &ReleaseInfo{
		Tag:     tag,
		Version: strings.TrimPrefix(tag, "v"),
	}
}
