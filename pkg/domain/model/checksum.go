package model

// PlatformChecksum holds the freshly computed archive hash for a platform and
// the hash it replaces in the formula
type PlatformChecksum struct {
	Platform Platform
	URL      string
	NewHash  string // 64 lowercase hex characters
	OldHash  string // empty when the formula had no hash for the platform
}

// SyncResult is the outcome of a formula synchronization
type SyncResult struct {
	Release   *ReleaseInfo
	Checksums []PlatformChecksum
	Skipped   []Platform
	Original  string
	Updated   string
}

// Changed reports whether synchronization modified the formula text
func (r *SyncResult) Changed() bool {
	return r.Original != r.Updated
}

// SyncInput is the request for synchronizing one formula file
type SyncInput struct {
	Repository  string // "owner/repo"
	FormulaPath string
	DryRun      bool
}
