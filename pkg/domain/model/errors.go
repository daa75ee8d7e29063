package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the CLI can decide how to report them
var (
	ErrTagInvalidRepository = goerr.NewTag("invalid_repository")
	ErrTagFormulaNotFound   = goerr.NewTag("formula_not_found")
	ErrTagReleaseFetch      = goerr.NewTag("release_fetch")
	ErrTagAssetDownload     = goerr.NewTag("asset_download")
	ErrTagNoChecksums       = goerr.NewTag("no_checksums")
)
