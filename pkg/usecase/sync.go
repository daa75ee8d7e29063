package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/formulasync/pkg/formula"
	"github.com/m-mizutani/goerr/v2"
)

const defaultDownloadBaseURL = "https://github.com"

type config struct {
	platforms       []model.Platform
	downloadBaseURL string
}

// Option is a functional option for the sync use case
type Option func(*config)

// WithPlatforms sets the platforms whose assets are hashed
func WithPlatforms(platforms []model.Platform) Option {
	return func(c *config) {
		c.platforms = platforms
	}
}

// WithDownloadBaseURL sets the host that serves release downloads
func WithDownloadBaseURL(baseURL string) Option {
	return func(c *config) {
		c.downloadBaseURL = baseURL
	}
}

type syncUseCase struct {
	locator         interfaces.ReleaseLocator
	hasher          interfaces.AssetHasher
	store           interfaces.FormulaStore
	platforms       []model.Platform
	downloadBaseURL string
}

// NewSync creates a new instance of SyncUseCase
func NewSync(
	locator interfaces.ReleaseLocator,
	hasher interfaces.AssetHasher,
	store interfaces.FormulaStore,
	opts ...Option,
) interfaces.SyncUseCase {
	cfg := &config{
		platforms:       model.DefaultPlatforms(),
		downloadBaseURL: defaultDownloadBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &syncUseCase{
		locator:         locator,
		hasher:          hasher,
		store:           store,
		platforms:       cfg.platforms,
		downloadBaseURL: cfg.downloadBaseURL,
	}
}

// Sync updates the formula at input.FormulaPath to the latest release of
// input.Repository. Assets that fail to download are skipped; the sync fails
// only when no asset could be hashed.
func (uc *syncUseCase) Sync(ctx context.Context, input *model.SyncInput) (*model.SyncResult, error) {
	logger := ctxlog.From(ctx)

	repo, err := model.ParseRepository(input.Repository)
	if err != nil {
		return nil, err
	}

	original, err := uc.store.Read(input.FormulaPath)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetching latest release", "repo", repo.String())
	release, err := uc.locator.LatestRelease(ctx, repo)
	if err != nil {
		return nil, err
	}

	current := formula.CurrentVersion(original)
	logger.Info("Found latest release",
		"tag", release.Tag,
		"version", release.Version,
		"formula_version", current,
	)
	switch compareVersions(current, release.Version) {
	case 0:
		logger.Info("Formula version already matches latest release", "version", current)
	case 1:
		logger.Warn("Latest release is older than formula version",
			"formula_version", current,
			"release_version", release.Version,
		)
	}

	oldHashes := formula.ExtractHashes(original, uc.platforms)
	for _, p := range uc.platforms {
		if h, ok := oldHashes[p]; ok {
			logger.Debug("Found current sha256", "platform", p, "sha256", h)
		}
	}
	for h, platforms := range formula.SharedHashes(oldHashes) {
		logger.Warn("Platforms share the same sha256, replacement is ambiguous",
			"sha256", h,
			"platforms", platforms,
		)
	}

	result := &model.SyncResult{
		Release:  release,
		Original: original,
	}

	for _, p := range uc.platforms {
		url := p.AssetURL(uc.downloadBaseURL, repo, release.Tag)
		logger.Info("Downloading asset", "platform", p, "url", url)

		sum, err := uc.hasher.HashURL(ctx, url)
		if err != nil {
			logger.Warn("Skipped asset, download failed",
				"platform", p,
				"url", url,
				"error", err,
			)
			result.Skipped = append(result.Skipped, p)
			continue
		}

		checksum := model.PlatformChecksum{
			Platform: p,
			URL:      url,
			NewHash:  sum,
			OldHash:  oldHashes[p],
		}
		if checksum.OldHash == "" {
			logger.Warn("No sha256 found in formula for platform, hash left untouched", "platform", p)
		}
		result.Checksums = append(result.Checksums, checksum)
	}

	if len(result.Checksums) == 0 {
		return nil, goerr.New("no checksums could be fetched",
			goerr.V("repo", repo.String()),
			goerr.V("tag", release.Tag),
			goerr.T(model.ErrTagNoChecksums),
		)
	}

	result.Updated = formula.Patch(original, release, result.Checksums)

	if input.DryRun {
		if err := uc.store.Preview(input.FormulaPath, original, result.Updated); err != nil {
			return nil, goerr.Wrap(err, "failed to preview formula")
		}
		return result, nil
	}

	backupPath, err := uc.store.Commit(input.FormulaPath, result.Updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update formula", goerr.V("path", input.FormulaPath))
	}

	logger.Info("Formula updated",
		"path", input.FormulaPath,
		"backup", backupPath,
		"changed", result.Changed(),
	)

	return result, nil
}
