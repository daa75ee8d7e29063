package config

import (
	"io"
	"time"

	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/formulasync/pkg/infra/asset"
	"github.com/m-mizutani/formulasync/pkg/infra/formulafile"
	"github.com/m-mizutani/formulasync/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	defaultDownloadURL  = "https://github.com"
	defaultAssetTimeout = 120 * time.Second
)

// Sync holds configuration of the formula synchronization
type Sync struct {
	DownloadURL  string
	AssetTimeout time.Duration
	Platforms    []string
	DryRun       bool
	Diff         bool
}

func defaultPlatformNames() []string {
	var names []string
	for _, p := range model.DefaultPlatforms() {
		names = append(names, string(p))
	}
	return names
}

// Flags returns CLI flags for sync configuration
func (c *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the updated formula instead of writing it",
			Destination: &c.DryRun,
		},
		&cli.BoolFlag{
			Name:        "diff",
			Usage:       "With --dry-run, print a unified diff instead of the full formula",
			Destination: &c.Diff,
		},
		&cli.StringFlag{
			Name:        "download-url",
			Usage:       "Base URL serving release downloads",
			Value:       defaultDownloadURL,
			Destination: &c.DownloadURL,
			Sources:     cli.EnvVars("FORMULASYNC_DOWNLOAD_URL"),
		},
		&cli.DurationFlag{
			Name:        "asset-timeout",
			Usage:       "Timeout for downloading a single release asset",
			Value:       defaultAssetTimeout,
			Destination: &c.AssetTimeout,
			Sources:     cli.EnvVars("FORMULASYNC_ASSET_TIMEOUT"),
		},
		&cli.StringSliceFlag{
			Name:        "platform",
			Usage:       "Platform (os-arch) whose release asset is hashed, repeatable",
			Value:       defaultPlatformNames(),
			Destination: &c.Platforms,
			Sources:     cli.EnvVars("FORMULASYNC_PLATFORMS"),
		},
	}
}

// NewUseCase builds the sync use case. Previews are written to out.
func (c *Sync) NewUseCase(locator interfaces.ReleaseLocator, out io.Writer) (interfaces.SyncUseCase, error) {
	if c.AssetTimeout <= 0 {
		return nil, goerr.New("asset-timeout must be positive", goerr.V("timeout", c.AssetTimeout))
	}

	platforms, err := model.ParsePlatforms(c.Platforms)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid platform configuration")
	}
	if len(platforms) == 0 {
		return nil, goerr.New("at least one platform is required")
	}

	hasher := asset.NewHasher(asset.WithTimeout(c.AssetTimeout))
	store := formulafile.New(
		formulafile.WithOutput(out),
		formulafile.WithDiff(c.Diff),
	)

	return usecase.NewSync(locator, hasher, store,
		usecase.WithPlatforms(platforms),
		usecase.WithDownloadBaseURL(c.DownloadURL),
	), nil
}
