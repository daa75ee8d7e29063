package config

import (
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/formulasync/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	defaultAPIURL          = "https://api.github.com/"
	defaultMetadataTimeout = 30 * time.Second
)

// GitHub holds GitHub API configuration
type GitHub struct {
	APIURL          string
	Token           string `masq:"secret"`
	AppID           int64
	InstallationID  int64
	PrivateKey      string `masq:"secret"`
	MetadataTimeout time.Duration
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub REST API base URL",
			Value:       defaultAPIURL,
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("FORMULASYNC_API_URL"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for API requests (optional, raises rate limits)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("FORMULASYNC_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (optional, alternative to token)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("FORMULASYNC_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("FORMULASYNC_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM content or path to PEM file)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("FORMULASYNC_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.DurationFlag{
			Name:        "metadata-timeout",
			Usage:       "Timeout for the latest release request",
			Value:       defaultMetadataTimeout,
			Destination: &c.MetadataTimeout,
			Sources:     cli.EnvVars("FORMULASYNC_METADATA_TIMEOUT"),
		},
	}
}

// Validate checks the timeout and that GitHub App credentials are complete when any is given
func (c *GitHub) Validate() error {
	if c.MetadataTimeout <= 0 {
		return goerr.New("metadata-timeout must be positive", goerr.V("timeout", c.MetadataTimeout))
	}
	if c.AppID == 0 && c.InstallationID == 0 && c.PrivateKey == "" {
		return nil
	}
	if c.AppID == 0 || c.InstallationID == 0 || c.PrivateKey == "" {
		return goerr.New("github-app-id, github-app-installation-id and github-app-private-key must be set together",
			goerr.V("app_id", c.AppID),
			goerr.V("installation_id", c.InstallationID),
		)
	}
	return nil
}

// NewClient builds a release locator from the configuration
func (c *GitHub) NewClient() (interfaces.ReleaseLocator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := []githubinfra.Option{
		githubinfra.WithBaseURL(c.APIURL),
		githubinfra.WithTimeout(c.MetadataTimeout),
	}

	switch {
	case c.AppID != 0:
		key, err := c.privateKey()
		if err != nil {
			return nil, err
		}
		opts = append(opts, githubinfra.WithAppInstallation(c.AppID, c.InstallationID, key))
	case c.Token != "":
		opts = append(opts, githubinfra.WithToken(c.Token))
	}

	return githubinfra.NewClient(opts...)
}

// privateKey accepts either PEM content or a path to a PEM file
func (c *GitHub) privateKey() ([]byte, error) {
	if strings.Contains(c.PrivateKey, "-----BEGIN") {
		return []byte(c.PrivateKey), nil
	}

	data, err := os.ReadFile(c.PrivateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key file")
	}
	return data, nil
}
