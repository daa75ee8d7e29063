package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the path of an optional TOML configuration file
type File struct {
	Path string
}

// FileContent is the schema of the TOML configuration file
type FileContent struct {
	APIURL          string   `toml:"api_url"`
	DownloadURL     string   `toml:"download_url"`
	MetadataTimeout string   `toml:"metadata_timeout"`
	AssetTimeout    string   `toml:"asset_timeout"`
	Platforms       []string `toml:"platforms"`
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("FORMULASYNC_CONFIG"),
		},
	}
}

// Load reads the configuration file. It returns nil without error when no
// path is configured.
func (c *File) Load() (*FileContent, error) {
	if c.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var content FileContent
	if err := toml.Unmarshal(data, &content); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML", goerr.V("path", c.Path))
	}

	return &content, nil
}

// Apply copies file values into settings whose flag was not given on the
// command line or through the environment
func (fc *FileContent) Apply(isSet func(name string) bool, gh *GitHub, sync *Sync) error {
	if fc == nil {
		return nil
	}

	if fc.APIURL != "" && !isSet("api-url") {
		gh.APIURL = fc.APIURL
	}
	if fc.DownloadURL != "" && !isSet("download-url") {
		sync.DownloadURL = fc.DownloadURL
	}
	if len(fc.Platforms) > 0 && !isSet("platform") {
		sync.Platforms = fc.Platforms
	}

	if fc.MetadataTimeout != "" && !isSet("metadata-timeout") {
		d, err := time.ParseDuration(fc.MetadataTimeout)
		if err != nil {
			return goerr.Wrap(err, "invalid metadata_timeout", goerr.V("value", fc.MetadataTimeout))
		}
		gh.MetadataTimeout = d
	}
	if fc.AssetTimeout != "" && !isSet("asset-timeout") {
		d, err := time.ParseDuration(fc.AssetTimeout)
		if err != nil {
			return goerr.Wrap(err, "invalid asset_timeout", goerr.V("value", fc.AssetTimeout))
		}
		sync.AssetTimeout = d
	}

	return nil
}
