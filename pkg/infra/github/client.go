package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const defaultTimeout = 30 * time.Second

type config struct {
	baseURL        string
	token          string
	appID          int64
	installationID int64
	privateKey     []byte
	timeout        time.Duration
	transport      http.RoundTripper
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithBaseURL sets the REST API endpoint, e.g. a GitHub Enterprise URL
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithToken authenticates requests with a personal access token
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithAppInstallation authenticates requests as a GitHub App installation
func WithAppInstallation(appID, installationID int64, privateKey []byte) Option {
	return func(c *config) {
		c.appID = appID
		c.installationID = installationID
		c.privateKey = privateKey
	}
}

// WithTimeout sets the timeout of a metadata request
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport replaces the underlying HTTP transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

type client struct {
	githubClient *github.Client
	timeout      time.Duration
}

// NewClient creates a GitHub release locator. Requests are anonymous unless a
// token or App installation is configured.
func NewClient(opts ...Option) (interfaces.ReleaseLocator, error) {
	cfg := &config{
		timeout:   defaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := cfg.transport
	if cfg.appID != 0 {
		itr, err := ghinstallation.New(transport, cfg.appID, cfg.installationID, cfg.privateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.V("app_id", cfg.appID),
				goerr.V("installation_id", cfg.installationID),
			)
		}
		if cfg.baseURL != "" {
			itr.BaseURL = strings.TrimRight(cfg.baseURL, "/")
		}
		transport = itr
	}

	githubClient := github.NewClient(&http.Client{Transport: transport})
	if cfg.token != "" && cfg.appID == 0 {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		baseURL, err := url.Parse(strings.TrimRight(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", cfg.baseURL))
		}
		githubClient.BaseURL = baseURL
	}

	return &client{
		githubClient: githubClient,
		timeout:      cfg.timeout,
	}, nil
}

// LatestRelease fetches the latest published release of the repository
func (c *client) LatestRelease(ctx context.Context, repo *model.Repository) (*model.ReleaseInfo, error) {
	logger := ctxlog.From(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("Fetching latest release", "repo", repo.String())

	release, resp, err := c.githubClient.Repositories.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if err != nil {
		opts := []goerr.Option{
			goerr.V("repo", repo.String()),
			goerr.T(model.ErrTagReleaseFetch),
		}
		if resp != nil {
			opts = append(opts, goerr.V("status", resp.StatusCode))
		}
		return nil, goerr.Wrap(err, "failed to fetch latest release", opts...)
	}

	tag := release.GetTagName()
	if tag == "" {
		return nil, goerr.New("latest release has no tag name",
			goerr.V("repo", repo.String()),
			goerr.V("release_id", release.GetID()),
			goerr.T(model.ErrTagReleaseFetch),
		)
	}

	logger.Debug("Found latest release",
		"repo", repo.String(),
		"tag", tag,
		"name", release.GetName(),
		"published_at", release.GetPublishedAt().String(),
	)

	return model.NewReleaseInfo(tag), nil
}
