package asset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	defaultTimeout = 120 * time.Second
	chunkSize      = 8 * 1024
)

type config struct {
	timeout    time.Duration
	httpClient *http.Client
}

// Option is a functional option for Hasher configuration
type Option func(*config)

// WithTimeout sets the time limit for downloading a single asset
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client used for downloads
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

type hasher struct {
	timeout    time.Duration
	httpClient *http.Client
}

// NewHasher creates an AssetHasher that downloads over HTTP
func NewHasher(opts ...Option) interfaces.AssetHasher {
	cfg := &config{
		timeout:    defaultTimeout,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &hasher{
		timeout:    cfg.timeout,
		httpClient: cfg.httpClient,
	}
}

// HashURL downloads url and returns the hex encoded SHA-256 of the body. The
// body is hashed chunk by chunk and never held in memory as a whole.
func (h *hasher) HashURL(ctx context.Context, url string) (string, error) {
	logger := ctxlog.From(ctx)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create download request",
			goerr.V("url", url), goerr.T(model.ErrTagAssetDownload))
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to download asset",
			goerr.V("url", url), goerr.T(model.ErrTagAssetDownload))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagAssetDownload),
		)
	}

	digest := sha256.New()
	size, err := io.CopyBuffer(digest, resp.Body, make([]byte, chunkSize))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read asset body",
			goerr.V("url", url), goerr.T(model.ErrTagAssetDownload))
	}

	sum := hex.EncodeToString(digest.Sum(nil))
	logger.Debug("Hashed asset", "url", url, "size_bytes", size, "sha256", sum)

	return sum, nil
}
