package cli

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/formulasync/pkg/domain/model"
)

var oldHash = strings.Repeat("a", 64)

const formulaTemplate = `class Tool < Formula
  version "1.0.0"
  on_macos do
    url "https://github.com/acme/tool/releases/download/v1.0.0/tool-v1.0.0-darwin-amd64.tar.gz"
    sha256 "OLD"
  end
end
`

func writeFormula(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.rb")
	content := strings.Replace(formulaTemplate, "OLD", oldHash, 1)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newFixture(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/api/repos/{owner}/{repo}/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "repo") != "tool" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"tag_name": "v1.1.0"})
	})
	router.Get("/acme/tool/releases/download/v1.1.0/tool-v1.1.0-darwin-amd64.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"formulasync", "--log-level", "error"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Commit(t *testing.T) {
	archive := []byte("tool darwin amd64")
	sum := sha256.Sum256(archive)
	newHash := hex.EncodeToString(sum[:])

	server := newFixture(t, archive)
	path := writeFormula(t)
	before, err := os.ReadFile(path)
	gt.NoError(t, err)

	stdout, stderr, err := runCLI(t,
		"--api-url", server.URL+"/api/",
		"--download-url", server.URL,
		"acme/tool", path,
	)
	gt.NoError(t, err)
	gt.Value(t, stdout).Equal("")
	gt.String(t, stderr).Contains("Formula updated")

	after, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.String(t, string(after)).Contains(`version "1.1.0"`)
	gt.String(t, string(after)).Contains(server.URL + "/acme/tool/releases/download/v1.1.0/tool-v1.1.0-darwin-amd64.tar.gz")
	gt.String(t, string(after)).Contains(`sha256 "` + newHash + `"`)

	backup, err := os.ReadFile(path + ".bak")
	gt.NoError(t, err)
	gt.Value(t, string(backup)).Equal(string(before))
}

func TestRun_DryRunAfterArgs(t *testing.T) {
	server := newFixture(t, []byte("archive"))
	path := writeFormula(t)
	before, err := os.ReadFile(path)
	gt.NoError(t, err)

	stdout, _, err := runCLI(t,
		"--api-url", server.URL+"/api/",
		"--download-url", server.URL,
		"acme/tool", path, "--dry-run",
	)
	gt.NoError(t, err)
	gt.String(t, stdout).Contains(`version "1.1.0"`)

	after, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Value(t, string(after)).Equal(string(before))

	_, err = os.Stat(path + ".bak")
	gt.True(t, os.IsNotExist(err))
}

func TestRun_DryRunDiff(t *testing.T) {
	server := newFixture(t, []byte("archive"))
	path := writeFormula(t)

	stdout, _, err := runCLI(t,
		"--api-url", server.URL+"/api/",
		"--download-url", server.URL,
		"--dry-run", "--diff",
		"acme/tool", path,
	)
	gt.NoError(t, err)
	gt.String(t, stdout).Contains(`-  version "1.0.0"`)
	gt.String(t, stdout).Contains(`+  version "1.1.0"`)
}

func TestRun_Errors(t *testing.T) {
	server := newFixture(t, []byte("archive"))

	t.Run("invalid repository", func(t *testing.T) {
		_, stderr, err := runCLI(t, "acme tool", writeFormula(t))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidRepository))
		gt.String(t, stderr).Contains("invalid repository format")
	})

	t.Run("missing formula", func(t *testing.T) {
		_, _, err := runCLI(t, "acme/tool", filepath.Join(t.TempDir(), "none.rb"))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagFormulaNotFound))
	})

	t.Run("release not found", func(t *testing.T) {
		_, _, err := runCLI(t, "--api-url", server.URL+"/api/", "acme/unknown", writeFormula(t))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagReleaseFetch))
	})

	t.Run("no checksums", func(t *testing.T) {
		path := writeFormula(t)
		_, _, err := runCLI(t,
			"--api-url", server.URL+"/api/",
			"--download-url", server.URL+"/nowhere",
			"acme/tool", path,
		)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagNoChecksums))

		_, statErr := os.Stat(path + ".bak")
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, _, err := runCLI(t, "acme/tool")
		gt.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"formulasync", "--log-level", "loud", "acme/tool", "x.rb"}, &stdout, &stderr)
		gt.Error(t, err)
	})
}

func TestRun_ConfigFile(t *testing.T) {
	server := newFixture(t, []byte("archive"))
	path := writeFormula(t)

	cfgPath := filepath.Join(t.TempDir(), "formulasync.toml")
	gt.NoError(t, os.WriteFile(cfgPath, []byte(
		`api_url = "`+server.URL+`/api/"
download_url = "`+server.URL+`"
platforms = ["darwin-amd64"]
`), 0644))

	_, _, err := runCLI(t, "--config", cfgPath, "--dry-run", "acme/tool", path)
	gt.NoError(t, err)
}
