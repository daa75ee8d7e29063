package config_test

import (
	"io"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/formulasync/pkg/cli/config"
)

func TestSync_NewUseCase(t *testing.T) {
	valid := config.Sync{
		DownloadURL:  "https://github.com",
		AssetTimeout: time.Minute,
		Platforms:    []string{"darwin-arm64"},
	}
	uc, err := valid.NewUseCase(nil, io.Discard)
	gt.NoError(t, err)
	gt.Value(t, uc).NotNil()

	t.Run("invalid platform", func(t *testing.T) {
		cfg := valid
		cfg.Platforms = []string{"darwin"}
		_, err := cfg.NewUseCase(nil, io.Discard)
		gt.Error(t, err)
	})

	t.Run("no platforms", func(t *testing.T) {
		cfg := valid
		cfg.Platforms = nil
		_, err := cfg.NewUseCase(nil, io.Discard)
		gt.Error(t, err)
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := valid
		cfg.AssetTimeout = 0
		_, err := cfg.NewUseCase(nil, io.Discard)
		gt.Error(t, err)
	})
}
