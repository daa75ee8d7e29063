package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/formulasync/pkg/cli/config"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/formulasync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		loggerCfg config.Logger
		githubCfg config.GitHub
		syncCfg   config.Sync
		fileCfg   config.File
		logger    *slog.Logger
	)

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)

	app := &cli.Command{
		Name:      "formulasync",
		Usage:     "Update a Homebrew formula to the latest GitHub release",
		ArgsUsage: "<owner/repo> <formula-path>",
		Version:   types.Version,
		Flags:     flags,
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return goerr.New("expected exactly two arguments: <owner/repo> <formula-path>",
					goerr.V("args", c.Args().Slice()))
			}

			content, err := fileCfg.Load()
			if err != nil {
				return err
			}
			if err := content.Apply(c.IsSet, &githubCfg, &syncCfg); err != nil {
				return err
			}

			ctxlog.From(ctx).Debug("Configuration loaded",
				"github", githubCfg,
				"sync", syncCfg,
				"config_file", fileCfg.Path,
			)

			locator, err := githubCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			uc, err := syncCfg.NewUseCase(locator, stdout)
			if err != nil {
				return err
			}

			result, err := uc.Sync(ctx, &model.SyncInput{
				Repository:  c.Args().Get(0),
				FormulaPath: c.Args().Get(1),
				DryRun:      syncCfg.DryRun,
			})
			if err != nil {
				return err
			}

			printSummary(stderr, c.Args().Get(1), syncCfg.DryRun, result)
			return nil
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		printFailure(stderr, err)
		return err
	}

	return nil
}
