package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16] + "..."
	}
	return h
}

// printSummary writes a human readable result table
func printSummary(w io.Writer, path string, dryRun bool, result *model.SyncResult) {
	fmt.Fprintf(w, "\nLatest version: %s (formula version: %s)\n", result.Release.Tag, result.Release.Version)

	for _, c := range result.Checksums {
		okColor.Fprintf(w, "  %-14s", c.Platform)
		fmt.Fprintf(w, " %s", c.NewHash)
		switch c.OldHash {
		case "":
			warnColor.Fprint(w, "  (no sha256 in formula, not replaced)")
		case c.NewHash:
			dimColor.Fprint(w, "  (unchanged)")
		default:
			dimColor.Fprintf(w, "  (was %s)", shortHash(c.OldHash))
		}
		fmt.Fprintln(w)
	}
	for _, p := range result.Skipped {
		warnColor.Fprintf(w, "  %-14s skipped (download failed)\n", p)
	}

	switch {
	case dryRun:
		dimColor.Fprintln(w, "\nDry run: no files were written")
	case result.Changed():
		okColor.Fprintf(w, "\nFormula updated: %s (backup: %s.bak)\n", path, path)
	default:
		okColor.Fprintf(w, "\nFormula already up to date: %s (backup: %s.bak)\n", path, path)
	}
}

// printFailure writes a one line error message for the user
func printFailure(w io.Writer, err error) {
	var msg string
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidRepository):
		msg = "invalid repository format, expected 'owner/repo' (e.g. 'asteroid-belt/skulto')"
	case goerr.HasTag(err, model.ErrTagFormulaNotFound):
		msg = "formula file not found"
	case goerr.HasTag(err, model.ErrTagReleaseFetch):
		msg = "could not fetch the latest release"
	case goerr.HasTag(err, model.ErrTagNoChecksums):
		msg = "no checksums could be fetched"
	}

	if msg != "" {
		errColor.Fprintf(w, "Error: %s: %v\n", msg, err)
		return
	}
	errColor.Fprintf(w, "Error: %v\n", err)
}
