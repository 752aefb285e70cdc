package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tgup-cli/tgup"
	"github.com/tgup-cli/tgup/pkg/evaluator"
	"github.com/tgup-cli/tgup/pkg/plan"
	"github.com/tgup-cli/tgup/pkg/scan"
)

// UploadCmd scans the given paths, routes every eligible file through
// the --to expression, and hands the resulting batches to the sender.
type UploadCmd struct {
	Paths []string `arg:"" type:"path" help:"Files or directories to upload."`

	To        string   `required:"" help:"Routing expression selecting the destination per file."`
	Caption   string   `help:"Caption attached to every batch, passed through verbatim."`
	Include   []string `help:"Only include files with these extensions." short:"i"`
	Exclude   []string `help:"Exclude files with these extensions." short:"x"`
	Recursive bool     `help:"Recurse into subdirectories." short:"r"`
	Album     bool     `help:"Batch media files into albums." short:"a"`
	Account   []string `help:"Send from these accounts, round-robin. Repeatable."`
	DryRun    bool     `help:"Print the delivery plan without sending."`
	Workers   int      `help:"Concurrent routing evaluations." default:"0" hidden:""`
}

func (c *UploadCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	accounts := c.Account
	if len(accounts) == 0 && cfg.DefaultAccount != "" {
		accounts = []string{cfg.DefaultAccount}
	}
	for _, name := range accounts {
		if _, err := cfg.Account(name); err != nil {
			return err
		}
	}

	// Compile once, before any file is touched. A malformed routing
	// expression aborts the run here; it must never proceed with partial
	// routing.
	expr, err := tgup.Compile(c.To)
	if err != nil {
		return fmt.Errorf("invalid --to expression: %w", err)
	}

	entries, err := scan.Scan(c.Paths, scan.Options{
		Recursive: c.Recursive,
		Include:   c.Include,
		Exclude:   c.Exclude,
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		slog.Warn("no eligible files found")
		return nil
	}

	slog.Debug("scan complete",
		slog.Int("files", len(entries)),
		slog.String("expression", expr.Source()),
	)

	batches, err := plan.Build(entries, plan.Options{
		Route: func(ctx evaluator.Context) (string, error) {
			return tgup.Route(expr, ctx)
		},
		Resolve:  cfg.ResolveAlias,
		Accounts: accounts,
		Album:    c.Album,
		Caption:  c.Caption,
		Workers:  c.Workers,
	})
	if err != nil {
		return err
	}

	renderPlan(batches)

	if c.DryRun {
		return nil
	}

	return deliver(ctx, batches)
}

// deliver hands the batches to the configured transport. The messaging
// wire protocol lives outside this program; the built-in sender reports
// the handoff.
func deliver(ctx context.Context, batches []plan.Batch) error {
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		slog.Info("batch ready",
			slog.String("dest", b.Dest),
			slog.String("account", b.Account),
			slog.Int("files", len(b.Files)),
			slog.Bool("album", b.Album),
		)
	}
	return nil
}
