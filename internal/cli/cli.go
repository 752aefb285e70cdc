// Package cli implements the tgup command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/tgup-cli/tgup"
	"github.com/tgup-cli/tgup/pkg/config"
)

// CLI is the top-level command-line interface for tgup.
type CLI struct {
	Log    logConfig `embed:"" group:"log" prefix:"log-"`
	Pprof  bool      `help:"Enable CPU profiling for this run." hidden:""`
	Config string    `help:"Config file path." type:"path"`

	Upload  UploadCmd  `cmd:"" default:"withargs" help:"Upload files to destinations chosen by a routing expression."`
	Check   CheckCmd   `cmd:"" help:"Compile-check a routing expression."`
	Eval    EvalCmd    `cmd:"" help:"Evaluate an expression against one file and print the result."`
	Version VersionCmd `cmd:"" help:"Print the tgup version."`
}

// Run executes the tgup CLI with the given context and arguments.
// The exit function is called with the appropriate exit code on parse
// failure.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("tgup"),
		kong.Description("Upload local files to a messaging service, routed per file by an expression."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{
			{Key: "log", Title: "Logging options"},
		}),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start()

	if cli.Pprof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	return ktx.Run(&cli)
}

// loadConfig loads the configuration named by --config, falling back to
// the per-user default location.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (VersionCmd) Run(*CLI) error {
	fmt.Println("tgup", tgup.Version())
	return nil
}
