package terminal

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/de-tools/fabric-atlas/pkg/app"
	"github.com/de-tools/fabric-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	rootCmd *cobra.Command

	settingsPath string
	sourcesPath  string
	dbPath       string
	verbose      bool

	once sync.Once
	app  *app.App
	err  error
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{output: opts.Output}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fabric-atlas",
		Short:         "Order analytics for the fabric marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if cli.verbose {
				level = zerolog.InfoLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVar(&cli.settingsPath, "settings", "", "Path to a settings file (YAML)")
	cmd.PersistentFlags().StringVar(&cli.sourcesPath, "sources", "", "Path to the source profiles file (default $HOME/.fabricatlas.cfg)")
	cmd.PersistentFlags().StringVar(&cli.dbPath, "db", "", "Path to the embedded DuckDB store")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.loadApp))
	cmd.AddCommand(commands.NewSourcesCmd(cli.loadApp))
	cmd.AddCommand(commands.NewSeedCmd(cli.loadApp))
	cmd.AddCommand(commands.NewSyncCmd(cli.loadApp))

	return cmd
}

func (cli *CLI) loadApp(ctx context.Context) (*app.App, error) {
	cli.once.Do(func() {
		settings, err := config.LoadSettings(cli.settingsPath)
		if err != nil {
			cli.err = err
			return
		}
		if cli.sourcesPath != "" {
			settings.Sources.Path = cli.sourcesPath
		}
		if cli.dbPath != "" {
			settings.DB.Path = cli.dbPath
		}

		cli.app, cli.err = app.New(ctx, settings)
	})
	return cli.app, cli.err
}

func (cli *CLI) close() {
	if cli.app != nil {
		_ = cli.app.Close()
	}
}
