package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cperrin88/geofetch/internal/cli"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

// run dispatches to the completion callback when the transfer tool
// re-executes us, and to the command line otherwise.
func run(ctx context.Context, args []string) error {
	cb, err := orchestrator.DetectCallback(args, os.Getenv)
	if err != nil {
		return err
	}
	if cb != nil {
		configPath = os.Getenv(cli.EnvConfigFile)
		cli.ConfigPath = &configPath
		return cli.RunCallback(ctx, cb)
	}

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geofetch",
		Short: "Download OpenStreetMap planet files and regional extracts",
		Long: `geofetch downloads OpenStreetMap data with:
- planet: the latest planet file from all agreeing mirrors in parallel
- extract: regional extracts by their catalog id
- make-dc: docker-compose descriptors for tile generation`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain text log output")

	// Set up CLI package variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	cmd.AddCommand(
		cli.NewPlanetCmd(),
		cli.NewExtractCmd(),
		cli.NewURLCmd(),
		cli.NewListCmd(),
		cli.NewStateCmd(),
		cli.NewMakeDCCmd(),
		cli.NewConfigCmd(),
		cli.NewCacheCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
