package cli

import (
	"github.com/cperrin88/geofetch/pkg/mirror"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/cperrin88/geofetch/pkg/resolve"
	"github.com/spf13/cobra"
)

// NewPlanetCmd creates the planet command.
func NewPlanetCmd() *cobra.Command {
	var (
		flags          downloadFlags
		forceLatest    bool
		includePrimary bool
	)

	cmd := &cobra.Command{
		Use:   "planet [-- TRANSFER-ARGS...]",
		Short: "Download the latest planet file",
		Long: `Probe every planet mirror, select the most recent file that enough
mirrors agree on, and download it from all of them in parallel.
Arguments after "--" are passed to the transfer tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, passThrough := splitPassThrough(cmd, args)
			if err := cobra.NoArgs(cmd, positional); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			resolver := &orchestrator.PlanetResolver{
				Scanner: mirror.NewScanner(loadHTTPClient(cfg)),
				Sites:   cfg.Sites(),
				Select:  resolve.SelectOptions{ForceLatest: forceLatest, IncludePrimary: includePrimary},
			}
			return runDownload(cmd.Context(), cmd, cfg, resolver, &flags, passThrough)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&forceLatest, "force-latest", false, "Always pick the newest file, even if few mirrors have it")
	cmd.Flags().BoolVar(&includePrimary, "include-primary", false, "Also download from sites that are avoided by default")

	return cmd
}
