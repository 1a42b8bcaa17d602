package cli

import (
	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	var (
		flags   downloadFlags
		service string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "extract ID [-- TRANSFER-ARGS...]",
		Short: "Download a regional extract",
		Long: `Download a regional extract by its catalog id. The id may be the full
id ("australia-oceania/new-zealand") or any unique trailing part of it
("new-zealand"), matched case-insensitively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, passThrough := splitPassThrough(cmd, args)
			if err := cobra.ExactArgs(1)(cmd, positional); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			resolver, err := loadCatalogResolver(cfg, service)
			if err != nil {
				return err
			}

			plan := &orchestrator.ExtractResolver{Catalog: resolver, ID: positional[0], Force: force}
			return runDownload(cmd.Context(), cmd, cfg, plan, &flags, passThrough)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&service, "service", "s", catalog.Geofabrik, "Catalog service (geofabrik, bbbike)")
	cmd.Flags().BoolVar(&force, "force", false, "Refresh the cached catalog before the lookup")

	return cmd
}
