package cli

import (
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewURLCmd creates the url command.
func NewURLCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "url URL [-- TRANSFER-ARGS...]",
		Short: "Download a file from a URL",
		Long:  "Download a single file with the transfer tool, optionally creating a descriptor for it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, passThrough := splitPassThrough(cmd, args)
			if err := cobra.ExactArgs(1)(cmd, positional); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runDownload(cmd.Context(), cmd, cfg, &orchestrator.URLResolver{URL: positional[0]}, &flags, passThrough)
		},
	}

	flags.register(cmd)

	return cmd
}
