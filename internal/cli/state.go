package cli

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/cperrin88/geofetch/pkg/download"
	"github.com/spf13/cobra"
)

// NewStateCmd creates the state command.
func NewStateCmd() *cobra.Command {
	var (
		service string
		dir     string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "state ID...",
		Short: "Download the replication state of extracts",
		Long: `Download the replication state file of one or more catalog extracts in
parallel. Each file is saved as <dir>/<id>.state.txt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			resolver, err := loadCatalogResolver(cfg, service)
			if err != nil {
				return err
			}

			items := make([]download.Item, 0, len(args))
			for _, id := range args {
				entry, err := resolver.Resolve(cmd.Context(), id, force)
				if err != nil {
					return err
				}
				if entry.StateURL == "" {
					return fmt.Errorf("extract %s publishes no replication state", entry.FullID)
				}
				u, err := url.Parse(entry.StateURL)
				if err != nil {
					return fmt.Errorf("invalid state URL %s: %w", entry.StateURL, err)
				}
				items = append(items, download.Item{
					ID:   entry.FullID,
					URL:  u,
					Dest: filepath.Join(dir, strings.ReplaceAll(entry.FullID, "/", "_")+".state.txt"),
				})
			}

			saved, err := loadDownloadManager(cfg).FetchAll(cmd.Context(), items, download.Options{Concurrency: cfg.Settings.MaxConcurrent})
			if err != nil {
				return err
			}
			for _, item := range items {
				logger.Success("Saved replication state", logger.Fields{"id": item.ID, "path": saved[item.ID]})
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", catalog.Geofabrik, "Catalog service")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to save state files in")
	cmd.Flags().BoolVar(&force, "force", false, "Refresh the cached catalog before the lookup")

	return cmd
}
