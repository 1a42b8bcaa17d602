package cli

import (
	"fmt"

	"github.com/cperrin88/geofetch/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the catalog cache",
		Long:  "Clean and show information about cached extract catalogs",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the catalog cache",
		Long:  "Remove cached catalogs; they are downloaded again on next use",
		RunE: func(*cobra.Command, []string) error {
			return runCacheOperation(func(op *cache.Operation) (string, error) { return op.Clean() })
		},
	}
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display the cache directory and the size of cached catalogs",
		RunE: func(*cobra.Command, []string) error {
			return runCacheOperation(func(op *cache.Operation) (string, error) { return op.GetInfo() })
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache directory",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(loadCacheManager(cfg).GetDirectory())
			return nil
		},
	}
}

func runCacheOperation(run func(op *cache.Operation) (string, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, err := run(cache.NewOperation(loadCacheManager(cfg)))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
