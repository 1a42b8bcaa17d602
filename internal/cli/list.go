package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		tree  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:       "list [SERVICE]",
		Short:     "List the extracts of a catalog service",
		Long:      "List every extract of a catalog service (geofabrik by default) with its full id and name.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalog.ServiceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := catalog.Geofabrik
			if len(args) == 1 {
				service = args[0]
			}
			return runList(cmd, service, tree, force)
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Show the region hierarchy as a tree")
	cmd.Flags().BoolVar(&force, "force", false, "Refresh the cached catalog")

	return cmd
}

func runList(cmd *cobra.Command, service string, tree, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	resolver, err := loadCatalogResolver(cfg, service)
	if err != nil {
		return err
	}

	entries, err := resolver.Load(cmd.Context(), force)
	if err != nil {
		return err
	}

	if tree {
		fmt.Print(catalog.Tree(service, entries))
		return nil
	}

	tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "ID\tNAME")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", e.FullID, e.FullName)
	}
	return tabWriter.Flush()
}
