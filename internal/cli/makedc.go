package cli

import (
	"github.com/cperrin88/geofetch/pkg/config"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/spf13/cobra"
)

// NewMakeDCCmd creates the make-dc command.
func NewMakeDCCmd() *cobra.Command {
	var (
		output    string
		areaID    string
		dcVersion string
		minZoom   int
		maxZoom   int
	)

	cmd := &cobra.Command{
		Use:   "make-dc PBF-FILE",
		Short: "Create a docker-compose descriptor for a downloaded extract",
		Long: `Read the statistics of an OSM PBF file and write a docker-compose override
that configures tile generation for its bounding box and timestamp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defaults, err := config.LoadDescriptorDefaults(DotEnvFile)
			if err != nil {
				return err
			}

			opts := metadata.Options{
				AreaName: areaID,
				MinZoom:  defaults.MinZoom,
				MaxZoom:  defaults.MaxZoom,
				Version:  defaults.Version,
				Output:   output,
			}
			if cmd.Flags().Changed("minzoom") {
				opts.MinZoom = minZoom
			}
			if cmd.Flags().Changed("maxzoom") {
				opts.MaxZoom = maxZoom
			}
			if dcVersion != "" {
				opts.Version = dcVersion
			}

			_, err = loadExtractor(cfg).Extract(cmd.Context(), args[0], opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "docker-compose-config.yml", "Descriptor file to write")
	cmd.Flags().StringVar(&areaID, "id", "", "Area name (default derived from the file name)")
	cmd.Flags().StringVar(&dcVersion, "dc-ver", "", "Descriptor version (default MAKE_DC_VERSION or "+config.DefaultDescriptorVersion+")")
	cmd.Flags().IntVar(&minZoom, "minzoom", 0, "Minimum zoom (default MIN_ZOOM or 0)")
	cmd.Flags().IntVar(&maxZoom, "maxzoom", 0, "Maximum zoom (default MAX_ZOOM or 7)")

	return cmd
}
