package cli

import (
	"context"
	"fmt"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/config"
	"github.com/cperrin88/geofetch/pkg/metrics"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// downloadFlags are shared by every command that starts a transfer.
type downloadFlags struct {
	dryRun      bool
	statePath   string
	makeDC      string
	dcVersion   string
	areaID      string
	minZoom     int
	maxZoom     int
	metricsFile string
}

func (f *downloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Resolve and print the transfer command without executing it")
	cmd.Flags().StringVar(&f.statePath, "state", "", "Save the replication state of the download to this file")
	cmd.Flags().StringVar(&f.makeDC, "make-dc", "", "Write a docker-compose descriptor to this file once the download completes")
	cmd.Flags().StringVar(&f.dcVersion, "dc-ver", "", "Descriptor version (default MAKE_DC_VERSION or "+config.DefaultDescriptorVersion+")")
	cmd.Flags().StringVar(&f.areaID, "id", "", "Area name written to the descriptor (default derived from the download)")
	cmd.Flags().IntVar(&f.minZoom, "minzoom", 0, "Descriptor minimum zoom (default MIN_ZOOM or 0)")
	cmd.Flags().IntVar(&f.maxZoom, "maxzoom", 0, "Descriptor maximum zoom (default MAX_ZOOM or 7)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics of the run (defaults to config)")
}

// descriptor builds the descriptor request, or nil when none was asked for.
// Flags that were not given fall back to the environment defaults.
func (f *downloadFlags) descriptor(cmd *cobra.Command) (*orchestrator.DescriptorRequest, error) {
	if f.makeDC == "" {
		return nil, nil
	}

	defaults, err := config.LoadDescriptorDefaults(DotEnvFile)
	if err != nil {
		return nil, err
	}

	req := &orchestrator.DescriptorRequest{
		Path:     f.makeDC,
		AreaName: f.areaID,
		MinZoom:  defaults.MinZoom,
		MaxZoom:  defaults.MaxZoom,
		Version:  defaults.Version,
	}
	if cmd.Flags().Changed("minzoom") {
		req.MinZoom = f.minZoom
	}
	if cmd.Flags().Changed("maxzoom") {
		req.MaxZoom = f.maxZoom
	}
	if f.dcVersion != "" {
		req.Version = f.dcVersion
	}
	return req, nil
}

// splitPassThrough separates positional arguments from the arguments after
// "--", which are handed to the transfer tool.
func splitPassThrough(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// runDownload resolves and transfers one download.
func runDownload(ctx context.Context, cmd *cobra.Command, cfg *config.Config, resolver orchestrator.PlanResolver, flags *downloadFlags, passThrough []string) error {
	desc, err := flags.descriptor(cmd)
	if err != nil {
		return err
	}

	orch, err := loadOrchestrator(cfg)
	if err != nil {
		return err
	}

	opts := orchestrator.Options{
		DryRun:      flags.dryRun,
		PassThrough: passThrough,
		StatePath:   flags.statePath,
		Descriptor:  desc,
	}
	err = orch.Download(ctx, resolver, opts)

	metricsFile := flags.metricsFile
	if metricsFile == "" {
		metricsFile = cfg.Settings.MetricsFile
	}
	if metricsFile != "" {
		if mErr := metrics.WriteTextfile(metricsFile); mErr != nil {
			logger.Warn("Failed to write metrics", logger.Fields{"path": metricsFile, "error": mErr})
		}
	}

	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	return nil
}
