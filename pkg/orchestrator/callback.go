package orchestrator

import (
	"context"
	"strconv"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/hooks"
	"github.com/cperrin88/geofetch/pkg/metadata"
)

// Callback is a completion notification from the transfer tool.
type Callback struct {
	GID        string
	FileCount  string
	FilePath   string
	Descriptor DescriptorRequest
}

// DetectCallback reports whether the process was started as the transfer
// tool's completion callback: the descriptor variable is set and exactly
// three arguments (gid, file count, path) follow the program name. It
// returns nil without error in normal mode.
func DetectCallback(args []string, getenv func(string) string) (*Callback, error) {
	path := getenv(EnvDescriptorFile)
	if path == "" || len(args) != 3 {
		return nil, nil
	}

	minZoom, err := strconv.Atoi(getenv(EnvMinZoom))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidZoom, "%s: %v", EnvMinZoom, err)
	}
	maxZoom, err := strconv.Atoi(getenv(EnvMaxZoom))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidZoom, "%s: %v", EnvMaxZoom, err)
	}

	return &Callback{
		GID:       args[0],
		FileCount: args[1],
		FilePath:  args[2],
		Descriptor: DescriptorRequest{
			Path:     path,
			AreaName: getenv(EnvAreaName),
			MinZoom:  minZoom,
			MaxZoom:  maxZoom,
			Version:  getenv(EnvDescriptorVersion),
		},
	}, nil
}

// Complete handles a completion callback by writing the descriptor of the
// downloaded file and running the post-download script.
func (o *Orchestrator) Complete(ctx context.Context, cb *Callback) error {
	logger.Debug("Transfer completed", logger.Fields{"gid": cb.GID, "files": cb.FileCount, "path": cb.FilePath})

	emit(o.Hooks, Event{Phase: "descriptor", ID: cb.GID, Msg: cb.Descriptor.Path})
	_, err := o.Extractor.Extract(ctx, cb.FilePath, metadata.Options{
		AreaName: cb.Descriptor.AreaName,
		MinZoom:  cb.Descriptor.MinZoom,
		MaxZoom:  cb.Descriptor.MaxZoom,
		Version:  cb.Descriptor.Version,
		Output:   cb.Descriptor.Path,
	})
	if err != nil {
		return err
	}

	if o.Scripts != nil {
		if err := o.Scripts.Execute(hooks.PostDownload, hooks.HookContext{
			FilePath:       cb.FilePath,
			AreaName:       cb.Descriptor.AreaName,
			DescriptorPath: cb.Descriptor.Path,
		}); err != nil {
			return err
		}
	}

	emit(o.Hooks, Event{Phase: "done", ID: cb.GID})
	return nil
}
