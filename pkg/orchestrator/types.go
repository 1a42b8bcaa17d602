//go:generate mockgen -destination=./mocks/orchestrator.go . PlanResolver,DescriptorExtractor

package orchestrator

import (
	"context"
	"io"

	"github.com/cperrin88/geofetch/pkg/download"
	"github.com/cperrin88/geofetch/pkg/hooks"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/cperrin88/geofetch/pkg/runner"
)

// Plan is a resolved download: where to get one file and how to verify it.
type Plan struct {
	// Name identifies the download in logs and is the default area name.
	Name string
	URLs []string
	// Hash is the expected md5 of the file; empty when unknown.
	Hash string
	// StateURL is the replication state matching the file; empty when unknown.
	StateURL string
}

// PlanResolver produces the plan of one download request.
type PlanResolver interface {
	Resolve(ctx context.Context) (*Plan, error)
}

// DescriptorExtractor builds a deployment descriptor from a downloaded file.
type DescriptorExtractor interface {
	Extract(ctx context.Context, pbfPath string, opts metadata.Options) (*metadata.Descriptor, error)
}

// Fetcher downloads side files.
type Fetcher interface {
	Fetch(ctx context.Context, item download.Item) (string, error)
}

// Orchestrator resolves downloads and hands them to the transfer tool.
type Orchestrator struct {
	Runner    runner.CommandRunner
	DL        Fetcher
	Extractor DescriptorExtractor
	Scripts   hooks.HookManager
	Hooks     Hooks // Hooks for progress and event notifications

	// TransferTool is the download utility binary.
	TransferTool string
	// UserAgent is sent unless the caller passes their own.
	UserAgent string
	// Self is the executable the transfer tool calls back on completion.
	Self string
	// Env is added to the transfer tool environment and so reaches the callback.
	Env []string

	// Stdout and Stderr receive captured transfer tool output.
	Stdout io.Writer
	Stderr io.Writer
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|state|descriptor|done
	ID    string
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// DescriptorRequest asks for a deployment descriptor once the transfer completes.
type DescriptorRequest struct {
	Path     string
	AreaName string
	MinZoom  int
	MaxZoom  int
	Version  string
}

// Options control a download.
type Options struct {
	DryRun bool
	// PassThrough arguments are given to the transfer tool verbatim.
	PassThrough []string
	// StatePath receives the replication state sidecar when set.
	StatePath string
	// Descriptor registers the completion callback when set.
	Descriptor *DescriptorRequest
}
