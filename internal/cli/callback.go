package cli

import (
	"context"

	"github.com/cperrin88/geofetch/pkg/orchestrator"
)

// RunCallback handles a completion callback of the transfer tool.
func RunCallback(ctx context.Context, cb *orchestrator.Callback) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, err := loadOrchestrator(cfg)
	if err != nil {
		return err
	}
	return orch.Complete(ctx, cb)
}
