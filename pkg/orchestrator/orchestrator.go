package orchestrator

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/download"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/hooks"
	"github.com/cperrin88/geofetch/pkg/runner"
)

// New constructs an Orchestrator writing captured output to the process's
// stdout and stderr.
func New(r runner.CommandRunner, dl Fetcher, extractor DescriptorExtractor, scripts hooks.HookManager, hks Hooks) *Orchestrator {
	return &Orchestrator{
		Runner:       r,
		DL:           dl,
		Extractor:    extractor,
		Scripts:      scripts,
		Hooks:        hks,
		TransferTool: DefaultTransferTool,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Download resolves a plan and runs the transfer tool for it. In dry-run
// mode everything but the transfer and the state download happens.
func (o *Orchestrator) Download(ctx context.Context, resolver PlanResolver, opts Options) error {
	emit(o.Hooks, Event{Phase: "resolving"})
	plan, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if len(plan.URLs) == 0 {
		return errors.ErrEmptyPlan
	}

	args, env := TransferArgs(plan, opts.PassThrough, o.UserAgent, o.Self, opts.Descriptor)
	capture := registersCallback(args)

	logger.Info("Download plan", logger.Fields{
		"name":    plan.Name,
		"hash":    plan.Hash,
		"sources": len(plan.URLs),
	})

	if opts.DryRun {
		logger.Info("Dry run, not starting the transfer", logger.Fields{
			"command": o.transferTool() + " " + strings.Join(args, " "),
			"env":     env,
		})
		if opts.StatePath != "" && plan.StateURL != "" {
			logger.Info("Dry run, not downloading state", logger.Fields{"url": plan.StateURL, "path": opts.StatePath})
		}
		emit(o.Hooks, Event{Phase: "done", ID: plan.Name, Msg: "dry-run"})
		return nil
	}

	if err := o.runScript(hooks.PreDownload, plan, ""); err != nil {
		return err
	}

	emit(o.Hooks, Event{Phase: "downloading", ID: plan.Name, Msg: strings.Join(plan.URLs, " ")})
	if err := o.transfer(ctx, args, env, capture); err != nil {
		return err
	}

	if opts.StatePath != "" {
		if err := o.fetchState(ctx, plan, opts.StatePath); err != nil {
			return err
		}
	}

	emit(o.Hooks, Event{Phase: "done", ID: plan.Name})
	return nil
}

// transfer runs the transfer tool synchronously. With a completion callback
// registered its output is captured and checked for the callback's failure
// banner, since the tool itself exits zero when a callback fails.
func (o *Orchestrator) transfer(ctx context.Context, args, env []string, capture bool) error {
	tool := o.transferTool()
	env = append(env, o.Env...)
	result, err := o.Runner.Run(ctx, runner.Command{Name: tool, Args: args, Env: env, Capture: capture})
	if err != nil {
		return errors.Wrap(errors.ErrTransferFailed, err.Error())
	}

	if capture {
		o.relay(o.Stdout, result.Stdout)
		o.relay(o.Stderr, result.Stderr)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("%w: %s exited with code %d", errors.ErrTransferFailed, tool, result.ExitCode)
	}
	if capture {
		if line, failed := failureBanner(result.Stderr); failed {
			return fmt.Errorf("%w: completion callback failed: %s", errors.ErrTransferFailed, line)
		}
	}
	return nil
}

func (o *Orchestrator) relay(w io.Writer, output string) {
	if w == nil || output == "" {
		return
	}
	_, _ = io.WriteString(w, output)
}

func (o *Orchestrator) fetchState(ctx context.Context, plan *Plan, path string) error {
	if plan.StateURL == "" {
		logger.Warn("No replication state known for this download", logger.Fields{"name": plan.Name})
		return nil
	}
	u, err := url.Parse(plan.StateURL)
	if err != nil {
		return errors.Wrapf(err, "invalid state URL %s", plan.StateURL)
	}

	emit(o.Hooks, Event{Phase: "state", ID: plan.Name, Msg: plan.StateURL})
	saved, err := o.DL.Fetch(ctx, download.Item{ID: "state", URL: u, Dest: path})
	if err != nil {
		return errors.Wrapf(err, "failed to download replication state")
	}
	logger.Success("Saved replication state", logger.Fields{"path": saved})
	return nil
}

func (o *Orchestrator) runScript(hookType hooks.HookType, plan *Plan, file string) error {
	if o.Scripts == nil {
		return nil
	}
	hctx := hooks.HookContext{FilePath: file}
	if plan != nil {
		hctx.AreaName = plan.Name
		hctx.Hash = plan.Hash
		hctx.URLs = plan.URLs
	}
	return o.Scripts.Execute(hookType, hctx)
}

func (o *Orchestrator) transferTool() string {
	if o.TransferTool == "" {
		return DefaultTransferTool
	}
	return o.TransferTool
}
