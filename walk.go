package cascade

import (
	"context"
	"errors"

	"github.com/ecruz165/cascade/internal/ctxlog"
	"github.com/ecruz165/cascade/telemetry"
)

// Walker drives the lifecycle hooks along a resolved path through a
// command tree.
//
// For a path root→leaf the walk proceeds in three phases:
//
//  1. Descent: Before is invoked on each node from root to leaf. The
//     first failure aborts descent; no deeper Before runs.
//  2. Execution: if descent completed, Run is invoked on the leaf only.
//     Intermediate nodes are setup nodes, the leaf is the action.
//  3. Ascent: After is invoked, leaf to root, on every node whose Before
//     completed — even when a deeper Before or Run failed. A Before that
//     acquired a resource always gets its paired After.
//
// The first failure (descent or execution) becomes the walk's terminal
// error. During ascent, a node's OnError may suppress it (return nil) or
// replace it; a node without OnError passes it through unchanged. Within
// one node, OnError runs before After so an error handler can still use
// whatever After is about to release.
//
// Hooks run strictly sequentially; a walk never runs hooks concurrently
// and imposes no timeout. Cancellation is checked only after each hook
// returns.
type Walker struct {
	rec *telemetry.Recorder
}

// Option configures a Walker.
type Option func(*Walker)

// WithTelemetry records Started/Completed/Failed events for every walk on
// rec. Telemetry is best-effort and observational: recording never alters
// a walk's outcome.
func WithTelemetry(rec *telemetry.Recorder) Option {
	return func(w *Walker) { w.rec = rec }
}

// New creates a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Execute walks path with a default Walker. It mirrors the common case of
// a CLI that needs no telemetry.
func Execute(ctx context.Context, path Path, ec *Context) error {
	return New().Walk(ctx, path, ec)
}

// Walk runs the lifecycle protocol over path with the shared execution
// context ec and returns the terminal error, nil on success. The caller
// owns exit-code selection; see ExitCode.
func (w *Walker) Walk(ctx context.Context, path Path, ec *Context) error {
	log := ctxlog.FromContext(ctx)
	w.started(path.String())

	if len(path) == 0 {
		err := &ConfigError{Reason: "empty execution path"}
		w.finished(path.String(), err)
		return err
	}

	var terminal error

	// Descent. completed marks nodes whose Before returned nil; only
	// those get an After during ascent. visited counts nodes entered, so
	// a node whose Before failed still sees its own OnError.
	completed := make([]bool, len(path))
	visited := 0
	for i, n := range path {
		visited = i + 1
		if h := n.hooks.Before; h != nil {
			log.Debug("walk: before", "node", n.name)
			if err := h(ctx, ec); err != nil {
				terminal = &HookError{Node: n.name, Phase: PhaseBefore, Err: err}
				break
			}
		}
		completed[i] = true
		if ec.Cancelled() {
			terminal = ErrCancelled
			break
		}
	}

	// Execution, leaf only.
	if terminal == nil {
		leaf := path[len(path)-1]
		if h := leaf.hooks.Run; h != nil {
			log.Debug("walk: run", "node", leaf.name)
			if err := h(ctx, ec); err != nil {
				terminal = &HookError{Node: leaf.name, Phase: PhaseRun, Err: err}
			}
		}
		if terminal == nil && ec.Cancelled() {
			terminal = ErrCancelled
		}
	}

	// Ascent over every visited node, deepest first.
	for i := visited - 1; i >= 0; i-- {
		n := path[i]
		if terminal != nil {
			if h := n.hooks.OnError; h != nil {
				log.Debug("walk: on_error", "node", n.name, "error", terminal)
				terminal = h(ctx, ec, terminal)
				if terminal == nil {
					log.Debug("walk: error suppressed", "node", n.name)
				}
			}
		}
		if completed[i] {
			if h := n.hooks.After; h != nil {
				log.Debug("walk: after", "node", n.name)
				if err := h(ctx, ec); err != nil {
					if terminal == nil {
						terminal = &HookError{Node: n.name, Phase: PhaseAfter, Err: err}
					} else {
						// The earlier failure stays terminal.
						log.Warn("walk: after hook failed during error ascent", "node", n.name, "error", err)
					}
				}
			}
		}
	}

	w.finished(path.String(), terminal)
	return terminal
}

func (w *Walker) started(activity string) {
	if w.rec != nil {
		w.rec.Started(activity)
	}
}

func (w *Walker) finished(activity string, err error) {
	if w.rec == nil {
		return
	}
	if err != nil {
		w.rec.Failed(activity, errorKind(err))
		return
	}
	w.rec.Completed(activity)
}

// errorKind reduces a terminal error to the coarse kind reported in
// telemetry events.
func errorKind(err error) string {
	var cfg *ConfigError
	switch {
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.As(err, &cfg):
		return "config_error"
	default:
		var hook *HookError
		if errors.As(err, &hook) {
			return "hook_failure"
		}
		return "error"
	}
}
