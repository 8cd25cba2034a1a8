package cascade

import (
	"errors"
	"fmt"
)

// ErrCancelled is the terminal error of a walk abandoned because a hook
// set the execution context's cancellation flag.
var ErrCancelled = errors.New("walk cancelled")

// Phase identifies the hook slot that produced an error.
type Phase string

const (
	PhaseBefore Phase = "before"
	PhaseRun    Phase = "run"
	PhaseAfter  Phase = "after"
)

// ConfigError reports a structurally invalid tree or walk input: duplicate
// sibling names, re-parented nodes, unknown subcommands, an empty path.
// These are raised before any hook executes.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid command tree: " + e.Reason
}

// HookError wraps a failure returned by a node's before or run hook,
// recording which node and phase failed.
type HookError struct {
	Node  string
	Phase Phase
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Node, e.Phase, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// ExitCode maps a walk's terminal error to a process exit code. The walker
// never terminates the process itself; the outermost caller does:
//
//	if err := cascade.Execute(ctx, path, ec); err != nil {
//		fmt.Fprintln(os.Stderr, err)
//		os.Exit(cascade.ExitCode(err))
//	}
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCancelled):
		return 130
	default:
		return 1
	}
}
