package cascade

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PathFrom resolves the invoked cobra command chain against a node tree.
// cmd is the command cobra dispatched to (the leaf of the invocation);
// the chain of parent names must match a chain of children under tree,
// and the tree root must carry the root command's name.
func PathFrom(tree *Node, cmd *cobra.Command) (Path, error) {
	var names []string
	for c := cmd; c.HasParent(); c = c.Parent() {
		names = append([]string{c.Name()}, names...)
	}

	root := cmd.Root()
	if tree.Name() != root.Name() {
		return nil, &ConfigError{Reason: fmt.Sprintf("tree root %q does not match command %q", tree.Name(), root.Name())}
	}
	return tree.Resolve(names...)
}

// RunE returns a cobra run function that resolves the invoked command
// against tree and walks the result. Attach it to every runnable command:
//
//	w := cascade.New(cascade.WithTelemetry(rec))
//	applyCmd.RunE = w.RunE(tree)
//
// Positional arguments are carried into the walk on the execution
// context; the terminal error is returned to cobra unchanged so
// SilenceUsage/SilenceErrors behave as usual.
func (w *Walker) RunE(tree *Node) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path, err := PathFrom(tree, cmd)
		if err != nil {
			return err
		}
		return w.Walk(cmd.Context(), path, NewContext(args))
	}
}
