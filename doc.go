// Package cascade runs lifecycle hooks over arbitrarily deep command
// trees.
//
// CLI frameworks resolve an invocation like "app configure apply" to a
// chain of subcommands but leave each level's setup and teardown to the
// application. cascade fills that gap: every node in a command tree may
// carry Before, Run, After and OnError hooks, and a Walker invokes them
// along the resolved root-to-leaf path — Before descending, Run on the
// leaf, After ascending — with the guarantee that every node whose Before
// completed gets its After, no matter where deeper in the walk a failure
// happened.
//
// The tree is plain data. Argument parsing stays with the CLI framework;
// a small cobra adapter (PathFrom, Walker.RunE) maps an invoked
// *cobra.Command to an execution path. The companion packages load,
// output and telemetry cover the rest of the usual CLI plumbing. See the
// examples directory for complete programs.
package cascade
