package cascade

import (
	"context"
	"fmt"
	"strings"
)

// Hook is a lifecycle callback attached to a tree node. It receives the
// process context and the walk's shared execution context. Returning a
// non-nil error fails the node for that phase.
type Hook func(ctx context.Context, ec *Context) error

// ErrorHook intercepts a failure during the ascent phase. Returning nil
// suppresses the error (the walk may still report success); returning a
// non-nil error re-raises it, replacing the terminal error seen by the
// next ancestor.
type ErrorHook func(ctx context.Context, ec *Context, err error) error

// Hooks bundles the lifecycle callbacks for one node. Every slot is
// optional; a nil slot is a no-op.
//
// Parent nodes typically implement Before/After for setup and teardown
// while leaf nodes implement Run. Only the leaf of a resolved path has
// its Run slot invoked.
type Hooks struct {
	Before  Hook
	Run     Hook
	After   Hook
	OnError ErrorHook
}

// Node is a single command in a hierarchical command tree. Children keep
// declaration order, which fixes traversal order and help/usage listings.
//
// A node belongs to at most one parent. The tree is built once at startup
// and is not mutated during walks.
type Node struct {
	name     string
	hooks    Hooks
	parent   *Node
	children []*Node
}

// NewNode creates a detached node with the given name and hooks.
func NewNode(name string, hooks Hooks) *Node {
	return &Node{name: name, hooks: hooks}
}

// Name returns the node's command name.
func (n *Node) Name() string { return n.name }

// Children returns the node's children in declaration order.
func (n *Node) Children() []*Node { return n.children }

// AddChild appends child to n's children. It returns a *ConfigError if the
// child already has a parent or a sibling with the same name exists. Tree
// construction fails fast; walks assume a well-formed tree.
func (n *Node) AddChild(child *Node) error {
	if child.parent != nil {
		return &ConfigError{Reason: fmt.Sprintf("node %q already has parent %q", child.name, child.parent.name)}
	}
	for _, c := range n.children {
		if c.name == child.name {
			return &ConfigError{Reason: fmt.Sprintf("duplicate child %q under %q", child.name, n.name)}
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// MustAdd is AddChild but panics on error and returns the child so trees
// can be declared inline.
func (n *Node) MustAdd(child *Node) *Node {
	if err := n.AddChild(child); err != nil {
		panic(err)
	}
	return child
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Path is an ordered root-to-leaf sequence of nodes selected by a resolved
// invocation. It is computed once per invocation and not mutated during
// the walk.
type Path []*Node

// String renders the path as "root::child::leaf".
func (p Path) String() string {
	names := make([]string, len(p))
	for i, n := range p {
		names[i] = n.name
	}
	return strings.Join(names, "::")
}

// Resolve walks the child chain named by names, starting at n, and returns
// the full path including n. An unknown name yields a *ConfigError.
func (n *Node) Resolve(names ...string) (Path, error) {
	path := Path{n}
	cur := n
	for _, name := range names {
		next := cur.Child(name)
		if next == nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("no subcommand %q under %q", name, cur.name)}
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}
