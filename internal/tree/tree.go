// Package tree holds the persistent tree state that adapters apply updates to.
//
// It is a reference engine: it validates each update, applies it atomically
// and reports per-node changes. Platform packages turn those changes into
// native event names.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mj1618/a11ybridge/internal/model"
)

// ErrNoRoot is returned when the first update applied to a tree does not
// declare a root.
var ErrNoRoot = errors.New("tree: first update must declare a root")

// Result is what applying one update changed.
type Result struct {
	Changes   []model.Change
	OldFocus  model.NodeID
	NewFocus  model.NodeID
	RootMoved bool
}

// FocusChanged reports whether the focus target moved.
func (r Result) FocusChanged() bool { return r.OldFocus != r.NewFocus }

// Tree is the persistent state built up from successive updates.
type Tree struct {
	nodes map[model.NodeID]*model.Node
	root  model.NodeID
	focus model.NodeID
	ready bool
}

// New creates an empty tree. Its first update must declare a root.
func New() *Tree {
	return &Tree{nodes: make(map[model.NodeID]*model.Node)}
}

// Ready reports whether an update has been applied.
func (t *Tree) Ready() bool { return t.ready }

// Root returns the current root id.
func (t *Tree) Root() model.NodeID { return t.root }

// Focus returns the current focus target.
func (t *Tree) Focus() model.NodeID { return t.focus }

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node stored under id.
func (t *Tree) Node(id model.NodeID) (*model.Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Apply validates u against the current state and, if valid, applies it.
// On error the tree is left untouched. The tree takes ownership of the nodes
// in u.
func (t *Tree) Apply(u *model.TreeUpdate) (Result, error) {
	if !t.ready && u.Tree == nil {
		return Result{}, ErrNoRoot
	}

	next := make(map[model.NodeID]*model.Node, len(t.nodes)+len(u.Nodes))
	for id, n := range t.nodes {
		next[id] = n
	}
	for _, e := range u.Nodes {
		if e.Node == nil {
			return Result{}, fmt.Errorf("tree: node %d is nil", e.ID)
		}
		next[e.ID] = e.Node
	}

	root := t.root
	if u.Tree != nil {
		root = u.Tree.Root
	}
	if _, ok := next[root]; !ok {
		return Result{}, fmt.Errorf("tree: root %d is not in the tree", root)
	}
	for _, e := range u.Nodes {
		for _, child := range e.Node.Children() {
			if _, ok := next[child]; !ok {
				return Result{}, fmt.Errorf("tree: node %d has unknown child %d", e.ID, child)
			}
		}
	}

	reachable := reachableFrom(next, root)
	if !reachable[u.Focus] {
		return Result{}, fmt.Errorf("tree: focus %d is not in the tree", u.Focus)
	}

	res := Result{
		OldFocus:  t.focus,
		NewFocus:  u.Focus,
		RootMoved: t.ready && root != t.root,
	}
	if !t.ready {
		res.OldFocus = 0
	}

	seen := make(map[model.NodeID]bool, len(u.Nodes))
	for _, e := range u.Nodes {
		if !reachable[e.ID] || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		node := next[e.ID]
		curr := model.NewElement(e.ID, node)
		prev, existed := t.nodes[e.ID]
		if !existed {
			res.Changes = append(res.Changes, model.Change{
				Type:  model.ChangeAdded,
				ID:    e.ID,
				Role:  node.Role(),
				Label: curr.Label,
			})
			continue
		}
		if diffs := model.DiffElements(model.NewElement(e.ID, prev), curr); diffs != nil {
			res.Changes = append(res.Changes, model.Change{
				Type:   model.ChangeChanged,
				ID:     e.ID,
				Role:   node.Role(),
				Label:  curr.Label,
				Fields: diffs,
			})
		}
	}

	var removed []model.NodeID
	for id := range next {
		if !reachable[id] {
			removed = append(removed, id)
		}
	}
	slices.Sort(removed)
	for _, id := range removed {
		if old, existed := t.nodes[id]; existed {
			label, _ := old.Label()
			res.Changes = append(res.Changes, model.Change{
				Type:  model.ChangeRemoved,
				ID:    id,
				Role:  old.Role(),
				Label: label,
			})
		}
		delete(next, id)
	}

	t.nodes = next
	t.root = root
	t.focus = u.Focus
	t.ready = true
	return res, nil
}

// Elements returns the views of all nodes in depth-first order from the root.
func (t *Tree) Elements() []model.Element {
	if !t.ready {
		return nil
	}
	var out []model.Element
	visited := make(map[model.NodeID]bool, len(t.nodes))
	var walk func(id model.NodeID, path string)
	walk = func(id model.NodeID, path string) {
		n, ok := t.nodes[id]
		if !ok || visited[id] {
			return
		}
		visited[id] = true
		el := model.NewElement(id, n)
		el.Focused = id == t.focus
		el.Path = el.Role
		if path != "" {
			el.Path = path + " > " + el.Role
		}
		out = append(out, el)
		for _, c := range n.Children() {
			walk(c, el.Path)
		}
	}
	walk(t.root, "")
	return out
}

func reachableFrom(nodes map[model.NodeID]*model.Node, root model.NodeID) map[model.NodeID]bool {
	reachable := make(map[model.NodeID]bool, len(nodes))
	stack := []model.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[id] {
			continue
		}
		n, ok := nodes[id]
		if !ok {
			continue
		}
		reachable[id] = true
		stack = append(stack, n.Children()...)
	}
	return reachable
}
