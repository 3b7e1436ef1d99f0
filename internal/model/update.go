package model

// Tree describes the tree as a whole. It is only present in an update that
// (re)declares the root.
type Tree struct {
	Root NodeID
}

// NodeEntry pairs a logical id with the node it names.
type NodeEntry struct {
	ID   NodeID
	Node *Node
}

// TreeUpdate is one batch of changes to apply to a tree: nodes to insert or
// replace, an optional new tree descriptor, and the focus target.
//
// Nodes are kept in the order they were added; consumers process them in
// that order.
type TreeUpdate struct {
	Nodes []NodeEntry
	Tree  *Tree
	Focus NodeID
}

// NewTreeUpdate starts an empty update focused on focus.
func NewTreeUpdate(focus NodeID) *TreeUpdate {
	return &TreeUpdate{Focus: focus}
}

// AddNode appends (id, n). The update takes ownership of n.
func (u *TreeUpdate) AddNode(id NodeID, n *Node) {
	u.Nodes = append(u.Nodes, NodeEntry{ID: id, Node: n})
}

// SetTree declares root as the tree's root, replacing any earlier declaration.
func (u *TreeUpdate) SetTree(root NodeID) {
	u.Tree = &Tree{Root: root}
}

// ClearTree removes the tree descriptor.
func (u *TreeUpdate) ClearTree() {
	u.Tree = nil
}

// SetFocus overwrites the focus target.
func (u *TreeUpdate) SetFocus(id NodeID) {
	u.Focus = id
}

// NodeIDs returns the ids of the added nodes in insertion order.
func (u *TreeUpdate) NodeIDs() []NodeID {
	ids := make([]NodeID, len(u.Nodes))
	for i, e := range u.Nodes {
		ids[i] = e.ID
	}
	return ids
}
