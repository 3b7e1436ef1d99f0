package model

// RolePaths walks u from its declared root through the child lists of the
// nodes in the batch and returns, for every reachable node, a breadcrumb of
// compact role codes joined with " > ". Returns nil when u has no tree.
//
// Nodes are visited once, so a cycle in the child lists cannot loop.
func RolePaths(u *TreeUpdate) map[NodeID]string {
	if u.Tree == nil {
		return nil
	}
	byID := make(map[NodeID]*Node, len(u.Nodes))
	for _, e := range u.Nodes {
		byID[e.ID] = e.Node
	}
	paths := make(map[NodeID]string, len(u.Nodes))
	flattenRecursive(byID, u.Tree.Root, "", paths)
	return paths
}

func flattenRecursive(byID map[NodeID]*Node, id NodeID, parentPath string, paths map[NodeID]string) {
	n, ok := byID[id]
	if !ok {
		return
	}
	if _, seen := paths[id]; seen {
		return
	}
	currentPath := n.Role().Short()
	if parentPath != "" {
		currentPath = parentPath + " > " + currentPath
	}
	paths[id] = currentPath
	for _, child := range n.children {
		flattenRecursive(byID, child, currentPath, paths)
	}
}
