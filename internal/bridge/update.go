package bridge

import (
	"github.com/mj1618/a11ybridge/internal/handle"
	"github.com/mj1618/a11ybridge/internal/model"
)

func (b *Bridge) treeUpdate(ptr int64) *model.TreeUpdate {
	return handle.Mutable[model.TreeUpdate](b.reg, handle.Handle(ptr))
}

// TreeUpdateWithFocus starts an empty update with the given focus.
func (b *Bridge) TreeUpdateWithFocus(focus int64) int64 {
	return int64(handle.New(b.reg, model.NewTreeUpdate(model.NodeID(focus))))
}

// TreeUpdateDrop discards an update and every node it owns without
// submitting it.
func (b *Bridge) TreeUpdateDrop(ptr int64) {
	handle.Destroy[model.TreeUpdate](b.reg, handle.Handle(ptr))
}

// TreeUpdateAddNode consumes the node handle and appends (id, node). The
// node handle is invalid afterwards.
func (b *Bridge) TreeUpdateAddNode(ptr int64, id int64, nodePtr int64) {
	u := b.treeUpdate(ptr)
	n := handle.Consume[model.Node](b.reg, handle.Handle(nodePtr))
	u.AddNode(model.NodeID(id), n)
}

func (b *Bridge) TreeUpdateSetTree(ptr int64, root int64) {
	b.treeUpdate(ptr).SetTree(model.NodeID(root))
}

func (b *Bridge) TreeUpdateClearTree(ptr int64) { b.treeUpdate(ptr).ClearTree() }

func (b *Bridge) TreeUpdateSetFocus(ptr int64, id int64) {
	b.treeUpdate(ptr).SetFocus(model.NodeID(id))
}

// TreeUpdateView returns the serializable view of a live update.
func (b *Bridge) TreeUpdateView(ptr int64) model.UpdateView {
	return model.DescribeUpdate(b.treeUpdate(ptr))
}

// TreeUpdateTake consumes an update handle and returns the batch. It is the
// submission path for callers that apply updates themselves.
func (b *Bridge) TreeUpdateTake(ptr int64) *model.TreeUpdate {
	return handle.Consume[model.TreeUpdate](b.reg, handle.Handle(ptr))
}
