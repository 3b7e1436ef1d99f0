package bridge

import (
	"github.com/mj1618/a11ybridge/internal/handle"
	"github.com/mj1618/a11ybridge/internal/model"
)

func (b *Bridge) node(ptr int64) *model.Node {
	return handle.Mutable[model.Node](b.reg, handle.Handle(ptr))
}

// NodeNew creates a node builder with the role named by code.
func (b *Bridge) NodeNew(role int32) int64 {
	r, err := model.RoleFromCode(int(role))
	if err != nil {
		fail("node new", err)
	}
	return int64(handle.New(b.reg, model.NewNode(r)))
}

// NodeDrop discards a node that was never added to an update.
func (b *Bridge) NodeDrop(ptr int64) {
	handle.Destroy[model.Node](b.reg, handle.Handle(ptr))
}

func (b *Bridge) NodeAddAction(ptr int64, action int32) {
	n := b.node(ptr)
	a, err := model.ActionFromCode(int(action))
	if err != nil {
		fail("node add action", err)
	}
	n.AddAction(a)
}

// String setters take raw bytes. They are not checked for valid UTF-8.

func (b *Bridge) NodeSetLabel(ptr int64, value []byte) { b.node(ptr).SetLabel(string(value)) }

func (b *Bridge) NodeSetDescription(ptr int64, value []byte) {
	b.node(ptr).SetDescription(string(value))
}

func (b *Bridge) NodeSetValue(ptr int64, value []byte) { b.node(ptr).SetValue(string(value)) }

func (b *Bridge) NodeSetAccessKey(ptr int64, value []byte) {
	b.node(ptr).SetAccessKey(string(value))
}

func (b *Bridge) NodeSetKeyboardShortcut(ptr int64, value []byte) {
	b.node(ptr).SetKeyboardShortcut(string(value))
}

// NodeSetBounds sets the bounding box. x0,y0 is the top-left corner; the
// corners are not checked against each other.
func (b *Bridge) NodeSetBounds(ptr int64, x0, y0, x1, y1 float64) {
	b.node(ptr).SetBounds(model.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (b *Bridge) NodeAddChild(ptr int64, id int64) { b.node(ptr).AddChild(model.NodeID(id)) }

func (b *Bridge) NodeClearChildren(ptr int64) { b.node(ptr).ClearChildren() }

func (b *Bridge) NodeSetChildren(ptr int64, ids []int64) {
	children := make([]model.NodeID, len(ids))
	for i, id := range ids {
		children[i] = model.NodeID(id)
	}
	b.node(ptr).SetChildren(children)
}

func (b *Bridge) NodeSetToggled(ptr int64, value int32) {
	n := b.node(ptr)
	v, err := model.ToggledFromCode(int(value))
	if err != nil {
		fail("node set toggled", err)
	}
	n.SetToggled(v)
}

func (b *Bridge) NodeSetLive(ptr int64, value int32) {
	n := b.node(ptr)
	v, err := model.LiveFromCode(int(value))
	if err != nil {
		fail("node set live", err)
	}
	n.SetLive(v)
}

func (b *Bridge) NodeSetTextDirection(ptr int64, value int32) {
	n := b.node(ptr)
	v, err := model.TextDirectionFromCode(int(value))
	if err != nil {
		fail("node set text direction", err)
	}
	n.SetTextDirection(v)
}

func (b *Bridge) NodeSetNumericValue(ptr int64, value float64) { b.node(ptr).SetNumericValue(value) }

func (b *Bridge) NodeSetMinNumericValue(ptr int64, value float64) {
	b.node(ptr).SetMinNumericValue(value)
}

func (b *Bridge) NodeSetMaxNumericValue(ptr int64, value float64) {
	b.node(ptr).SetMaxNumericValue(value)
}

func (b *Bridge) NodeSetNumericValueStep(ptr int64, value float64) {
	b.node(ptr).SetNumericValueStep(value)
}

func (b *Bridge) NodeSetNumericValueJump(ptr int64, value float64) {
	b.node(ptr).SetNumericValueJump(value)
}

// NodeSetTextSelection sets the anchor and focus of the selection. Character
// indices are unsigned on the far side; they are sign-extended, not checked.
func (b *Bridge) NodeSetTextSelection(ptr int64, anchorID int64, anchorIndex int32, focusID int64, focusIndex int32) {
	b.node(ptr).SetTextSelection(model.TextSelection{
		Anchor: model.TextPosition{Node: model.NodeID(anchorID), CharacterIndex: uint(int64(anchorIndex))},
		Focus:  model.TextPosition{Node: model.NodeID(focusID), CharacterIndex: uint(int64(focusIndex))},
	})
}

func (b *Bridge) NodeSetCharacterLengths(ptr int64, value []byte) {
	b.node(ptr).SetCharacterLengths(value)
}

func (b *Bridge) NodeSetWordLengths(ptr int64, value []byte) { b.node(ptr).SetWordLengths(value) }

func (b *Bridge) NodeSetCharacterPositions(ptr int64, value []float32) {
	b.node(ptr).SetCharacterPositions(value)
}

func (b *Bridge) NodeSetCharacterWidths(ptr int64, value []float32) {
	b.node(ptr).SetCharacterWidths(value)
}

func (b *Bridge) NodeSetPositionInSet(ptr int64, value int32) {
	b.node(ptr).SetPositionInSet(int(value))
}

func (b *Bridge) NodeSetSizeOfSet(ptr int64, value int32) { b.node(ptr).SetSizeOfSet(int(value)) }

// NodeView returns the serializable view of a live node builder.
func (b *Bridge) NodeView(ptr int64) model.Element {
	return model.NewElement(0, b.node(ptr))
}
