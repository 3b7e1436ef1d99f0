package model

import "slices"

// NodeID is the logical id of a node within a tree. It is chosen by the
// caller and is unrelated to handles.
type NodeID uint64

// Rect is an axis-aligned rectangle: (X0, Y0) is the top-left corner and
// (X1, Y1) the bottom-right. No ordering between the corners is enforced.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// TextPosition is a character offset within a text node.
type TextPosition struct {
	Node           NodeID
	CharacterIndex uint
}

// TextSelection is an anchor/focus range. The range may be collapsed or
// backwards; character indices are not checked against the text.
type TextSelection struct {
	Anchor TextPosition
	Focus  TextPosition
}

// Node accumulates the attributes of one accessibility-tree node.
//
// The role is fixed at construction. Every other attribute is unset until its
// setter is called; scalar setters overwrite, AddAction and AddChild
// accumulate.
type Node struct {
	role     Role
	actions  ActionSet
	children []NodeID

	label            *string
	description      *string
	value            *string
	accessKey        *string
	keyboardShortcut *string

	bounds *Rect

	toggled       *Toggled
	live          *Live
	textDirection *TextDirection

	numericValue     *float64
	minNumericValue  *float64
	maxNumericValue  *float64
	numericValueStep *float64
	numericValueJump *float64

	textSelection *TextSelection

	characterLengths   []byte
	wordLengths        []byte
	characterPositions []float32
	characterWidths    []float32

	positionInSet *int
	sizeOfSet     *int
}

// NewNode creates a node with the given role and no other attributes.
func NewNode(role Role) *Node {
	return &Node{role: role}
}

func ptr[T any](v T) *T { return &v }

func get[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func (n *Node) Role() Role { return n.role }

// AddAction adds a to the node's supported actions.
func (n *Node) AddAction(a Action) { n.actions.Add(a) }

// Actions returns the node's supported actions.
func (n *Node) Actions() ActionSet { return n.actions }

// SupportsAction reports whether a was added to the node.
func (n *Node) SupportsAction(a Action) bool { return n.actions.Has(a) }

// AddChild appends id to the child list.
func (n *Node) AddChild(id NodeID) { n.children = append(n.children, id) }

// ClearChildren empties the child list.
func (n *Node) ClearChildren() { n.children = nil }

// SetChildren replaces the child list.
func (n *Node) SetChildren(ids []NodeID) {
	n.ClearChildren()
	for _, id := range ids {
		n.AddChild(id)
	}
}

// Children returns a copy of the child list.
func (n *Node) Children() []NodeID { return slices.Clone(n.children) }

func (n *Node) SetLabel(v string)            { n.label = ptr(v) }
func (n *Node) Label() (string, bool)        { return get(n.label) }
func (n *Node) SetDescription(v string)      { n.description = ptr(v) }
func (n *Node) Description() (string, bool)  { return get(n.description) }
func (n *Node) SetValue(v string)            { n.value = ptr(v) }
func (n *Node) Value() (string, bool)        { return get(n.value) }
func (n *Node) SetAccessKey(v string)        { n.accessKey = ptr(v) }
func (n *Node) AccessKey() (string, bool)    { return get(n.accessKey) }
func (n *Node) SetKeyboardShortcut(v string) { n.keyboardShortcut = ptr(v) }

func (n *Node) KeyboardShortcut() (string, bool) { return get(n.keyboardShortcut) }

func (n *Node) SetBounds(r Rect)     { n.bounds = ptr(r) }
func (n *Node) Bounds() (Rect, bool) { return get(n.bounds) }

func (n *Node) SetToggled(v Toggled)                 { n.toggled = ptr(v) }
func (n *Node) Toggled() (Toggled, bool)             { return get(n.toggled) }
func (n *Node) SetLive(v Live)                       { n.live = ptr(v) }
func (n *Node) Live() (Live, bool)                   { return get(n.live) }
func (n *Node) SetTextDirection(v TextDirection)     { n.textDirection = ptr(v) }
func (n *Node) TextDirection() (TextDirection, bool) { return get(n.textDirection) }

func (n *Node) SetNumericValue(v float64)        { n.numericValue = ptr(v) }
func (n *Node) NumericValue() (float64, bool)    { return get(n.numericValue) }
func (n *Node) SetMinNumericValue(v float64)     { n.minNumericValue = ptr(v) }
func (n *Node) MinNumericValue() (float64, bool) { return get(n.minNumericValue) }
func (n *Node) SetMaxNumericValue(v float64)     { n.maxNumericValue = ptr(v) }
func (n *Node) MaxNumericValue() (float64, bool) { return get(n.maxNumericValue) }
func (n *Node) SetNumericValueStep(v float64)    { n.numericValueStep = ptr(v) }

func (n *Node) NumericValueStep() (float64, bool) { return get(n.numericValueStep) }
func (n *Node) SetNumericValueJump(v float64)     { n.numericValueJump = ptr(v) }
func (n *Node) NumericValueJump() (float64, bool) { return get(n.numericValueJump) }

func (n *Node) SetTextSelection(v TextSelection)     { n.textSelection = ptr(v) }
func (n *Node) TextSelection() (TextSelection, bool) { return get(n.textSelection) }

// SetCharacterLengths stores the UTF-8 byte length of each character.
// The slice is copied.
func (n *Node) SetCharacterLengths(v []byte) { n.characterLengths = cloneNonNil(v) }

func (n *Node) CharacterLengths() []byte { return slices.Clone(n.characterLengths) }

// SetWordLengths stores the length in characters of each word.
func (n *Node) SetWordLengths(v []byte) { n.wordLengths = cloneNonNil(v) }

func (n *Node) WordLengths() []byte { return slices.Clone(n.wordLengths) }

// SetCharacterPositions stores each character's offset along the text direction.
func (n *Node) SetCharacterPositions(v []float32) { n.characterPositions = cloneNonNil(v) }

func (n *Node) CharacterPositions() []float32 { return slices.Clone(n.characterPositions) }

// SetCharacterWidths stores each character's advance along the text direction.
func (n *Node) SetCharacterWidths(v []float32) { n.characterWidths = cloneNonNil(v) }

func (n *Node) CharacterWidths() []float32 { return slices.Clone(n.characterWidths) }

func (n *Node) SetPositionInSet(v int)     { n.positionInSet = ptr(v) }
func (n *Node) PositionInSet() (int, bool) { return get(n.positionInSet) }
func (n *Node) SetSizeOfSet(v int)         { n.sizeOfSet = ptr(v) }
func (n *Node) SizeOfSet() (int, bool)     { return get(n.sizeOfSet) }

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := *n
	c.children = slices.Clone(n.children)
	c.characterLengths = slices.Clone(n.characterLengths)
	c.wordLengths = slices.Clone(n.wordLengths)
	c.characterPositions = slices.Clone(n.characterPositions)
	c.characterWidths = slices.Clone(n.characterWidths)
	return &c
}

// cloneNonNil copies v, keeping an empty-but-set array distinct from unset.
func cloneNonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return slices.Clone(v)
}
