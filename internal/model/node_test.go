package model

import (
	"math"
	"slices"
	"testing"
)

func TestNode_UnsetByDefault(t *testing.T) {
	n := NewNode(RoleButton)
	if n.Role() != RoleButton {
		t.Errorf("Role = %v, want button", n.Role())
	}
	if _, ok := n.Label(); ok {
		t.Error("label should be unset")
	}
	if _, ok := n.Bounds(); ok {
		t.Error("bounds should be unset")
	}
	if _, ok := n.NumericValue(); ok {
		t.Error("numeric value should be unset")
	}
	if n.CharacterLengths() != nil {
		t.Error("character lengths should be unset")
	}
	if n.Actions().Len() != 0 {
		t.Error("actions should be empty")
	}
}

func TestNode_LastWriteWins(t *testing.T) {
	n := NewNode(RoleSlider)
	n.SetLabel("first")
	n.SetNumericValue(1)
	n.SetToggled(ToggledTrue)
	n.SetLabel("second")
	n.SetNumericValue(2)
	n.SetToggled(ToggledMixed)
	n.SetMinNumericValue(0)
	n.SetMaxNumericValue(10)

	if v, _ := n.Label(); v != "second" {
		t.Errorf("label = %q, want second", v)
	}
	if v, _ := n.NumericValue(); v != 2 {
		t.Errorf("numeric value = %v, want 2", v)
	}
	if v, _ := n.Toggled(); v != ToggledMixed {
		t.Errorf("toggled = %v, want mixed", v)
	}
	if v, _ := n.MaxNumericValue(); v != 10 {
		t.Errorf("max = %v, want 10", v)
	}
}

func TestNode_MinGreaterThanMaxAccepted(t *testing.T) {
	n := NewNode(RoleSlider)
	n.SetMinNumericValue(10)
	n.SetMaxNumericValue(1)
	n.SetNumericValue(100)
	lo, _ := n.MinNumericValue()
	hi, _ := n.MaxNumericValue()
	if lo != 10 || hi != 1 {
		t.Errorf("min/max = %v/%v, want 10/1", lo, hi)
	}
}

func TestNode_BoundsRoundTripBitExact(t *testing.T) {
	n := NewNode(RoleButton)
	in := Rect{X0: 1.0, Y0: 2.0, X1: 3.0, Y1: 4.0}
	n.SetBounds(in)
	got, ok := n.Bounds()
	if !ok {
		t.Fatal("bounds not set")
	}
	pairs := [][2]float64{{got.X0, in.X0}, {got.Y0, in.Y0}, {got.X1, in.X1}, {got.Y1, in.Y1}}
	for i, p := range pairs {
		if math.Float64bits(p[0]) != math.Float64bits(p[1]) {
			t.Errorf("coordinate %d: got %v, want %v", i, p[0], p[1])
		}
	}
}

func TestNode_ChildrenCumulativeAndOrdered(t *testing.T) {
	n := NewNode(RoleList)
	n.AddChild(3)
	n.AddChild(1)
	n.AddChild(2)
	n.AddChild(1)
	if got := n.Children(); !slices.Equal(got, []NodeID{3, 1, 2, 1}) {
		t.Errorf("children = %v, want [3 1 2 1]", got)
	}
	n.ClearChildren()
	if got := n.Children(); len(got) != 0 {
		t.Errorf("children after clear = %v, want empty", got)
	}
	n.SetChildren([]NodeID{7, 8})
	if got := n.Children(); !slices.Equal(got, []NodeID{7, 8}) {
		t.Errorf("children after set = %v, want [7 8]", got)
	}
}

func TestNode_LayoutArraysCopied(t *testing.T) {
	n := NewNode(RoleTextRun)
	lengths := []byte{1, 1, 3}
	positions := []float32{0, 7.5, 15}
	n.SetCharacterLengths(lengths)
	n.SetCharacterPositions(positions)
	lengths[0] = 9
	positions[0] = 99

	if got := n.CharacterLengths(); !slices.Equal(got, []byte{1, 1, 3}) {
		t.Errorf("character lengths = %v, caller mutation leaked", got)
	}
	if got := n.CharacterPositions(); !slices.Equal(got, []float32{0, 7.5, 15}) {
		t.Errorf("character positions = %v, caller mutation leaked", got)
	}

	// Lengths of the arrays are not required to agree.
	n.SetWordLengths([]byte{2})
	n.SetCharacterWidths([]float32{7.5})
	if len(n.WordLengths()) != 1 || len(n.CharacterWidths()) != 1 {
		t.Error("independently sized arrays should be accepted")
	}
}

func TestNode_EmptyArrayIsSet(t *testing.T) {
	n := NewNode(RoleTextRun)
	n.SetCharacterLengths(nil)
	if n.CharacterLengths() == nil {
		t.Error("setting an empty array should leave it set, not unset")
	}
}

func TestNode_TextSelectionUnchecked(t *testing.T) {
	n := NewNode(RoleTextInput)
	sel := TextSelection{
		Anchor: TextPosition{Node: 5, CharacterIndex: 1000},
		Focus:  TextPosition{Node: 6, CharacterIndex: 0},
	}
	n.SetTextSelection(sel)
	if got, _ := n.TextSelection(); got != sel {
		t.Errorf("selection = %+v, want %+v", got, sel)
	}
}

func TestNode_Clone(t *testing.T) {
	n := NewNode(RoleButton)
	n.AddChild(1)
	n.SetLabel("OK")
	c := n.Clone()
	n.AddChild(2)
	n.SetLabel("Cancel")
	if got := c.Children(); !slices.Equal(got, []NodeID{1}) {
		t.Errorf("clone children = %v, want [1]", got)
	}
	if v, _ := c.Label(); v != "OK" {
		t.Errorf("clone label = %q, want OK", v)
	}
}
