package model

import (
	"reflect"
	"slices"
	"testing"
)

func TestTreeUpdate_NewHasNoTree(t *testing.T) {
	u := NewTreeUpdate(7)
	if u.Focus != 7 {
		t.Errorf("focus = %d, want 7", u.Focus)
	}
	if u.Tree != nil {
		t.Error("new update should have no tree")
	}
	if len(u.Nodes) != 0 {
		t.Error("new update should have no nodes")
	}
}

func TestTreeUpdate_AddNodePreservesOrder(t *testing.T) {
	u := NewTreeUpdate(1)
	u.AddNode(10, NewNode(RoleButton))
	u.AddNode(2, NewNode(RoleLabel))
	u.AddNode(33, NewNode(RoleWindow))
	if got := u.NodeIDs(); !slices.Equal(got, []NodeID{10, 2, 33}) {
		t.Errorf("ids = %v, want [10 2 33]", got)
	}
}

func TestTreeUpdate_SetTreeThenClear(t *testing.T) {
	a := NewTreeUpdate(1)
	a.SetTree(1)
	a.SetTree(2)
	if a.Tree == nil || a.Tree.Root != 2 {
		t.Fatalf("tree = %+v, want root 2", a.Tree)
	}
	a.ClearTree()

	b := NewTreeUpdate(1)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("set+clear = %+v, want %+v", a, b)
	}
}

func TestTreeUpdate_SetFocusLastWriteWins(t *testing.T) {
	u := NewTreeUpdate(1)
	u.SetFocus(5)
	u.SetFocus(99)
	if u.Focus != 99 {
		t.Errorf("focus = %d, want 99", u.Focus)
	}
}
