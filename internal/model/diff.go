package model

import (
	"fmt"
	"slices"
)

// ChangeType represents the kind of change a tree update made to one node.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change describes what happened to a single node when an update was applied.
type Change struct {
	Type   ChangeType           `yaml:"type"              json:"type"`
	ID     NodeID               `yaml:"id"                json:"id"`
	Role   Role                 `yaml:"-"                 json:"-"`
	Label  string               `yaml:"t,omitempty"       json:"t,omitempty"`
	Fields map[string][2]string `yaml:"fields,omitempty"  json:"fields,omitempty"` // For changed: old/new per element key
}

// DiffElements compares two views of the same node and returns the changed
// fields keyed by their Element key, or nil if nothing changed.
func DiffElements(prev, curr Element) map[string][2]string {
	diffs := make(map[string][2]string)

	str := func(key, a, b string) {
		if a != b {
			diffs[key] = [2]string{a, b}
		}
	}
	str("r", prev.RoleName, curr.RoleName)
	str("t", prev.Label, curr.Label)
	str("d", prev.Description, curr.Description)
	str("v", prev.Value, curr.Value)
	str("ak", prev.AccessKey, curr.AccessKey)
	str("ks", prev.KeyboardShortcut, curr.KeyboardShortcut)
	str("tg", prev.Toggled, curr.Toggled)
	str("lv", prev.Live, curr.Live)
	str("dir", prev.TextDirection, curr.TextDirection)
	str("b", formatPtr(prev.Bounds), formatPtr(curr.Bounds))
	str("n", formatNumeric(prev.Numeric), formatNumeric(curr.Numeric))
	str("sel", formatPtr(prev.Selection), formatPtr(curr.Selection))
	str("tl", formatPtr(prev.TextLayout), formatPtr(curr.TextLayout))
	if !slices.Equal(prev.Children, curr.Children) {
		diffs["c"] = [2]string{fmt.Sprintf("%v", prev.Children), fmt.Sprintf("%v", curr.Children)}
	}
	if !slices.Equal(prev.Actions, curr.Actions) {
		diffs["a"] = [2]string{fmt.Sprintf("%v", prev.Actions), fmt.Sprintf("%v", curr.Actions)}
	}
	if prev.PositionInSet != curr.PositionInSet || prev.SizeOfSet != curr.SizeOfSet {
		diffs["pos"] = [2]string{
			fmt.Sprintf("%d/%d", prev.PositionInSet, prev.SizeOfSet),
			fmt.Sprintf("%d/%d", curr.PositionInSet, curr.SizeOfSet),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func formatPtr[T any](p *T) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%v", *p)
}

func formatNumeric(n *NumericView) string {
	if n == nil {
		return ""
	}
	f := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *p)
	}
	return fmt.Sprintf("%s [%s..%s] step %s jump %s", f(n.Value), f(n.Min), f(n.Max), f(n.Step), f(n.Jump))
}
