package model

import (
	"errors"
	"testing"
)

func TestActionFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Action
		name string
	}{
		{0, ActionClick, "click"},
		{1, ActionFocus, "focus"},
		{5, ActionCustomAction, "customAction"},
		{20, ActionSetValue, "setValue"},
		{21, ActionShowContextMenu, "showContextMenu"},
	}
	for _, tt := range tests {
		got, err := ActionFromCode(tt.code)
		if err != nil {
			t.Fatalf("ActionFromCode(%d): %v", tt.code, err)
		}
		if got != tt.want || got.String() != tt.name {
			t.Errorf("ActionFromCode(%d) = %v, want %s", tt.code, got, tt.name)
		}
	}
	if ActionCount != 22 {
		t.Errorf("ActionCount = %d, want 22", ActionCount)
	}
}

func TestStateDecoders_RejectOutOfRange(t *testing.T) {
	decoders := map[string]func(int) error{
		"action":        func(c int) error { _, err := ActionFromCode(c); return err },
		"toggled":       func(c int) error { _, err := ToggledFromCode(c); return err },
		"live":          func(c int) error { _, err := LiveFromCode(c); return err },
		"textDirection": func(c int) error { _, err := TextDirectionFromCode(c); return err },
	}
	tables := CodeTables()
	for kind, decode := range decoders {
		t.Run(kind, func(t *testing.T) {
			n := len(tables[kind])
			for code := 0; code < n; code++ {
				if err := decode(code); err != nil {
					t.Errorf("code %d: unexpected error %v", code, err)
				}
			}
			for _, code := range []int{-1, n} {
				var ce *CodeError
				if err := decode(code); !errors.As(err, &ce) {
					t.Errorf("code %d: err = %v, want *CodeError", code, err)
				} else if ce.Max != n-1 {
					t.Errorf("code %d: Max = %d, want %d", code, ce.Max, n-1)
				}
			}
		})
	}
}

func TestParseStates(t *testing.T) {
	if v, err := ParseToggled("mixed"); err != nil || v != ToggledMixed {
		t.Errorf("ParseToggled(mixed) = %v, %v", v, err)
	}
	if v, err := ParseLive("assertive"); err != nil || v != LiveAssertive {
		t.Errorf("ParseLive(assertive) = %v, %v", v, err)
	}
	if v, err := ParseTextDirection("rightToLeft"); err != nil || v != TextDirectionRightToLeft {
		t.Errorf("ParseTextDirection(rightToLeft) = %v, %v", v, err)
	}
	if _, err := ParseLive("loud"); err == nil {
		t.Error("ParseLive(loud) should fail")
	}
}

func TestCodeTables_RoleShortCodes(t *testing.T) {
	roles := CodeTables()["role"]
	if len(roles) != RoleCount {
		t.Fatalf("role table has %d rows, want %d", len(roles), RoleCount)
	}
	btn := roles[RoleButton]
	if btn.Code != int(RoleButton) || btn.Name != "button" || btn.Short != "btn" {
		t.Errorf("button row = %+v", btn)
	}
}

func TestActionSet_Idempotent(t *testing.T) {
	var s ActionSet
	s.Add(ActionClick)
	s.Add(ActionClick)
	s.Add(ActionFocus)
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	names := s.Names()
	if len(names) != 2 || names[0] != "click" || names[1] != "focus" {
		t.Errorf("Names = %v, want [click focus]", names)
	}
	if s.Has(ActionBlur) {
		t.Error("blur should not be in set")
	}
}
