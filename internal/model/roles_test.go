package model

import (
	"errors"
	"testing"
)

func TestRoleFromCode_KnownRoles(t *testing.T) {
	tests := []struct {
		code  int
		want  Role
		name  string
		short string
	}{
		{0, RoleUnknown, "unknown", "other"},
		{4, RoleImage, "image", "img"},
		{5, RoleLink, "link", "lnk"},
		{15, RoleCheckBox, "checkBox", "chk"},
		{17, RoleTextInput, "textInput", "input"},
		{18, RoleButton, "button", "btn"},
		{int(RoleWindow), RoleWindow, "window", "window"},
		{RoleCount - 1, RoleTerminal, "terminal", "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoleFromCode(tt.code)
			if err != nil {
				t.Fatalf("RoleFromCode(%d): %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("RoleFromCode(%d) = %v, want %v", tt.code, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
			if got.Short() != tt.short {
				t.Errorf("Short() = %q, want %q", got.Short(), tt.short)
			}
		})
	}
}

func TestRoleFromCode_OutOfRange(t *testing.T) {
	for _, code := range []int{-1, RoleCount, RoleCount + 10, 255} {
		_, err := RoleFromCode(code)
		var ce *CodeError
		if !errors.As(err, &ce) {
			t.Errorf("RoleFromCode(%d) err = %v, want *CodeError", code, err)
			continue
		}
		if ce.Kind != "role" || ce.Code != code {
			t.Errorf("got %+v", ce)
		}
	}
}

func TestRoleTable_NamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < RoleCount; i++ {
		name := Role(i).String()
		if name == "" {
			t.Fatalf("role %d has no name", i)
		}
		if seen[name] {
			t.Errorf("duplicate role name %q", name)
		}
		seen[name] = true
		back, err := ParseRole(name)
		if err != nil || back != Role(i) {
			t.Errorf("ParseRole(%q) = %v, %v; want %d", name, back, err, i)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	if _, err := ParseRole("AXButton"); err == nil {
		t.Error("ParseRole(\"AXButton\") should fail")
	}
}

func TestExpandRoles(t *testing.T) {
	got := ExpandRoles([]string{"btn", "interactive", "txt"})
	if got[0] != "btn" {
		t.Errorf("first = %q, want btn", got[0])
	}
	seen := make(map[string]int)
	for _, r := range got {
		seen[r]++
	}
	for r, n := range seen {
		if n > 1 {
			t.Errorf("%q appears %d times", r, n)
		}
	}
	if seen["txt"] != 1 || seen["input"] != 1 {
		t.Errorf("expected txt and input in %v", got)
	}
}
