package platform

import (
	"runtime"
	"testing"

	"github.com/mj1618/a11ybridge/internal/model"
)

type stubAdapter struct {
	*Core
}

func TestRegisterAndNewAdapter(t *testing.T) {
	Register("stub", func(native uintptr, activation ActivationHandler, opts ...Option) Adapter {
		return stubAdapter{NewCore(stubTranslator{}, native, activation, opts...)}
	})
	defer delete(factories, "stub")

	a, err := NewAdapter("stub", 7, ActivationHandlerFunc(func() *model.TreeUpdate { return nil }))
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	if a.Platform() != "stub" {
		t.Errorf("platform = %q", a.Platform())
	}
	if _, err := NewAdapter("amiga", 0, nil); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestDefault(t *testing.T) {
	got := Default("fallback")
	switch runtime.GOOS {
	case "darwin":
		if got != MacOS {
			t.Errorf("got %q", got)
		}
	case "windows":
		if got != Windows {
			t.Errorf("got %q", got)
		}
	default:
		if got != "fallback" {
			t.Errorf("got %q", got)
		}
	}
}

func TestValid_FollowsRegistry(t *testing.T) {
	if Valid("stub") {
		t.Fatal("stub valid before registration")
	}
	Register("stub", func(native uintptr, activation ActivationHandler, opts ...Option) Adapter {
		return stubAdapter{NewCore(stubTranslator{}, native, activation, opts...)}
	})
	defer delete(factories, "stub")

	for name, want := range map[string]bool{"stub": true, "linux": false, "": false} {
		if Valid(name) != want {
			t.Errorf("Valid(%q) = %v", name, !want)
		}
	}
	found := false
	for _, name := range Names() {
		found = found || name == "stub"
	}
	if !found {
		t.Errorf("Names() = %v, want stub listed", Names())
	}
}
