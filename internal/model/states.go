package model

import "fmt"

// Toggled is the checked state of a check box, switch or toggle button.
type Toggled uint8

const (
	ToggledFalse Toggled = iota
	ToggledTrue
	ToggledMixed
)

var toggledNames = [...]string{"false", "true", "mixed"}

// ToggledFromCode decodes a toggled-state code.
func ToggledFromCode(code int) (Toggled, error) {
	if code < 0 || code >= len(toggledNames) {
		return 0, &CodeError{Kind: "toggled", Code: code, Max: len(toggledNames) - 1}
	}
	return Toggled(code), nil
}

// ParseToggled looks a toggled state up by name.
func ParseToggled(name string) (Toggled, error) {
	i, err := lookupName("toggled", toggledNames[:], name)
	return Toggled(i), err
}

func (t Toggled) String() string {
	if int(t) < len(toggledNames) {
		return toggledNames[t]
	}
	return fmt.Sprintf("Toggled(%d)", uint8(t))
}

// Live is the politeness of a live region.
type Live uint8

const (
	LiveOff Live = iota
	LivePolite
	LiveAssertive
)

var liveNames = [...]string{"off", "polite", "assertive"}

// LiveFromCode decodes a live-region code.
func LiveFromCode(code int) (Live, error) {
	if code < 0 || code >= len(liveNames) {
		return 0, &CodeError{Kind: "live", Code: code, Max: len(liveNames) - 1}
	}
	return Live(code), nil
}

// ParseLive looks a live setting up by name.
func ParseLive(name string) (Live, error) {
	i, err := lookupName("live", liveNames[:], name)
	return Live(i), err
}

func (l Live) String() string {
	if int(l) < len(liveNames) {
		return liveNames[l]
	}
	return fmt.Sprintf("Live(%d)", uint8(l))
}

// TextDirection is the direction text flows in.
type TextDirection uint8

const (
	TextDirectionLeftToRight TextDirection = iota
	TextDirectionRightToLeft
	TextDirectionTopToBottom
	TextDirectionBottomToTop
)

var textDirectionNames = [...]string{"leftToRight", "rightToLeft", "topToBottom", "bottomToTop"}

// TextDirectionFromCode decodes a text direction code.
func TextDirectionFromCode(code int) (TextDirection, error) {
	if code < 0 || code >= len(textDirectionNames) {
		return 0, &CodeError{Kind: "textDirection", Code: code, Max: len(textDirectionNames) - 1}
	}
	return TextDirection(code), nil
}

// ParseTextDirection looks a text direction up by name.
func ParseTextDirection(name string) (TextDirection, error) {
	i, err := lookupName("textDirection", textDirectionNames[:], name)
	return TextDirection(i), err
}

func (d TextDirection) String() string {
	if int(d) < len(textDirectionNames) {
		return textDirectionNames[d]
	}
	return fmt.Sprintf("TextDirection(%d)", uint8(d))
}
