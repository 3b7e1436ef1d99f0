package model

import "fmt"

// Action is something an assistive technology can ask a node to do.
type Action uint8

const (
	ActionClick Action = iota
	ActionFocus
	ActionBlur
	ActionCollapse
	ActionExpand
	// ActionCustomAction requires request data naming the custom action.
	ActionCustomAction
	ActionDecrement
	ActionIncrement
	ActionHideTooltip
	ActionShowTooltip
	// ActionReplaceSelectedText replaces the selection with the request's value.
	ActionReplaceSelectedText
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionScrollUp
	ActionScrollIntoView
	ActionScrollToPoint
	ActionSetScrollOffset
	ActionSetTextSelection
	ActionSetSequentialFocusNavigationStartingPoint
	ActionSetValue
	ActionShowContextMenu
)

var actionNames = [...]string{
	ActionClick:               "click",
	ActionFocus:               "focus",
	ActionBlur:                "blur",
	ActionCollapse:            "collapse",
	ActionExpand:              "expand",
	ActionCustomAction:        "customAction",
	ActionDecrement:           "decrement",
	ActionIncrement:           "increment",
	ActionHideTooltip:         "hideTooltip",
	ActionShowTooltip:         "showTooltip",
	ActionReplaceSelectedText: "replaceSelectedText",
	ActionScrollDown:          "scrollDown",
	ActionScrollLeft:          "scrollLeft",
	ActionScrollRight:         "scrollRight",
	ActionScrollUp:            "scrollUp",
	ActionScrollIntoView:      "scrollIntoView",
	ActionScrollToPoint:       "scrollToPoint",
	ActionSetScrollOffset:     "setScrollOffset",
	ActionSetTextSelection:    "setTextSelection",
	ActionSetSequentialFocusNavigationStartingPoint: "setSequentialFocusNavigationStartingPoint",
	ActionSetValue:        "setValue",
	ActionShowContextMenu: "showContextMenu",
}

// ActionCount is the number of valid action codes.
const ActionCount = len(actionNames)

// ActionFromCode decodes an action code.
func ActionFromCode(code int) (Action, error) {
	if code < 0 || code >= ActionCount {
		return 0, &CodeError{Kind: "action", Code: code, Max: ActionCount - 1}
	}
	return Action(code), nil
}

// ParseAction looks an action up by name (e.g. "click").
func ParseAction(name string) (Action, error) {
	i, err := lookupName("action", actionNames[:], name)
	return Action(i), err
}

func (a Action) String() string {
	if int(a) < ActionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ActionSet is a set of actions. Adding an action twice is a no-op.
type ActionSet uint32

// Add inserts a into the set.
func (s *ActionSet) Add(a Action) {
	*s |= 1 << a
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

// Len returns the number of actions in the set.
func (s ActionSet) Len() int {
	n := 0
	for a := Action(0); int(a) < ActionCount; a++ {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// List returns the actions in code order.
func (s ActionSet) List() []Action {
	var out []Action
	for a := Action(0); int(a) < ActionCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Names returns the action names in code order.
func (s ActionSet) Names() []string {
	var out []string
	for _, a := range s.List() {
		out = append(out, a.String())
	}
	return out
}
