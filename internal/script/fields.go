package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/a11ybridge/internal/bridge"
	"github.com/mj1618/a11ybridge/internal/model"
)

// setter applies one node field through the bridge.
type setter func(b *bridge.Bridge, node int64, value interface{}) error

// nodeFields maps the field names accepted by scripts and MCP tools to the
// bridge setter they call.
var nodeFields = map[string]setter{
	"label":               stringField((*bridge.Bridge).NodeSetLabel),
	"description":         stringField((*bridge.Bridge).NodeSetDescription),
	"value":               stringField((*bridge.Bridge).NodeSetValue),
	"access-key":          stringField((*bridge.Bridge).NodeSetAccessKey),
	"keyboard-shortcut":   stringField((*bridge.Bridge).NodeSetKeyboardShortcut),
	"numeric-value":       floatField((*bridge.Bridge).NodeSetNumericValue),
	"min":                 floatField((*bridge.Bridge).NodeSetMinNumericValue),
	"max":                 floatField((*bridge.Bridge).NodeSetMaxNumericValue),
	"step":                floatField((*bridge.Bridge).NodeSetNumericValueStep),
	"jump":                floatField((*bridge.Bridge).NodeSetNumericValueJump),
	"position":            intField((*bridge.Bridge).NodeSetPositionInSet),
	"size":                intField((*bridge.Bridge).NodeSetSizeOfSet),
	"toggled":             codeField(parseToggled, (*bridge.Bridge).NodeSetToggled),
	"live":                codeField(parseLive, (*bridge.Bridge).NodeSetLive),
	"direction":           codeField(parseTextDirection, (*bridge.Bridge).NodeSetTextDirection),
	"action":              codeField(parseAction, (*bridge.Bridge).NodeAddAction),
	"actions":             setActions,
	"child":               setChild,
	"children":            setChildren,
	"clear-children":      clearChildren,
	"bounds":              setBounds,
	"selection":           setSelection,
	"character-lengths":   bytesField((*bridge.Bridge).NodeSetCharacterLengths),
	"word-lengths":        bytesField((*bridge.Bridge).NodeSetWordLengths),
	"character-positions": float32sField((*bridge.Bridge).NodeSetCharacterPositions),
	"character-widths":    float32sField((*bridge.Bridge).NodeSetCharacterWidths),
}

// NodeFields lists the accepted field names in sorted order.
func NodeFields() []string {
	names := make([]string, 0, len(nodeFields))
	for name := range nodeFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetField applies one named field to a live node handle. Malformed values
// are returned as errors; invalid enumeration codes and bad handles panic
// like any other bridge call.
func SetField(b *bridge.Bridge, node int64, field string, value interface{}) error {
	set, ok := nodeFields[field]
	if !ok {
		return fmt.Errorf("unknown node field %q (known: %s)", field, strings.Join(NodeFields(), ", "))
	}
	if err := set(b, node, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func stringField(set func(*bridge.Bridge, int64, []byte)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		set(b, node, []byte(s))
		return nil
	}
}

func floatField(set func(*bridge.Bridge, int64, float64)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("expected a number, got %T", v)
		}
		set(b, node, f)
		return nil
	}
}

func intField(set func(*bridge.Bridge, int64, int32)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		n, ok := toInt64(v)
		if !ok {
			return fmt.Errorf("expected an integer, got %T", v)
		}
		set(b, node, int32(n))
		return nil
	}
}

func bytesField(set func(*bridge.Bridge, int64, []byte)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		bs, err := toBytes(v)
		if err != nil {
			return err
		}
		set(b, node, bs)
		return nil
	}
}

func float32sField(set func(*bridge.Bridge, int64, []float32)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		fs, err := toFloat32s(v)
		if err != nil {
			return err
		}
		set(b, node, fs)
		return nil
	}
}

// codeField accepts either a name, decoded with parse, or a raw code that is
// passed through to the bridge unchecked.
func codeField(parse func(string) (int, error), set func(*bridge.Bridge, int64, int32)) setter {
	return func(b *bridge.Bridge, node int64, v interface{}) error {
		code, err := enumCode(v, parse)
		if err != nil {
			return err
		}
		set(b, node, code)
		return nil
	}
}

func enumCode(v interface{}, parse func(string) (int, error)) (int32, error) {
	if s, ok := v.(string); ok {
		code, err := parse(s)
		if err != nil {
			return 0, err
		}
		return int32(code), nil
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("expected a name or code, got %T", v)
	}
	return int32(n), nil
}

func parseRole(s string) (int, error) {
	r, err := model.ParseRole(s)
	return int(r), err
}

func parseAction(s string) (int, error) {
	a, err := model.ParseAction(s)
	return int(a), err
}

func parseToggled(s string) (int, error) {
	v, err := model.ParseToggled(s)
	return int(v), err
}

func parseLive(s string) (int, error) {
	v, err := model.ParseLive(s)
	return int(v), err
}

func parseTextDirection(s string) (int, error) {
	v, err := model.ParseTextDirection(s)
	return int(v), err
}

func setActions(b *bridge.Bridge, node int64, v interface{}) error {
	list, err := toList(v)
	if err != nil {
		return err
	}
	for i, item := range list {
		code, err := enumCode(item, parseAction)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		b.NodeAddAction(node, code)
	}
	return nil
}

func setChild(b *bridge.Bridge, node int64, v interface{}) error {
	id, ok := toInt64(v)
	if !ok {
		return fmt.Errorf("expected a node id, got %T", v)
	}
	b.NodeAddChild(node, id)
	return nil
}

func setChildren(b *bridge.Bridge, node int64, v interface{}) error {
	ids, err := toInt64s(v)
	if err != nil {
		return err
	}
	b.NodeSetChildren(node, ids)
	return nil
}

func clearChildren(b *bridge.Bridge, node int64, v interface{}) error {
	if on, ok := v.(bool); ok && !on {
		return nil
	}
	b.NodeClearChildren(node)
	return nil
}

func setBounds(b *bridge.Bridge, node int64, v interface{}) error {
	fs, err := toFloats(v)
	if err != nil {
		return err
	}
	if len(fs) != 4 {
		return fmt.Errorf("expected [x0, y0, x1, y1], got %d values", len(fs))
	}
	b.NodeSetBounds(node, fs[0], fs[1], fs[2], fs[3])
	return nil
}

// setSelection takes [anchor node, anchor index, focus node, focus index].
func setSelection(b *bridge.Bridge, node int64, v interface{}) error {
	ns, err := toInt64s(v)
	if err != nil {
		return err
	}
	if len(ns) != 4 {
		return fmt.Errorf("expected [anchor, anchor-index, focus, focus-index], got %d values", len(ns))
	}
	b.NodeSetTextSelection(node, ns[0], int32(ns[1]), ns[2], int32(ns[3]))
	return nil
}
