package windows

import (
	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/platform"
	"github.com/mj1618/a11ybridge/internal/tree"
)

// UI Automation event ids.
const (
	EventStructureChanged     = "UIA_StructureChangedEventId"
	EventPropertyChanged      = "UIA_AutomationPropertyChangedEventId"
	EventFocusChanged         = "UIA_AutomationFocusChangedEventId"
	EventTextSelectionChanged = "UIA_Text_TextSelectionChangedEventId"
	EventLiveRegionChanged    = "UIA_LiveRegionChangedEventId"
)

// StructureChangeType values carried in the detail of structure events.
const (
	StructureChildAdded          = "ChildAdded"
	StructureChildRemoved        = "ChildRemoved"
	StructureChildrenInvalidated = "ChildrenInvalidated"
	StructureChildrenReordered   = "ChildrenReordered"
)

// propertyIDs maps changed element keys to UIA property ids, in the order
// they are raised.
var propertyIDs = []struct {
	key      string
	property string
}{
	{"t", "UIA_NamePropertyId"},
	{"d", "UIA_FullDescriptionPropertyId"},
	{"v", "UIA_ValueValuePropertyId"},
	{"n", "UIA_RangeValueValuePropertyId"},
	{"tg", "UIA_ToggleToggleStatePropertyId"},
	{"b", "UIA_BoundingRectanglePropertyId"},
	{"ak", "UIA_AccessKeyPropertyId"},
	{"ks", "UIA_AcceleratorKeyPropertyId"},
	{"pos", "UIA_PositionInSetPropertyId"},
}

type translator struct{}

func (translator) Platform() string { return platform.Windows }

func (translator) Initial(t *tree.Tree) []platform.Event {
	return []platform.Event{event(EventStructureChanged, t.Root(), StructureChildrenInvalidated)}
}

func (translator) Changes(res tree.Result, t *tree.Tree) []platform.Event {
	var events []platform.Event
	for _, c := range res.Changes {
		switch c.Type {
		case model.ChangeAdded:
			events = append(events, event(EventStructureChanged, c.ID, StructureChildAdded))
		case model.ChangeRemoved:
			events = append(events, event(EventStructureChanged, c.ID, StructureChildRemoved))
		case model.ChangeChanged:
			for _, p := range propertyIDs {
				if _, ok := c.Fields[p.key]; ok {
					events = append(events, event(EventPropertyChanged, c.ID, p.property))
				}
			}
			if _, ok := c.Fields["sel"]; ok {
				events = append(events, event(EventTextSelectionChanged, c.ID, ""))
			}
			if _, ok := c.Fields["c"]; ok {
				events = append(events, event(EventStructureChanged, c.ID, StructureChildrenReordered))
			}
			if platform.IsLiveChange(c, t) {
				events = append(events, event(EventLiveRegionChanged, c.ID, c.Label))
			}
		}
	}
	if res.RootMoved {
		events = append(events, event(EventStructureChanged, t.Root(), StructureChildrenInvalidated))
	}
	return events
}

func (translator) Focus(f platform.Focus, _ *tree.Tree) []platform.Event {
	if !f.OK {
		return nil
	}
	return []platform.Event{event(EventFocusChanged, f.ID, "")}
}

func event(name string, id model.NodeID, detail string) platform.Event {
	return platform.Event{Platform: platform.Windows, Name: name, Node: id, Detail: detail}
}
