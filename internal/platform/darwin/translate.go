package darwin

import (
	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/platform"
	"github.com/mj1618/a11ybridge/internal/tree"
)

// NSAccessibility notification names.
const (
	NotificationCreated             = "AXCreated"
	NotificationDestroyed           = "AXUIElementDestroyed"
	NotificationTitleChanged        = "AXTitleChanged"
	NotificationValueChanged        = "AXValueChanged"
	NotificationMoved               = "AXMoved"
	NotificationSelectedTextChanged = "AXSelectedTextChanged"
	NotificationLayoutChanged       = "AXLayoutChanged"
	NotificationFocusChanged        = "AXFocusedUIElementChanged"
	NotificationAnnouncement        = "AXAnnouncementRequested"
)

// fieldNotifications maps changed element keys to notifications, in the
// order they are posted.
var fieldNotifications = []struct {
	key  string
	name string
}{
	{"t", NotificationTitleChanged},
	{"d", NotificationTitleChanged},
	{"v", NotificationValueChanged},
	{"n", NotificationValueChanged},
	{"tg", NotificationValueChanged},
	{"b", NotificationMoved},
	{"sel", NotificationSelectedTextChanged},
	{"c", NotificationLayoutChanged},
}

type translator struct{}

func (translator) Platform() string { return platform.MacOS }

func (translator) Initial(t *tree.Tree) []platform.Event {
	return []platform.Event{event(NotificationLayoutChanged, t.Root(), "initial tree")}
}

func (translator) Changes(res tree.Result, t *tree.Tree) []platform.Event {
	var events []platform.Event
	for _, c := range res.Changes {
		switch c.Type {
		case model.ChangeAdded:
			events = append(events, event(NotificationCreated, c.ID, c.Role.String()))
		case model.ChangeRemoved:
			events = append(events, event(NotificationDestroyed, c.ID, c.Role.String()))
		case model.ChangeChanged:
			posted := make(map[string]bool)
			for _, fn := range fieldNotifications {
				if _, ok := c.Fields[fn.key]; !ok || posted[fn.name] {
					continue
				}
				posted[fn.name] = true
				events = append(events, event(fn.name, c.ID, fn.key))
			}
			if platform.IsLiveChange(c, t) {
				events = append(events, event(NotificationAnnouncement, c.ID, c.Label))
			}
		}
	}
	if res.RootMoved {
		events = append(events, event(NotificationLayoutChanged, t.Root(), "root"))
	}
	return events
}

func (translator) Focus(f platform.Focus, _ *tree.Tree) []platform.Event {
	if !f.OK {
		return nil
	}
	return []platform.Event{event(NotificationFocusChanged, f.ID, "")}
}

func event(name string, id model.NodeID, detail string) platform.Event {
	return platform.Event{Platform: platform.MacOS, Name: name, Node: id, Detail: detail}
}
