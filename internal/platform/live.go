package platform

import (
	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/tree"
)

// IsLiveChange reports whether c changed the label or value of a node that
// is a polite or assertive live region.
func IsLiveChange(c model.Change, t *tree.Tree) bool {
	if c.Type != model.ChangeChanged {
		return false
	}
	n, ok := t.Node(c.ID)
	if !ok {
		return false
	}
	live, ok := n.Live()
	if !ok || live == model.LiveOff {
		return false
	}
	_, label := c.Fields["t"]
	_, value := c.Fields["v"]
	return label || value
}
