package model

// Element is the serializable view of one (id, node) pair. Keys are kept
// short because batches are printed for agents and diffed by humans.
type Element struct {
	ID               NodeID       `yaml:"i"             json:"i"`
	Role             string       `yaml:"r"             json:"r"`    // Compact role code
	RoleName         string       `yaml:"role"          json:"role"` // Wire role name
	Label            string       `yaml:"t,omitempty"   json:"t,omitempty"`
	Description      string       `yaml:"d,omitempty"   json:"d,omitempty"`
	Value            string       `yaml:"v,omitempty"   json:"v,omitempty"`
	AccessKey        string       `yaml:"ak,omitempty"  json:"ak,omitempty"`
	KeyboardShortcut string       `yaml:"ks,omitempty"  json:"ks,omitempty"`
	Bounds           *[4]float64  `yaml:"b,omitempty"   json:"b,omitempty"` // [x0, y0, x1, y1]
	Actions          []string     `yaml:"a,omitempty"   json:"a,omitempty"`
	Children         []NodeID     `yaml:"c,omitempty"   json:"c,omitempty"`
	Toggled          string       `yaml:"tg,omitempty"  json:"tg,omitempty"`
	Live             string       `yaml:"lv,omitempty"  json:"lv,omitempty"`
	TextDirection    string       `yaml:"dir,omitempty" json:"dir,omitempty"`
	Numeric          *NumericView `yaml:"n,omitempty"   json:"n,omitempty"`
	Selection        *[4]uint64   `yaml:"sel,omitempty" json:"sel,omitempty"` // [anchor node, anchor index, focus node, focus index]
	TextLayout       *LayoutView  `yaml:"tl,omitempty"  json:"tl,omitempty"`
	PositionInSet    int          `yaml:"pos,omitempty" json:"pos,omitempty"`
	SizeOfSet        int          `yaml:"set,omitempty" json:"set,omitempty"`
	Focused          bool         `yaml:"f,omitempty"   json:"f,omitempty"`
	Path             string       `yaml:"p,omitempty"   json:"p,omitempty"`
}

// NumericView holds the numeric range attributes that were set.
type NumericView struct {
	Value *float64 `yaml:"v,omitempty"    json:"v,omitempty"`
	Min   *float64 `yaml:"min,omitempty"  json:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"  json:"max,omitempty"`
	Step  *float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Jump  *float64 `yaml:"jump,omitempty" json:"jump,omitempty"`
}

// LayoutView holds the per-character and per-word layout arrays.
type LayoutView struct {
	CharacterLengths   []int     `yaml:"cl,omitempty" json:"cl,omitempty"`
	WordLengths        []int     `yaml:"wl,omitempty" json:"wl,omitempty"`
	CharacterPositions []float32 `yaml:"cp,omitempty" json:"cp,omitempty"`
	CharacterWidths    []float32 `yaml:"cw,omitempty" json:"cw,omitempty"`
}

// UpdateView is the serializable view of a whole tree update.
type UpdateView struct {
	Root  *NodeID   `yaml:"root,omitempty" json:"root,omitempty"`
	Focus NodeID    `yaml:"focus"          json:"focus"`
	Nodes []Element `yaml:"nodes"          json:"nodes"`
}

// NewElement builds the view of one node.
func NewElement(id NodeID, n *Node) Element {
	el := Element{
		ID:       id,
		Role:     n.Role().Short(),
		RoleName: n.Role().String(),
		Actions:  n.Actions().Names(),
		Children: n.Children(),
	}
	el.Label, _ = n.Label()
	el.Description, _ = n.Description()
	el.Value, _ = n.Value()
	el.AccessKey, _ = n.AccessKey()
	el.KeyboardShortcut, _ = n.KeyboardShortcut()
	if b, ok := n.Bounds(); ok {
		el.Bounds = &[4]float64{b.X0, b.Y0, b.X1, b.Y1}
	}
	if v, ok := n.Toggled(); ok {
		el.Toggled = v.String()
	}
	if v, ok := n.Live(); ok {
		el.Live = v.String()
	}
	if v, ok := n.TextDirection(); ok {
		el.TextDirection = v.String()
	}
	el.Numeric = numericView(n)
	if s, ok := n.TextSelection(); ok {
		el.Selection = &[4]uint64{
			uint64(s.Anchor.Node), uint64(s.Anchor.CharacterIndex),
			uint64(s.Focus.Node), uint64(s.Focus.CharacterIndex),
		}
	}
	el.TextLayout = layoutView(n)
	el.PositionInSet, _ = n.PositionInSet()
	el.SizeOfSet, _ = n.SizeOfSet()
	return el
}

func numericView(n *Node) *NumericView {
	var v NumericView
	set := false
	for _, f := range []struct {
		dst **float64
		get func() (float64, bool)
	}{
		{&v.Value, n.NumericValue},
		{&v.Min, n.MinNumericValue},
		{&v.Max, n.MaxNumericValue},
		{&v.Step, n.NumericValueStep},
		{&v.Jump, n.NumericValueJump},
	} {
		if x, ok := f.get(); ok {
			*f.dst = ptr(x)
			set = true
		}
	}
	if !set {
		return nil
	}
	return &v
}

func layoutView(n *Node) *LayoutView {
	l := LayoutView{
		CharacterLengths:   bytesToInts(n.CharacterLengths()),
		WordLengths:        bytesToInts(n.WordLengths()),
		CharacterPositions: n.CharacterPositions(),
		CharacterWidths:    n.CharacterWidths(),
	}
	if l.CharacterLengths == nil && l.WordLengths == nil && l.CharacterPositions == nil && l.CharacterWidths == nil {
		return nil
	}
	return &l
}

func bytesToInts(b []byte) []int {
	if b == nil {
		return nil
	}
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

// DescribeUpdate builds the view of u, marking the focused node and giving
// each node its role path from the declared root when one is reachable.
func DescribeUpdate(u *TreeUpdate) UpdateView {
	view := UpdateView{Focus: u.Focus, Nodes: make([]Element, 0, len(u.Nodes))}
	var paths map[NodeID]string
	if u.Tree != nil {
		root := u.Tree.Root
		view.Root = &root
		paths = RolePaths(u)
	}
	for _, e := range u.Nodes {
		el := NewElement(e.ID, e.Node)
		el.Focused = e.ID == u.Focus
		el.Path = paths[e.ID]
		view.Nodes = append(view.Nodes, el)
	}
	return view
}
