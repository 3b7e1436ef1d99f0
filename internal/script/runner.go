package script

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mj1618/a11ybridge/internal/bridge"
	"github.com/mj1618/a11ybridge/internal/model"
	"github.com/mj1618/a11ybridge/internal/platform"
)

// Result is the output of a script run.
type Result struct {
	OK        bool             `yaml:"ok"                json:"ok"`
	Action    string           `yaml:"action"            json:"action"`
	Steps     int              `yaml:"steps"             json:"steps"`
	Completed int              `yaml:"completed"         json:"completed"`
	Error     string           `yaml:"error,omitempty"   json:"error,omitempty"`
	Results   []StepResult     `yaml:"results"           json:"results"`
	Live      int              `yaml:"live"              json:"live"`
	Vars      map[string]int64 `yaml:"vars,omitempty"    json:"vars,omitempty"`
}

// StepResult is the output for a single step.
type StepResult struct {
	Step     int                      `yaml:"step"               json:"step"`
	OK       bool                     `yaml:"ok"                 json:"ok"`
	Action   string                   `yaml:"action"             json:"action"`
	Error    string                   `yaml:"error,omitempty"    json:"error,omitempty"`
	Var      string                   `yaml:"var,omitempty"      json:"var,omitempty"`
	Handle   int64                    `yaml:"handle,omitempty"   json:"handle,omitempty"`
	Pulled   *bool                    `yaml:"pulled,omitempty"   json:"pulled,omitempty"`
	Events   []platform.Event         `yaml:"events,omitempty"   json:"events,omitempty"`
	Update   *model.UpdateView        `yaml:"update,omitempty"   json:"update,omitempty"`
	Node     *model.Element           `yaml:"node,omitempty"     json:"node,omitempty"`
	Adapter  *bridge.AdapterInfo      `yaml:"adapter,omitempty"  json:"adapter,omitempty"`
	Requests []platform.ActionRequest `yaml:"requests,omitempty" json:"requests,omitempty"`
}

type varKind int

const (
	kindNode varKind = iota
	kindUpdate
	kindAdapter
)

func (k varKind) String() string {
	switch k {
	case kindNode:
		return "node"
	case kindUpdate:
		return "update"
	default:
		return "adapter"
	}
}

type variable struct {
	handle   int64
	kind     varKind
	platform string
}

// Runner executes scripts against one bridge. Variables persist across Run
// calls, so a runner can be fed a script a step at a time.
type Runner struct {
	b        *bridge.Bridge
	rec      *platform.Recorder
	vars     map[string]variable
	platform string
	log      zerolog.Logger
}

// New creates a runner with its own bridge. Raised events are recorded for
// the step results and logged.
func New(defaultPlatform string, log zerolog.Logger) *Runner {
	rec := &platform.Recorder{}
	b := bridge.New(
		bridge.WithDispatcher(platform.MultiDispatcher{rec, platform.LogDispatcher{Logger: log}}),
		bridge.WithLogger(log),
	)
	return NewWithBridge(b, rec, defaultPlatform, log)
}

// NewWithBridge creates a runner on an existing bridge. rec must be among
// the bridge's dispatchers for step results to carry events.
func NewWithBridge(b *bridge.Bridge, rec *platform.Recorder, defaultPlatform string, log zerolog.Logger) *Runner {
	return &Runner{
		b:        b,
		rec:      rec,
		vars:     make(map[string]variable),
		platform: defaultPlatform,
		log:      log,
	}
}

// Bridge returns the bridge the runner drives.
func (r *Runner) Bridge() *bridge.Bridge { return r.b }

// Handle returns the handle bound to name.
func (r *Runner) Handle(name string) (int64, bool) {
	v, ok := r.vars[name]
	return v.handle, ok
}

// Vars returns every live variable and its handle.
func (r *Runner) Vars() map[string]int64 {
	out := make(map[string]int64, len(r.vars))
	for name, v := range r.vars {
		out[name] = v.handle
	}
	return out
}

// Run executes s step by step. A step that panics inside the bridge is
// reported as a failed step, not propagated.
func (r *Runner) Run(ctx context.Context, s *Script) Result {
	defaultPlatform := r.platform
	if s.Platform != "" {
		defaultPlatform = s.Platform
	}
	stopOnError := s.stopOnError()

	results := make([]StepResult, 0, len(s.Steps))
	completed := 0
	hasFailure := false
	var lastErr string

	for i, step := range s.Steps {
		stepNum := i + 1
		if err := ctx.Err(); err != nil {
			hasFailure = true
			lastErr = fmt.Sprintf("step %d: %v", stepNum, err)
			break
		}

		if len(step) != 1 {
			errMsg := fmt.Sprintf("step %d: expected exactly one call key, got %d", stepNum, len(step))
			results = append(results, StepResult{Step: stepNum, OK: false, Error: errMsg})
			hasFailure = true
			if stopOnError {
				lastErr = errMsg
				break
			}
			continue
		}

		for action, params := range step {
			if params == nil {
				params = map[string]interface{}{}
			}
			result, err := r.execute(action, params, defaultPlatform)
			result.Step = stepNum
			result.Action = action
			if err != nil {
				result.OK = false
				result.Error = err.Error()
				hasFailure = true
				r.log.Debug().Int("step", stepNum).Str("call", action).Err(err).Msg("step failed")
			} else {
				result.OK = true
				completed++
			}
			results = append(results, result)
			if err != nil && stopOnError {
				lastErr = fmt.Sprintf("step %d: %s", stepNum, err.Error())
			}
		}
		if lastErr != "" {
			break
		}
	}

	return Result{
		OK:        !hasFailure,
		Action:    "script",
		Steps:     len(s.Steps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
		Live:      r.b.Live(),
		Vars:      r.Vars(),
	}
}

// execute runs one call, collecting the events it raised. Bridge panics
// become errors.
func (r *Runner) execute(action string, params map[string]interface{}, defaultPlatform string) (result StepResult, err error) {
	before := len(r.rec.Events())
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = fmt.Errorf("contract violation: %w", perr)
			} else {
				err = fmt.Errorf("contract violation: %v", p)
			}
		}
		if evs := r.rec.Events(); len(evs) > before {
			result.Events = evs[before:]
		}
	}()
	return r.dispatch(action, params, defaultPlatform)
}

func (r *Runner) dispatch(action string, params map[string]interface{}, defaultPlatform string) (StepResult, error) {
	switch action {
	case "node-new":
		return r.nodeNew(params)
	case "node-set":
		return r.nodeSet(params)
	case "node-show":
		return r.nodeShow(params)
	case "node-drop":
		return r.nodeDrop(params)
	case "update-new":
		return r.updateNew(params)
	case "update-add":
		return r.updateAdd(params)
	case "update-set-tree":
		return r.updateSetTree(params)
	case "update-clear-tree":
		return r.updateClearTree(params)
	case "update-set-focus":
		return r.updateSetFocus(params)
	case "update-show":
		return r.updateShow(params)
	case "update-drop":
		return r.updateDrop(params)
	case "adapter-new":
		return r.adapterNew(params, defaultPlatform)
	case "adapter-activate":
		return r.adapterActivate(params)
	case "adapter-update":
		return r.adapterUpdate(params)
	case "adapter-focus":
		return r.adapterFocus(params)
	case "adapter-action":
		return r.adapterAction(params)
	case "adapter-actions":
		return r.adapterActions(params)
	case "adapter-show":
		return r.adapterShow(params)
	case "adapter-drop":
		return r.adapterDrop(params)
	default:
		return StepResult{}, fmt.Errorf("unknown call %q — supported: %s", action, supportedCalls)
	}
}

const supportedCalls = "node-new, node-set, node-show, node-drop, update-new, update-add, update-set-tree, " +
	"update-clear-tree, update-set-focus, update-show, update-drop, adapter-new, adapter-activate, " +
	"adapter-update, adapter-focus, adapter-action, adapter-actions, adapter-show, adapter-drop"

// freeName returns params["as"], refusing to shadow a live variable.
func (r *Runner) freeName(params map[string]interface{}) (string, error) {
	name := StringParam(params, "as", "")
	if name == "" {
		return "", errors.New("missing \"as\" name")
	}
	if old, ok := r.vars[name]; ok {
		return "", fmt.Errorf("%q already holds a live %s", name, old.kind)
	}
	return name, nil
}

// lookup resolves params[key] to a variable of the wanted kind.
func (r *Runner) lookup(params map[string]interface{}, key string, kind varKind) (string, variable, error) {
	name := StringParam(params, key, "")
	if name == "" {
		return "", variable{}, fmt.Errorf("missing %q", key)
	}
	v, ok := r.vars[name]
	if !ok {
		return "", variable{}, fmt.Errorf("no live variable %q", name)
	}
	if v.kind != kind {
		return "", variable{}, fmt.Errorf("%q is a %s, not a %s", name, v.kind, kind)
	}
	return name, v, nil
}

func (r *Runner) nodeNew(params map[string]interface{}) (StepResult, error) {
	name, err := r.freeName(params)
	if err != nil {
		return StepResult{}, err
	}
	if !HasParam(params, "role") {
		return StepResult{}, errors.New("missing \"role\"")
	}
	role, err := enumCode(params["role"], parseRole)
	if err != nil {
		return StepResult{}, fmt.Errorf("role: %w", err)
	}

	h := r.b.NodeNew(role)
	r.vars[name] = variable{handle: h, kind: kindNode}
	return StepResult{Var: name, Handle: h}, r.applyFields(h, params, "as", "role")
}

// applyFields applies every node field in params, in name order, skipping
// the given non-field keys.
func (r *Runner) applyFields(h int64, params map[string]interface{}, skip ...string) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if contains(skip, k) {
			continue
		}
		if err := SetField(r.b, h, k, params[k]); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// nodeSet accepts either {node, field, value} or {node, <field>: value, ...}.
func (r *Runner) nodeSet(params map[string]interface{}) (StepResult, error) {
	name, v, err := r.lookup(params, "node", kindNode)
	if err != nil {
		return StepResult{}, err
	}
	if field := StringParam(params, "field", ""); field != "" {
		if !HasParam(params, "value") {
			return StepResult{Var: name}, errors.New("missing \"value\"")
		}
		return StepResult{Var: name, Handle: v.handle}, SetField(r.b, v.handle, field, params["value"])
	}
	return StepResult{Var: name, Handle: v.handle}, r.applyFields(v.handle, params, "node")
}

func (r *Runner) nodeShow(params map[string]interface{}) (StepResult, error) {
	name, v, err := r.lookup(params, "node", kindNode)
	if err != nil {
		return StepResult{}, err
	}
	el := r.b.NodeView(v.handle)
	return StepResult{Var: name, Handle: v.handle, Node: &el}, nil
}

func (r *Runner) nodeDrop(params map[string]interface{}) (StepResult, error) {
	name, v, err := r.lookup(params, "node", kindNode)
	if err != nil {
		return StepResult{}, err
	}
	delete(r.vars, name)
	r.b.NodeDrop(v.handle)
	return StepResult{Var: name, Handle: v.handle}, nil
}

func (r *Runner) updateNew(params map[string]interface{}) (StepResult, error) {
	name, err := r.freeName(params)
	if err != nil {
		return StepResult{}, err
	}
	h := r.b.TreeUpdateWithFocus(Int64Param(params, "focus", 0))
	r.vars[name] = variable{handle: h, kind: kindUpdate}
	if HasParam(params, "root") {
		r.b.TreeUpdateSetTree(h, Int64Param(params, "root", 0))
	}
	return StepResult{Var: name, Handle: h}, nil
}

// updateAdd moves the node variable into the update. The node variable is
// gone afterwards, just as its handle is.
func (r *Runner) updateAdd(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	nodeName, n, err := r.lookup(params, "node", kindNode)
	if err != nil {
		return StepResult{}, err
	}
	if !HasParam(params, "id") {
		return StepResult{}, errors.New("missing \"id\"")
	}
	delete(r.vars, nodeName)
	r.b.TreeUpdateAddNode(u.handle, Int64Param(params, "id", 0), n.handle)
	return StepResult{Var: name, Handle: u.handle}, nil
}

func (r *Runner) updateSetTree(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	if !HasParam(params, "root") {
		return StepResult{}, errors.New("missing \"root\"")
	}
	r.b.TreeUpdateSetTree(u.handle, Int64Param(params, "root", 0))
	return StepResult{Var: name, Handle: u.handle}, nil
}

func (r *Runner) updateClearTree(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	r.b.TreeUpdateClearTree(u.handle)
	return StepResult{Var: name, Handle: u.handle}, nil
}

func (r *Runner) updateSetFocus(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	if !HasParam(params, "focus") {
		return StepResult{}, errors.New("missing \"focus\"")
	}
	r.b.TreeUpdateSetFocus(u.handle, Int64Param(params, "focus", 0))
	return StepResult{Var: name, Handle: u.handle}, nil
}

func (r *Runner) updateShow(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	view := r.b.TreeUpdateView(u.handle)
	return StepResult{Var: name, Handle: u.handle, Update: &view}, nil
}

func (r *Runner) updateDrop(params map[string]interface{}) (StepResult, error) {
	name, u, err := r.lookup(params, "update", kindUpdate)
	if err != nil {
		return StepResult{}, err
	}
	delete(r.vars, name)
	r.b.TreeUpdateDrop(u.handle)
	return StepResult{Var: name, Handle: u.handle}, nil
}

// takeUpdate returns a supplier that hands over the named update variable
// on first use, or 0 when it is not bound at that moment. called reports
// whether the supplier ran.
func (r *Runner) takeUpdate(name string, called *bool) bridge.Supplier {
	return bridge.SupplierFunc(func() int64 {
		if called != nil {
			*called = true
		}
		v, ok := r.vars[name]
		if !ok || v.kind != kindUpdate {
			return 0
		}
		delete(r.vars, name)
		return v.handle
	})
}

func (r *Runner) adapterNew(params map[string]interface{}, defaultPlatform string) (StepResult, error) {
	name, err := r.freeName(params)
	if err != nil {
		return StepResult{}, err
	}
	p := StringParam(params, "platform", defaultPlatform)
	native := Int64Param(params, "native", 0)
	initial := r.takeUpdate(StringParam(params, "initial", ""), nil)

	var h int64
	if p == platform.MacOS && BoolParam(params, "window", false) {
		h = r.b.MacosAdapterForWindow(native, initial)
	} else if h, err = r.b.AdapterNew(p, native, initial); err != nil {
		return StepResult{}, err
	}
	r.vars[name] = variable{handle: h, kind: kindAdapter, platform: p}
	return StepResult{Var: name, Handle: h}, nil
}

func (r *Runner) adapterActivate(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	if a.platform == platform.Windows {
		r.b.WindowsAdapterActivate(a.handle)
	} else {
		r.b.MacosAdapterActivate(a.handle)
	}
	info := r.b.AdapterInfo(a.handle)
	info.Nodes = nil
	return StepResult{Var: name, Handle: a.handle, Adapter: &info}, nil
}

// adapterUpdate offers the named update to the adapter. If the adapter is
// inactive the update is never pulled and stays bound.
func (r *Runner) adapterUpdate(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	updateName := StringParam(params, "update", "")
	if updateName == "" {
		return StepResult{}, errors.New("missing \"update\"")
	}
	pulled := false
	supplier := r.takeUpdate(updateName, &pulled)
	if a.platform == platform.Windows {
		r.b.WindowsAdapterUpdateIfActive(a.handle, supplier)
	} else {
		r.b.MacosAdapterUpdateIfActive(a.handle, supplier)
	}
	return StepResult{Var: name, Handle: a.handle, Pulled: &pulled}, nil
}

func (r *Runner) adapterFocus(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	focused := BoolParam(params, "focused", true)
	if a.platform == platform.Windows {
		r.b.WindowsAdapterUpdateViewFocusState(a.handle, focused)
	} else {
		r.b.MacosAdapterUpdateViewFocusState(a.handle, focused)
	}
	return StepResult{Var: name, Handle: a.handle}, nil
}

func (r *Runner) adapterAction(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	code, err := enumCode(params["action"], parseAction)
	if err != nil {
		return StepResult{Var: name}, fmt.Errorf("action: %w", err)
	}
	if !HasParam(params, "target") {
		return StepResult{Var: name}, errors.New("missing \"target\"")
	}
	return StepResult{Var: name, Handle: a.handle}, r.b.AdapterPerformAction(a.handle, code, Int64Param(params, "target", 0))
}

func (r *Runner) adapterActions(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	var reqs []platform.ActionRequest
	if a.platform == platform.Windows {
		reqs = r.b.WindowsAdapterTakeActionRequests(a.handle)
	} else {
		reqs = r.b.MacosAdapterTakeActionRequests(a.handle)
	}
	return StepResult{Var: name, Handle: a.handle, Requests: reqs}, nil
}

func (r *Runner) adapterShow(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	info := r.b.AdapterInfo(a.handle)
	return StepResult{Var: name, Handle: a.handle, Adapter: &info}, nil
}

func (r *Runner) adapterDrop(params map[string]interface{}) (StepResult, error) {
	name, a, err := r.lookup(params, "adapter", kindAdapter)
	if err != nil {
		return StepResult{}, err
	}
	delete(r.vars, name)
	if a.platform == platform.Windows {
		r.b.WindowsAdapterDrop(a.handle)
	} else {
		r.b.MacosAdapterDrop(a.handle)
	}
	return StepResult{Var: name, Handle: a.handle}, nil
}

// Elements returns what a variable currently describes: the node on its
// own, the nodes of an update, or the live tree of an adapter.
func (r *Runner) Elements(name string) ([]model.Element, error) {
	v, ok := r.vars[name]
	if !ok {
		return nil, fmt.Errorf("no live variable %q", name)
	}
	switch v.kind {
	case kindNode:
		return []model.Element{r.b.NodeView(v.handle)}, nil
	case kindUpdate:
		return r.b.TreeUpdateView(v.handle).Nodes, nil
	default:
		return r.b.AdapterInfo(v.handle).Nodes, nil
	}
}

// UpdateViews returns the view of every update variable still held by the
// script, keyed by variable name.
func (r *Runner) UpdateViews() map[string]model.UpdateView {
	out := make(map[string]model.UpdateView)
	for name, v := range r.vars {
		if v.kind == kindUpdate {
			out[name] = r.b.TreeUpdateView(v.handle)
		}
	}
	return out
}
