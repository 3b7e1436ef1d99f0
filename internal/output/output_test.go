package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11ybridge/internal/model"
)

func sampleView() model.UpdateView {
	root := model.NodeID(1)
	return model.UpdateView{
		Root:  &root,
		Focus: 1,
		Nodes: []model.Element{
			{ID: 1, Role: "btn", RoleName: "button", Label: "OK", Actions: []string{"click"}, Bounds: &[4]float64{10, 20, 100, 30}},
		},
	}
}

// capture points Stdout at a buffer for the duration of fn.
func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := Stdout
	var buf bytes.Buffer
	Stdout = &buf
	defer func() { Stdout = old }()
	if err := fn(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrintJSON_Compact(t *testing.T) {
	out := capture(t, func() error { return PrintJSON(sampleView(), false) })

	if strings.Count(out, "\n") > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded model.UpdateView
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Nodes) != 1 || decoded.Nodes[0].Label != "OK" {
		t.Errorf("nodes = %+v", decoded.Nodes)
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	out := capture(t, func() error { return PrintJSON(sampleView(), true) })
	if strings.Count(out, "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
}

func TestPrintYAML(t *testing.T) {
	out := capture(t, func() error { return PrintYAML(sampleView()) })

	var decoded model.UpdateView
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Root == nil || *decoded.Root != 1 {
		t.Errorf("root = %v", decoded.Root)
	}
	if !strings.Contains(out, "t: OK") {
		t.Errorf("expected short label key in:\n%s", out)
	}
}

func TestPrint_UsesFormat(t *testing.T) {
	old := OutputFormat
	defer func() { OutputFormat = old }()

	OutputFormat = FormatJSON
	out := capture(t, func() error { return Print(map[string]int{"a": 1}) })
	if strings.TrimSpace(out) != `{"a":1}` {
		t.Errorf("json = %q", out)
	}

	OutputFormat = FormatYAML
	out = capture(t, func() error { return Print(map[string]int{"a": 1}) })
	if strings.TrimSpace(out) != "a: 1" {
		t.Errorf("yaml = %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("json: %v %v", f, err)
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("expected error for agent")
	}
}

func TestMarshal(t *testing.T) {
	s, err := Marshal(FormatYAML, map[string]string{"k": "v"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(s) != "k: v" {
		t.Errorf("got %q", s)
	}
}

func TestCodeTables(t *testing.T) {
	all := CodeTables()
	if len(all) != 5 || all[0].Kind != "action" {
		t.Fatalf("tables = %d, first %q", len(all), all[0].Kind)
	}
	roles := CodeTables("role", "nope")
	if len(roles) != 1 || roles[0].Entries[int(model.RoleButton)].Name != "button" {
		t.Errorf("role table = %+v", roles)
	}
}
