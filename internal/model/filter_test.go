package model

import "testing"

func bounds(x0, y0, x1, y1 float64) *[4]float64 {
	return &[4]float64{x0, y0, x1, y1}
}

func TestFilterElements_NoFilters(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: bounds(0, 0, 100, 30)},
		{ID: 2, Role: "txt", Bounds: bounds(0, 30, 100, 50)},
	}
	result := FilterElements(elements, nil, nil)
	if len(result) != 2 {
		t.Errorf("expected 2 elements, got %d", len(result))
	}
}

func TestFilterElements_RoleFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", RoleName: "button"},
		{ID: 2, Role: "txt", RoleName: "textInput"},
		{ID: 3, Role: "lnk", RoleName: "link"},
	}
	result := FilterElements(elements, []string{"btn", "link"}, nil)
	if len(result) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(result))
	}
	if result[0].ID != 1 || result[1].ID != 3 {
		t.Errorf("unexpected ids: %d, %d", result[0].ID, result[1].ID)
	}
}

func TestFilterElements_BBoxFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "btn", Bounds: bounds(10, 10, 60, 40)},     // inside
		{ID: 2, Role: "btn", Bounds: bounds(200, 200, 250, 230)}, // outside
		{ID: 3, Role: "btn", Bounds: bounds(90, 90, 140, 120)},   // overlaps
		{ID: 4, Role: "btn"},                                     // no bounds
	}
	result := FilterElements(elements, nil, bounds(0, 0, 100, 100))
	if len(result) != 2 {
		t.Fatalf("expected 2 elements (inside + overlapping), got %d", len(result))
	}
	if result[0].ID != 1 || result[1].ID != 3 {
		t.Errorf("unexpected ids: %d, %d", result[0].ID, result[1].ID)
	}
}

func TestFilterByText(t *testing.T) {
	elements := []Element{
		{ID: 1, Label: "Submit"},
		{ID: 2, Value: "submitted form"},
		{ID: 3, Description: "Cancel"},
	}
	result := FilterByText(elements, "SUBMIT")
	if len(result) != 2 || result[0].ID != 1 || result[1].ID != 2 {
		t.Errorf("FilterByText = %+v", result)
	}
	if got := FilterByText(elements, ""); len(got) != 3 {
		t.Errorf("empty text should keep everything, got %d", len(got))
	}
}

func TestPruneEmptyGroups(t *testing.T) {
	elements := []Element{
		{ID: 1, Role: "group"},
		{ID: 2, Role: "group", Label: "Toolbar"},
		{ID: 3, Role: "other"},
		{ID: 4, Role: "btn"},
	}
	result := PruneEmptyGroups(elements)
	if len(result) != 2 || result[0].ID != 2 || result[1].ID != 4 {
		t.Errorf("PruneEmptyGroups = %+v", result)
	}
}

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b [4]float64
		want bool
	}{
		{"overlapping", [4]float64{0, 0, 100, 100}, [4]float64{50, 50, 150, 150}, true},
		{"adjacent_no_overlap", [4]float64{0, 0, 100, 100}, [4]float64{100, 0, 200, 100}, false},
		{"contained", [4]float64{0, 0, 200, 200}, [4]float64{50, 50, 60, 60}, true},
		{"no_overlap", [4]float64{0, 0, 10, 10}, [4]float64{20, 20, 30, 30}, false},
		{"reversed_corners", [4]float64{100, 100, 0, 0}, [4]float64{50, 50, 60, 60}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boundsIntersect(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("boundsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseBBox(t *testing.T) {
	b, err := ParseBBox(" 0, 5.5,100 ,40")
	if err != nil {
		t.Fatalf("ParseBBox: %v", err)
	}
	if *b != [4]float64{0, 5.5, 100, 40} {
		t.Errorf("bbox = %v", *b)
	}
	if b, err := ParseBBox(""); b != nil || err != nil {
		t.Errorf("empty = %v, %v", b, err)
	}
	for _, bad := range []string{"1,2,3", "1,2,3,x", "1,2,3,4,5"} {
		if _, err := ParseBBox(bad); err == nil {
			t.Errorf("ParseBBox(%q) should fail", bad)
		}
	}
}
