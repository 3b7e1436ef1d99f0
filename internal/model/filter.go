package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterElements keeps the elements whose role is in roles and whose bounds
// intersect bbox. A role matches either the compact code or the wire name.
// An element without bounds never matches a bbox. Child lists are left as
// they are, so they may name ids that were filtered out.
func FilterElements(elements []Element, roles []string, bbox *[4]float64) []Element {
	if len(roles) == 0 && bbox == nil {
		return elements
	}

	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	var result []Element
	for _, el := range elements {
		roleMatch := len(roleSet) == 0 || roleSet[el.Role] || roleSet[el.RoleName]
		bboxMatch := bbox == nil || (el.Bounds != nil && boundsIntersect(*el.Bounds, *bbox))
		if roleMatch && bboxMatch {
			result = append(result, el)
		}
	}
	return result
}

// ParseBBox parses a "x0,y0,x1,y1" string into a bbox for FilterElements.
// An empty string means no bbox.
func ParseBBox(s string) (*[4]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x0,y0,x1,y1", s)
	}
	var b [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		b[i] = v
	}
	return &b, nil
}

// FilterByText keeps the elements whose label, value or description
// contains text, ignoring case.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		if textMatchesElement(el, textLower) {
			result = append(result, el)
		}
	}
	return result
}

func textMatchesElement(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Label), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.Description), textLower)
}

// isEmptyGroup returns true if the element is an anonymous group/other
// node with no label, value or description.
func isEmptyGroup(el Element) bool {
	return (el.Role == "group" || el.Role == "other") &&
		el.Label == "" && el.Value == "" && el.Description == ""
}

// PruneEmptyGroups removes anonymous group/other elements. The path
// breadcrumbs of the remaining elements are not modified.
func PruneEmptyGroups(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		if isEmptyGroup(el) {
			continue
		}
		result = append(result, el)
	}
	return result
}

// boundsIntersect checks if two [x0, y0, x1, y1] rectangles overlap.
func boundsIntersect(a, b [4]float64) bool {
	ax0, ax1 := min(a[0], a[2]), max(a[0], a[2])
	ay0, ay1 := min(a[1], a[3]), max(a[1], a[3])
	bx0, bx1 := min(b[0], b[2]), max(b[0], b[2])
	by0, by1 := min(b[1], b[3]), max(b[1], b[3])
	return ax0 < bx1 && ax1 > bx0 && ay0 < by1 && ay1 > by0
}
