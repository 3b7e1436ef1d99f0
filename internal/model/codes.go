package model

import "fmt"

// CodeError reports an enumeration code outside its table.
type CodeError struct {
	Kind string
	Code int
	Max  int
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("invalid %s code %d (valid: 0-%d)", e.Kind, e.Code, e.Max)
}

// CodeEntry is one row of an enumeration code table, as published to callers.
type CodeEntry struct {
	Code  int    `yaml:"code"            json:"code"`
	Name  string `yaml:"name"            json:"name"`
	Short string `yaml:"short,omitempty" json:"short,omitempty"`
}

// CodeTables returns every enumeration table keyed by kind.
func CodeTables() map[string][]CodeEntry {
	roles := make([]CodeEntry, RoleCount)
	for i := range roles {
		r := Role(i)
		roles[i] = CodeEntry{Code: i, Name: r.String(), Short: r.Short()}
	}
	return map[string][]CodeEntry{
		"role":          roles,
		"action":        namedEntries(actionNames[:]),
		"toggled":       namedEntries(toggledNames[:]),
		"live":          namedEntries(liveNames[:]),
		"textDirection": namedEntries(textDirectionNames[:]),
	}
}

func namedEntries(names []string) []CodeEntry {
	out := make([]CodeEntry, len(names))
	for i, n := range names {
		out[i] = CodeEntry{Code: i, Name: n}
	}
	return out
}

func lookupName(kind string, names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, name)
}
