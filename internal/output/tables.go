package output

import (
	"sort"

	"github.com/mj1618/a11ybridge/internal/model"
)

// CodeTable is one enumeration table as printed by the roles and actions
// commands.
type CodeTable struct {
	Kind    string            `yaml:"kind"    json:"kind"`
	Entries []model.CodeEntry `yaml:"entries" json:"entries"`
}

// CodeTables returns the named tables, or all of them sorted by kind when
// kinds is empty.
func CodeTables(kinds ...string) []CodeTable {
	all := model.CodeTables()
	if len(kinds) == 0 {
		for k := range all {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
	}
	out := make([]CodeTable, 0, len(kinds))
	for _, k := range kinds {
		if entries, ok := all[k]; ok {
			out = append(out, CodeTable{Kind: k, Entries: entries})
		}
	}
	return out
}
