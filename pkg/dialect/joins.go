package dialect

import "github.com/leapstack-labs/sqlcompiler/pkg/core"

// JoinTypeDef maps a join type to the keywords a dialect renders for it.
type JoinTypeDef struct {
	Type    core.JoinType
	Keyword string
}

// ANSIJoinTypes contains standard SQL join types.
var ANSIJoinTypes = []JoinTypeDef{
	{Type: core.JoinInner, Keyword: "JOIN"},
	{Type: core.JoinLeft, Keyword: "LEFT OUTER JOIN"},
	{Type: core.JoinRight, Keyword: "RIGHT OUTER JOIN"},
	{Type: core.JoinFull, Keyword: "FULL OUTER JOIN"},
	{Type: core.JoinCross, Keyword: "CROSS JOIN"},
}

// JoinTypesWithout returns ANSIJoinTypes minus the given types.
func JoinTypesWithout(excluded ...core.JoinType) []JoinTypeDef {
	skip := make(map[core.JoinType]bool, len(excluded))
	for _, t := range excluded {
		skip[t] = true
	}
	var defs []JoinTypeDef
	for _, def := range ANSIJoinTypes {
		if !skip[def.Type] {
			defs = append(defs, def)
		}
	}
	return defs
}
