package content

import (
	"fmt"

	"starlint/internal/check"
	"starlint/internal/issue"
)

// LoadResources validates the resource catalog and returns the set of
// declared resource ids. Entries with shape violations still contribute
// their id, so downstream cost/production maps are checked against every
// declared key rather than cascading unresolved-reference noise.
func LoadResources(s *issue.Sink, path string) IDSet {
	ids := IDSet{}

	top, ok := loadRoot(s, path)
	if !ok {
		return ids
	}

	check.IntAtLeast(s, path, issue.Path{}.Key("version"), top.Member("version"), "version", 1)

	resources := check.Object(s, path, issue.Path{}.Key("resources"), top.Member("resources"), "resources")
	if resources == nil {
		return ids
	}

	for _, rid := range resources.Keys() {
		ids[rid] = struct{}{}
		at := issue.Path{}.Key("resources").Key(rid)
		if rid == "" {
			s.Record(path, at, "resource id must be a non-empty string")
			continue
		}
		entry := check.Object(s, path, at, resources.Member(rid), fmt.Sprintf("resource '%s'", rid))
		if entry == nil {
			continue
		}
		check.String(s, path, at.Key("name"), entry.Member("name"), "name")
		check.String(s, path, at.Key("category"), entry.Member("category"), "category")
		check.Bool(s, path, at.Key("mineable"), entry.Member("mineable"), "mineable")
		check.NumberAtLeast(s, path, at.Key("salvage_research_rp_per_ton"),
			entry.Member("salvage_research_rp_per_ton"), "salvage_research_rp_per_ton", 0)
	}

	return ids
}
