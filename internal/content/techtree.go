package content

import (
	"strings"

	"starlint/internal/check"
	"starlint/internal/issue"
	"starlint/internal/jsondoc"
)

var effectTypes = map[string]struct{}{
	"unlock_component":     {},
	"unlock_installation":  {},
	"faction_output_bonus": {},
}

var outputBonusKeys = map[string]struct{}{
	"all":            {},
	"construction":   {},
	"industry":       {},
	"mining":         {},
	"research":       {},
	"shipyard":       {},
	"terraforming":   {},
	"troop_training": {},
}

// tech is the retained view of one valid technology entry: its original
// document index (for pointer construction) and its raw prerequisite slots.
type tech struct {
	index   int
	prereqs []*jsondoc.Value
}

// LoadTechTree validates the technology document: per-tech schema, effect
// payload resolution against the blueprint id sets, prerequisite reference
// integrity, and prerequisite-graph cycle detection.
func LoadTechTree(s *issue.Sink, path string, componentIDs, installationIDs IDSet) {
	top, ok := loadRoot(s, path)
	if !ok {
		return
	}

	check.IntAtLeast(s, path, issue.Path{}.Key("version"), top.Member("version"), "version", 1)

	techs, ok := check.Array(s, path, issue.Path{}.Key("techs"), top.Member("techs"), "techs")
	if !ok {
		return
	}

	byID := map[string]*tech{}
	var order []string

	for i, tv := range techs {
		at := issue.Path{}.Key("techs").Index(i)
		t := check.Object(s, path, at, tv, "tech")
		if t == nil {
			continue
		}
		tid, ok := check.String(s, path, at.Key("id"), t.Member("id"), "id")
		if !ok {
			continue
		}
		if _, dup := byID[tid]; dup {
			// A duplicated id makes effect addressing ambiguous, so the
			// rest of this entry is skipped.
			s.Recordf(path, at.Key("id"), "duplicate tech id '%s'", tid)
			continue
		}

		rec := &tech{index: i}
		byID[tid] = rec
		order = append(order, tid)

		check.String(s, path, at.Key("name"), t.Member("name"), "name")
		check.IntAtLeast(s, path, at.Key("cost"), t.Member("cost"), "cost", 0)

		if prereqs, ok := check.Array(s, path, at.Key("prereqs"), t.Member("prereqs"), "prereqs"); ok {
			rec.prereqs = prereqs
			for j, pv := range prereqs {
				check.String(s, path, at.Key("prereqs").Index(j), pv, "prereq")
			}
		}

		checkEffects(s, path, at, t, componentIDs, installationIDs)
	}

	// Reference pass: every prereq must name an existing tech.
	for _, tid := range order {
		rec := byID[tid]
		for j, pv := range rec.prereqs {
			if pv.Kind() != jsondoc.String {
				continue
			}
			pre := pv.Str()
			if _, ok := byID[pre]; !ok {
				at := issue.Path{}.Key("techs").Index(rec.index).Key("prereqs").Index(j)
				s.Recordf(path, at, "unknown prereq tech '%s'", pre)
			}
		}
	}

	detectCycles(s, path, byID, order)
}

func checkEffects(s *issue.Sink, path string, at issue.Path, t *jsondoc.Value, componentIDs, installationIDs IDSet) {
	effects, ok := check.Array(s, path, at.Key("effects"), t.Member("effects"), "effects")
	if !ok {
		return
	}
	for j, ev := range effects {
		eat := at.Key("effects").Index(j)
		e := check.Object(s, path, eat, ev, "effect")
		if e == nil {
			continue
		}
		etype, ok := check.String(s, path, eat.Key("type"), e.Member("type"), "type")
		if !ok {
			continue
		}
		if _, known := effectTypes[etype]; !known {
			s.Recordf(path, eat.Key("type"), "unknown effect type '%s'", etype)
			continue
		}

		switch etype {
		case "unlock_component", "unlock_installation":
			val, ok := check.String(s, path, eat.Key("value"), e.Member("value"), "value")
			if !ok {
				continue
			}
			if etype == "unlock_component" && !componentIDs.Has(val) {
				s.Recordf(path, eat.Key("value"), "unknown component '%s'", val)
			}
			if etype == "unlock_installation" && !installationIDs.Has(val) {
				s.Recordf(path, eat.Key("value"), "unknown installation '%s'", val)
			}
		case "faction_output_bonus":
			if key, ok := check.String(s, path, eat.Key("value"), e.Member("value"), "value"); ok {
				if _, known := outputBonusKeys[key]; !known {
					s.Recordf(path, eat.Key("value"), "unknown output bonus key '%s'", key)
				}
			}
			check.NumberAtLeast(s, path, eat.Key("amount"), e.Member("amount"), "amount", 0)
		}
	}
}

// detectCycles walks the prereq relation depth-first with explicit
// visiting/visited sets. Roots are taken in document order so findings are
// reproducible. Edges into unknown techs are skipped; the reference pass has
// already reported them. One issue is emitted per cycle the walk discovers —
// interlocking cycles sharing nodes with an already-visited component may
// surface as a subset, which is the accepted behavior.
func detectCycles(s *issue.Sink, path string, byID map[string]*tech, order []string) {
	visiting := map[string]struct{}{}
	visited := map[string]struct{}{}
	var stack []string

	var walk func(tid string)
	walk = func(tid string) {
		if _, done := visited[tid]; done {
			return
		}
		if _, active := visiting[tid]; active {
			start := 0
			for i, id := range stack {
				if id == tid {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, stack[start:]...), tid)
			s.Recordf(path, nil, "tech prereq cycle detected: %s", strings.Join(cycle, " -> "))
			return
		}
		visiting[tid] = struct{}{}
		stack = append(stack, tid)
		for _, pv := range byID[tid].prereqs {
			if pv.Kind() != jsondoc.String {
				continue
			}
			pre := pv.Str()
			if _, ok := byID[pre]; ok {
				walk(pre)
			}
		}
		stack = stack[:len(stack)-1]
		delete(visiting, tid)
		visited[tid] = struct{}{}
	}

	for _, tid := range order {
		if _, done := visited[tid]; !done {
			walk(tid)
		}
	}
}
