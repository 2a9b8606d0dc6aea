package content

import (
	"fmt"
	"os"
	"path/filepath"

	"starlint/internal/check"
	"starlint/internal/issue"
	"starlint/internal/jsondoc"
)

var componentTypes = map[string]struct{}{
	"armor":         {},
	"cargo":         {},
	"colony_module": {},
	"engine":        {},
	"fuel_tank":     {},
	"mining":        {},
	"reactor":       {},
	"sensor":        {},
	"shield":        {},
	"troop_bay":     {},
	"weapon":        {},
}

var shipRoles = map[string]struct{}{
	"freighter": {},
	"surveyor":  {},
	"combatant": {},
	"unknown":   {},
}

// LoadBlueprints validates the blueprint document (components, ship designs,
// installations, optional includes) and returns the component and
// installation id sets for the tech tree loader. Designs reference
// components by id; every reference must resolve against the retained
// component map.
func LoadBlueprints(s *issue.Sink, path string, resourceIDs IDSet) (IDSet, IDSet) {
	componentIDs := IDSet{}
	installationIDs := IDSet{}

	top, ok := loadRoot(s, path)
	if !ok {
		return componentIDs, installationIDs
	}

	check.IntAtLeast(s, path, issue.Path{}.Key("version"), top.Member("version"), "version", 1)

	checkIncludes(s, path, top)

	comps := check.Object(s, path, issue.Path{}.Key("components"), top.Member("components"), "components")
	if comps == nil {
		return componentIDs, installationIDs
	}

	for _, cid := range comps.Keys() {
		at := issue.Path{}.Key("components").Key(cid)
		if cid == "" {
			s.Record(path, at, "component id must be a non-empty string")
			continue
		}
		comp := check.Object(s, path, at, comps.Member(cid), fmt.Sprintf("component '%s'", cid))
		if comp == nil {
			continue
		}
		if checkComponent(s, path, at, comp) {
			componentIDs[cid] = struct{}{}
		}
	}

	checkDesigns(s, path, top, componentIDs)

	insts := check.Object(s, path, issue.Path{}.Key("installations"), top.Member("installations"), "installations")
	if insts == nil {
		return componentIDs, installationIDs
	}

	for _, iid := range insts.Keys() {
		at := issue.Path{}.Key("installations").Key(iid)
		if iid == "" {
			s.Record(path, at, "installation id must be a non-empty string")
			continue
		}
		inst := check.Object(s, path, at, insts.Member(iid), fmt.Sprintf("installation '%s'", iid))
		if inst == nil {
			continue
		}
		checkInstallation(s, path, at, inst, resourceIDs)
		installationIDs[iid] = struct{}{}
	}

	return componentIDs, installationIDs
}

// checkIncludes verifies that every include entry names an existing file,
// relative to the blueprint document. Content merging is out of scope here.
func checkIncludes(s *issue.Sink, path string, top *jsondoc.Value) {
	inc := top.Member("include")
	if inc.IsNull() {
		return
	}
	entries, ok := check.Array(s, path, issue.Path{}.Key("include"), inc, "include")
	if !ok {
		return
	}
	for i, entry := range entries {
		at := issue.Path{}.Key("include").Index(i)
		rel, ok := check.String(s, path, at, entry, "include entry")
		if !ok {
			continue
		}
		incPath := filepath.Join(filepath.Dir(path), rel)
		if _, err := os.Stat(incPath); err != nil {
			s.Recordf(path, at, "included file not found: %s", rel)
		}
	}
}

// checkComponent validates the generic component shape and dispatches to the
// declared type's required-field schema. It reports true when the record has
// a valid name and should be retained for design/tech reference resolution —
// unknown types are flagged but still retained, so a single bad type string
// does not cascade into false unresolved-reference findings.
func checkComponent(s *issue.Sink, path string, at issue.Path, comp *jsondoc.Value) bool {
	_, hasName := check.String(s, path, at.Key("name"), comp.Member("name"), "name")
	ctype, hasType := check.String(s, path, at.Key("type"), comp.Member("type"), "type")
	if hasType {
		if _, known := componentTypes[ctype]; !known {
			s.Recordf(path, at.Key("type"), "unknown component type '%s'", ctype)
		}
	}

	if mass := comp.Member("mass_tons"); !mass.IsNull() {
		check.NumberAtLeast(s, path, at.Key("mass_tons"), mass, "mass_tons", 0)
	}

	switch ctype {
	case "engine":
		check.NumberAtLeast(s, path, at.Key("speed_km_s"), comp.Member("speed_km_s"), "speed_km_s", 0.001)
		check.NumberAtLeast(s, path, at.Key("fuel_use_per_mkm"), comp.Member("fuel_use_per_mkm"), "fuel_use_per_mkm", 0)
	case "cargo":
		check.NumberAtLeast(s, path, at.Key("cargo_tons"), comp.Member("cargo_tons"), "cargo_tons", 0.001)
	case "mining":
		check.NumberAtLeast(s, path, at.Key("mining_tons_per_day"), comp.Member("mining_tons_per_day"), "mining_tons_per_day", 0.001)
	case "fuel_tank":
		check.NumberAtLeast(s, path, at.Key("fuel_capacity_tons"), comp.Member("fuel_capacity_tons"), "fuel_capacity_tons", 0.001)
	case "colony_module":
		check.NumberAtLeast(s, path, at.Key("colony_capacity_millions"), comp.Member("colony_capacity_millions"), "colony_capacity_millions", 0.001)
	case "troop_bay":
		check.IntAtLeast(s, path, at.Key("troop_capacity"), comp.Member("troop_capacity"), "troop_capacity", 1)
	case "sensor":
		// Sensors mix and match range/ecm/eccm; each is optional.
		if comp.Has("range_mkm") {
			check.NumberAtLeast(s, path, at.Key("range_mkm"), comp.Member("range_mkm"), "range_mkm", 0.001)
		}
		if comp.Has("ecm_strength") {
			check.NumberAtLeast(s, path, at.Key("ecm_strength"), comp.Member("ecm_strength"), "ecm_strength", 0)
		}
		if comp.Has("eccm_strength") {
			check.NumberAtLeast(s, path, at.Key("eccm_strength"), comp.Member("eccm_strength"), "eccm_strength", 0)
		}
	case "reactor":
		check.NumberAtLeast(s, path, at.Key("power"), comp.Member("power"), "power", 0.001)
	case "weapon":
		checkWeapon(s, path, at, comp)
	case "armor":
		if comp.Has("hp_bonus") {
			check.NumberAtLeast(s, path, at.Key("hp_bonus"), comp.Member("hp_bonus"), "hp_bonus", 0)
		}
		if comp.Has("signature_multiplier") {
			check.NumberAtLeast(s, path, at.Key("signature_multiplier"), comp.Member("signature_multiplier"), "signature_multiplier", 0)
		}
	case "shield":
		check.NumberAtLeast(s, path, at.Key("shield_hp"), comp.Member("shield_hp"), "shield_hp", 0.001)
		check.NumberAtLeast(s, path, at.Key("shield_regen_per_day"), comp.Member("shield_regen_per_day"), "shield_regen_per_day", 0)
	}

	return hasName
}

// checkWeapon requires at least one of the beam / missile / point-defense
// field groups; a present group is validated whole.
func checkWeapon(s *issue.Sink, path string, at issue.Path, comp *jsondoc.Value) {
	hasBeam := comp.Has("damage") || comp.Has("weapon_range_mkm")
	hasMissile := comp.Has("missile_damage") || comp.Has("missile_range_mkm")
	hasPD := comp.Has("point_defense_damage") || comp.Has("point_defense_range_mkm")

	if !hasBeam && !hasMissile && !hasPD {
		s.Record(path, at, "weapon must define beam/missile/point-defense fields")
	}
	if hasBeam {
		check.NumberAtLeast(s, path, at.Key("damage"), comp.Member("damage"), "damage", 0)
		check.NumberAtLeast(s, path, at.Key("weapon_range_mkm"), comp.Member("weapon_range_mkm"), "weapon_range_mkm", 0)
	}
	if hasMissile {
		check.NumberAtLeast(s, path, at.Key("missile_damage"), comp.Member("missile_damage"), "missile_damage", 0)
		check.NumberAtLeast(s, path, at.Key("missile_range_mkm"), comp.Member("missile_range_mkm"), "missile_range_mkm", 0)
		check.NumberAtLeast(s, path, at.Key("missile_speed_mkm_per_day"), comp.Member("missile_speed_mkm_per_day"), "missile_speed_mkm_per_day", 0)
		check.IntAtLeast(s, path, at.Key("missile_reload_days"), comp.Member("missile_reload_days"), "missile_reload_days", 0)
		check.IntAtLeast(s, path, at.Key("missile_ammo"), comp.Member("missile_ammo"), "missile_ammo", 0)
	}
	if hasPD {
		check.NumberAtLeast(s, path, at.Key("point_defense_damage"), comp.Member("point_defense_damage"), "point_defense_damage", 0)
		check.NumberAtLeast(s, path, at.Key("point_defense_range_mkm"), comp.Member("point_defense_range_mkm"), "point_defense_range_mkm", 0)
	}
}

// checkDesigns validates the ordered design list: unique ids, known roles,
// and component references resolving against the retained component set.
func checkDesigns(s *issue.Sink, path string, top *jsondoc.Value, componentIDs IDSet) {
	designs, ok := check.Array(s, path, issue.Path{}.Key("designs"), top.Member("designs"), "designs")
	if !ok {
		return
	}
	seen := map[string]struct{}{}
	for i, dv := range designs {
		at := issue.Path{}.Key("designs").Index(i)
		d := check.Object(s, path, at, dv, "design")
		if d == nil {
			continue
		}
		if did, ok := check.String(s, path, at.Key("id"), d.Member("id"), "id"); ok {
			if _, dup := seen[did]; dup {
				s.Recordf(path, at.Key("id"), "duplicate design id '%s'", did)
			}
			seen[did] = struct{}{}
		}
		check.String(s, path, at.Key("name"), d.Member("name"), "name")
		if role, ok := check.String(s, path, at.Key("role"), d.Member("role"), "role"); ok {
			if _, known := shipRoles[role]; !known {
				s.Recordf(path, at.Key("role"), "unknown ship role '%s'", role)
			}
		}
		comps, ok := check.Array(s, path, at.Key("components"), d.Member("components"), "components")
		if !ok {
			continue
		}
		for j, cv := range comps {
			cid, ok := check.String(s, path, at.Key("components").Index(j), cv, "component id")
			if !ok {
				continue
			}
			if !componentIDs.Has(cid) {
				s.Recordf(path, at.Key("components").Index(j), "unknown component '%s'", cid)
			}
		}
	}
}

// checkInstallation validates an installation record: name, optional
// construction cost, and the four optional resource-keyed maps.
func checkInstallation(s *issue.Sink, path string, at issue.Path, inst *jsondoc.Value, resourceIDs IDSet) {
	check.String(s, path, at.Key("name"), inst.Member("name"), "name")

	if inst.Has("construction_cost") {
		check.NumberAtLeast(s, path, at.Key("construction_cost"), inst.Member("construction_cost"), "construction_cost", 0)
	}

	for _, field := range []string{"build_costs", "build_costs_per_ton", "produces", "consumes"} {
		if inst.Has(field) {
			checkResourceMap(s, path, at.Key(field), inst.Member(field), field, resourceIDs)
		}
	}
}

// checkResourceMap validates one resource-keyed amount map. The known-key
// check and the non-negative-value check are independent per entry: an
// unknown key with a negative value yields two issues.
func checkResourceMap(s *issue.Sink, path string, at issue.Path, v *jsondoc.Value, what string, resourceIDs IDSet) {
	m := check.Object(s, path, at, v, what)
	if m == nil {
		return
	}
	for _, k := range m.Keys() {
		if k == "" {
			s.Recordf(path, at, "%s resource keys must be non-empty strings", what)
			continue
		}
		if !resourceIDs.Has(k) {
			s.Recordf(path, at.Key(k), "unknown resource '%s'", k)
		}
		check.NumberAtLeast(s, path, at.Key(k), m.Member(k), fmt.Sprintf("%s['%s']", what, k), 0)
	}
}
