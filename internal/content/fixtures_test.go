package content

import (
	"os"
	"path/filepath"
	"testing"

	"starlint/internal/issue"

	"github.com/stretchr/testify/require"
)

const baselineResources = `{
  "version": 1,
  "resources": {
    "iron": {"name": "Iron", "category": "metal", "mineable": true, "salvage_research_rp_per_ton": 0.5},
    "fuel": {"name": "Fuel", "category": "volatile", "mineable": true, "salvage_research_rp_per_ton": 0}
  }
}`

const baselineBlueprints = `{
  "version": 1,
  "components": {
    "engine_basic": {"name": "Basic Engine", "type": "engine", "mass_tons": 50, "speed_km_s": 25, "fuel_use_per_mkm": 0.1},
    "cargo_small": {"name": "Small Cargo Hold", "type": "cargo", "cargo_tons": 500},
    "laser_mk1": {"name": "Laser Mk1", "type": "weapon", "damage": 4, "weapon_range_mkm": 1.5}
  },
  "designs": [
    {"id": "hauler", "name": "Hauler", "role": "freighter", "components": ["engine_basic", "cargo_small"]},
    {"id": "gunship", "name": "Gunship", "role": "combatant", "components": ["engine_basic", "laser_mk1"]}
  ],
  "installations": {
    "mine": {"name": "Mine", "construction_cost": 100, "build_costs": {"iron": 50}, "produces": {"iron": 10}, "consumes": {"fuel": 1}}
  }
}`

const baselineTechTree = `{
  "version": 1,
  "techs": [
    {"id": "propulsion_1", "name": "Propulsion I", "cost": 100, "prereqs": [], "effects": [{"type": "unlock_component", "value": "engine_basic"}]},
    {"id": "industry_1", "name": "Industry I", "cost": 200, "prereqs": ["propulsion_1"], "effects": [{"type": "unlock_installation", "value": "mine"}, {"type": "faction_output_bonus", "value": "mining", "amount": 0.1}]}
  ]
}`

const baselineSettings = `{"startingScenario": "sol_start", "sim": {"startDate": "2200-01-01", "secondsPerDay": 86400}}`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// writeTree lays out a content tree in the conventional layout. Empty bodies
// skip the file entirely (simulating a missing file).
func writeTree(t *testing.T, root, resources, blueprints, techTree, settings string) Paths {
	t.Helper()
	p := DefaultPaths(root)
	for path, body := range map[string]string{
		p.Resources:  resources,
		p.Blueprints: blueprints,
		p.TechTree:   techTree,
		p.Settings:   settings,
	} {
		if body != "" {
			writeFile(t, path, body)
		}
	}
	return p
}

func writeBaseline(t *testing.T, root string) Paths {
	t.Helper()
	return writeTree(t, root, baselineResources, baselineBlueprints, baselineTechTree, baselineSettings)
}

func runAll(p Paths) []issue.Issue {
	r := &Runner{Paths: p}
	return r.Run()
}

func messages(issues []issue.Issue) []string {
	out := make([]string, len(issues))
	for i, it := range issues {
		out[i] = it.Message
	}
	return out
}
