package content

import (
	"path/filepath"
	"testing"

	"starlint/internal/issue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBlueprintDoc(t *testing.T, body string, resources IDSet) (*issue.Sink, IDSet, IDSet) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starting_blueprints.json")
	writeFile(t, path, body)
	s := issue.NewSink()
	comps, insts := LoadBlueprints(s, path, resources)
	return s, comps, insts
}

func TestWeaponFieldGroups(t *testing.T) {
	t.Run("No group present", func(t *testing.T) {
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {"gun": {"name": "Gun", "type": "weapon"}},
			"designs": [],
			"installations": {}
		}`, IDSet{})
		require.Equal(t, 1, s.Len())
		assert.Equal(t, "weapon must define beam/missile/point-defense fields", s.Issues()[0].Message)
		assert.Equal(t, "/components/gun", s.Issues()[0].Pointer)
	})

	t.Run("Beam group satisfies the requirement", func(t *testing.T) {
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {"gun": {"name": "Gun", "type": "weapon", "damage": 4, "weapon_range_mkm": 1.5}},
			"designs": [],
			"installations": {}
		}`, IDSet{})
		assert.Zero(t, s.Len(), "issues: %v", messages(s.Issues()))
	})

	t.Run("Partial group validates the whole group", func(t *testing.T) {
		// missile_damage alone triggers the full missile field set.
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {"silo": {"name": "Silo", "type": "weapon", "missile_damage": 10}},
			"designs": [],
			"installations": {}
		}`, IDSet{})
		msgs := messages(s.Issues())
		assert.Contains(t, msgs, "missile_range_mkm must be a number")
		assert.Contains(t, msgs, "missile_speed_mkm_per_day must be a number")
		assert.Contains(t, msgs, "missile_reload_days must be an integer")
		assert.Contains(t, msgs, "missile_ammo must be an integer")
	})
}

func TestUnknownComponentTypeStillRetained(t *testing.T) {
	s, comps, _ := loadBlueprintDoc(t, `{
		"version": 1,
		"components": {"warp": {"name": "Warp Drive", "type": "warp_drive"}},
		"designs": [{"id": "probe", "name": "Probe", "role": "surveyor", "components": ["warp"]}],
		"installations": {}
	}`, IDSet{})

	// The bad type is flagged, but the design reference still resolves.
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "unknown component type 'warp_drive'", s.Issues()[0].Message)
	assert.True(t, comps.Has("warp"))
}

func TestComponentWithoutNameNotRetained(t *testing.T) {
	s, comps, _ := loadBlueprintDoc(t, `{
		"version": 1,
		"components": {"ghost": {"type": "cargo", "cargo_tons": 10}},
		"designs": [{"id": "d", "name": "D", "role": "unknown", "components": ["ghost"]}],
		"installations": {}
	}`, IDSet{})

	assert.False(t, comps.Has("ghost"))
	msgs := messages(s.Issues())
	assert.Contains(t, msgs, "name must be a non-empty string")
	assert.Contains(t, msgs, "unknown component 'ghost'")
}

func TestDuplicateDesignID(t *testing.T) {
	s, _, _ := loadBlueprintDoc(t, `{
		"version": 1,
		"components": {},
		"designs": [
			{"id": "twin", "name": "A", "role": "unknown", "components": []},
			{"id": "twin", "name": "B", "role": "unknown", "components": []}
		],
		"installations": {}
	}`, IDSet{})

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "duplicate design id 'twin'", s.Issues()[0].Message)
	assert.Equal(t, "/designs/1/id", s.Issues()[0].Pointer)
}

func TestInstallationResourceMaps(t *testing.T) {
	t.Run("Unknown key and negative value are independent", func(t *testing.T) {
		s, _, insts := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {},
			"designs": [],
			"installations": {
				"mine": {"name": "Mine", "produces": {"unobtainium": 5, "iron": -1}}
			}
		}`, IDSet{"iron": {}})

		require.True(t, insts.Has("mine"))
		require.Equal(t, 2, s.Len())
		assert.Equal(t, "unknown resource 'unobtainium'", s.Issues()[0].Message)
		assert.Equal(t, "/installations/mine/produces/unobtainium", s.Issues()[0].Pointer)
		assert.Equal(t, "produces['iron'] must be >= 0", s.Issues()[1].Message)
		assert.Equal(t, "/installations/mine/produces/iron", s.Issues()[1].Pointer)
	})

	t.Run("Unknown key with bad value yields both issues", func(t *testing.T) {
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {},
			"designs": [],
			"installations": {"mine": {"name": "Mine", "consumes": {"mystery": -2}}}
		}`, IDSet{})
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Map must be an object", func(t *testing.T) {
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"components": {},
			"designs": [],
			"installations": {"mine": {"name": "Mine", "build_costs": [1, 2]}}
		}`, IDSet{})
		require.Equal(t, 1, s.Len())
		assert.Equal(t, "build_costs must be an object", s.Issues()[0].Message)
	})
}

func TestIncludeEntries(t *testing.T) {
	t.Run("Missing include reported", func(t *testing.T) {
		s, _, _ := loadBlueprintDoc(t, `{
			"version": 1,
			"include": ["extra_blueprints.json"],
			"components": {},
			"designs": [],
			"installations": {}
		}`, IDSet{})
		require.Equal(t, 1, s.Len())
		assert.Equal(t, "included file not found: extra_blueprints.json", s.Issues()[0].Message)
		assert.Equal(t, "/include/0", s.Issues()[0].Pointer)
	})

	t.Run("Existing include accepted", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "starting_blueprints.json")
		writeFile(t, filepath.Join(dir, "extra.json"), `{}`)
		writeFile(t, path, `{
			"version": 1,
			"include": ["extra.json"],
			"components": {},
			"designs": [],
			"installations": {}
		}`)
		s := issue.NewSink()
		LoadBlueprints(s, path, IDSet{})
		assert.Zero(t, s.Len(), "issues: %v", messages(s.Issues()))
	})
}

func TestShieldRequiresBothFields(t *testing.T) {
	s, _, _ := loadBlueprintDoc(t, `{
		"version": 1,
		"components": {"bubble": {"name": "Bubble", "type": "shield", "shield_hp": 100}},
		"designs": [],
		"installations": {}
	}`, IDSet{})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "shield_regen_per_day must be a number", s.Issues()[0].Message)
}

func TestOptionalMass(t *testing.T) {
	s, _, _ := loadBlueprintDoc(t, `{
		"version": 1,
		"components": {"box": {"name": "Box", "type": "cargo", "cargo_tons": 5, "mass_tons": -1}},
		"designs": [],
		"installations": {}
	}`, IDSet{})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "mass_tons must be >= 0", s.Issues()[0].Message)
}
