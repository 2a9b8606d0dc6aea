package content

import (
	"path/filepath"

	"go.uber.org/zap"

	"starlint/internal/issue"
)

// Paths locates the four content files of one data tree.
type Paths struct {
	Resources  string
	Blueprints string
	TechTree   string
	Settings   string
}

// DefaultPaths returns the conventional content layout under root.
func DefaultPaths(root string) Paths {
	return Paths{
		Resources:  filepath.Join(root, "data", "blueprints", "resources.json"),
		Blueprints: filepath.Join(root, "data", "blueprints", "starting_blueprints.json"),
		TechTree:   filepath.Join(root, "data", "tech", "tech_tree.json"),
		Settings:   filepath.Join(root, "data", "settings.json"),
	}
}

// Runner executes the loaders in dependency order: resources → blueprints →
// tech tree, with settings checked independently at the end. Loaders
// exchange identifier sets only; a missing or unparsable file yields one
// issue and an empty set forwarded downstream, so downstream reference
// checks still run and report every reference as unresolved.
type Runner struct {
	Paths Paths
	Log   *zap.SugaredLogger
}

// Run performs one full validation pass and returns every issue found, in
// detection order. Re-running on unchanged input yields an identical list.
func (r *Runner) Run() []issue.Issue {
	log := r.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := issue.NewSink()

	resourceIDs := LoadResources(s, r.Paths.Resources)
	log.Debugw("resource catalog checked", "file", r.Paths.Resources, "resources", len(resourceIDs), "issues", s.Len())

	componentIDs, installationIDs := LoadBlueprints(s, r.Paths.Blueprints, resourceIDs)
	log.Debugw("blueprints checked", "file", r.Paths.Blueprints,
		"components", len(componentIDs), "installations", len(installationIDs), "issues", s.Len())

	LoadTechTree(s, r.Paths.TechTree, componentIDs, installationIDs)
	log.Debugw("tech tree checked", "file", r.Paths.TechTree, "issues", s.Len())

	LoadSettings(s, r.Paths.Settings)
	log.Debugw("settings checked", "file", r.Paths.Settings, "issues", s.Len())

	return s.Issues()
}
