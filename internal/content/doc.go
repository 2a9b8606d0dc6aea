// Package content validates the simulation's static game-data files:
// the resource catalog, the blueprint document (components, ship designs,
// installations), the technology tree, and the bootstrap settings. Loaders
// exchange only identifier sets; findings accumulate in an issue sink and
// are the sole output of a run.
package content

import (
	"os"

	"starlint/internal/check"
	"starlint/internal/issue"
	"starlint/internal/jsondoc"
)

// IDSet is a membership-only identifier catalog handed between loaders.
type IDSet map[string]struct{}

// Has reports whether id is a known identifier.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// loadRoot verifies the file exists, parses it, and checks the top-level
// value is an object. Any failure records exactly one issue and is terminal
// for this file's loader, never for the run.
func loadRoot(s *issue.Sink, path string) (*jsondoc.Value, bool) {
	if _, err := os.Stat(path); err != nil {
		s.Record(path, nil, "file not found")
		return nil, false
	}
	doc, err := jsondoc.Load(path)
	if err != nil {
		s.Recordf(path, nil, "failed to parse JSON: %v", err)
		return nil, false
	}
	top := check.Object(s, path, nil, doc, "root")
	if top == nil {
		return nil, false
	}
	return top, true
}
