package content

import (
	"time"

	"starlint/internal/check"
	"starlint/internal/issue"
)

// LoadSettings runs light sanity checks on the simulation bootstrap
// settings. No cross-references: only local shape and range checks.
func LoadSettings(s *issue.Sink, path string) {
	top, ok := loadRoot(s, path)
	if !ok {
		return
	}

	if top.Has("startingScenario") {
		check.String(s, path, issue.Path{}.Key("startingScenario"), top.Member("startingScenario"), "startingScenario")
	}

	simVal := top.Member("sim")
	if simVal.IsNull() {
		return
	}
	sim := check.Object(s, path, issue.Path{}.Key("sim"), simVal, "sim")
	if sim == nil {
		return
	}

	if sim.Has("startDate") {
		at := issue.Path{}.Key("sim").Key("startDate")
		if sd, ok := check.String(s, path, at, sim.Member("startDate"), "startDate"); ok {
			if _, err := time.Parse("2006-01-02", sd); err != nil {
				s.Record(path, at, "startDate must be YYYY-MM-DD")
			}
		}
	}
	if sim.Has("secondsPerDay") {
		check.IntAtLeast(s, path, issue.Path{}.Key("sim").Key("secondsPerDay"), sim.Member("secondsPerDay"), "secondsPerDay", 1)
	}
}
