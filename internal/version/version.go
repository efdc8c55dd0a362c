// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docsite/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// String renders the version line printed by `docsite --version`.
func String() string {
	s := "docsite " + Version
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s", GitCommit)
		if BuildTime != "" {
			s += ", built " + BuildTime
		}
		s += ")"
	}
	return s
}
