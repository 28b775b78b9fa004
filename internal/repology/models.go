package repology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	StatusNewest    Status = "newest"
	StatusDevel     Status = "devel"
	StatusUnique    Status = "unique"
	StatusOutdated  Status = "outdated"
	StatusLegacy    Status = "legacy"
	StatusRolling   Status = "rolling"
	StatusNoScheme  Status = "noscheme"
	StatusIncorrect Status = "incorrect"
	StatusUntrusted Status = "untrusted"
	StatusIgnored   Status = "ignored"
)

// Status is the version classification Repology assigns to a package.
type Status string

// Package is a single package entry of a project, as supplied by Repology.
// Fields missing from the response are left empty, unknown fields are ignored.
type Package struct {
	// Repo is the name of the repository the package belongs to, e.g. "freebsd".
	Repo string `json:"repo" yaml:"repo"`

	// Subrepo is the optional subrepository name, e.g. "main" or "contrib".
	Subrepo string `json:"subrepo,omitempty" yaml:"subrepo,omitempty"`

	// SrcName is the source package name.
	SrcName string `json:"srcname,omitempty" yaml:"srcname,omitempty"`

	// BinName is the binary package name.
	BinName string `json:"binname,omitempty" yaml:"binname,omitempty"`

	// BinNames lists all binary package names built from the source package.
	BinNames []string `json:"binnames,omitempty" yaml:"binnames,omitempty"`

	// VisibleName is the package name as displayed by Repology.
	VisibleName string `json:"visiblename,omitempty" yaml:"visiblename,omitempty"`

	// Version is the sanitized package version.
	Version string `json:"version" yaml:"version"`

	// OrigVersion is the package version as it appears in the repository.
	OrigVersion string `json:"origversion,omitempty" yaml:"origversion,omitempty"`

	// Status is the version classification, e.g. "newest" or "outdated".
	Status Status `json:"status,omitempty" yaml:"status,omitempty"`

	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Licenses    []string `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	Maintainers []string `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
}

// ProjectSummary is a project returned by search and list operations.
type ProjectSummary struct {
	Name     string    `json:"name" yaml:"name"`
	Packages []Package `json:"packages" yaml:"packages"`
}

// ProjectDetail holds every package of one exactly-named project.
type ProjectDetail struct {
	Name     string    `json:"name" yaml:"name"`
	Packages []Package `json:"packages" yaml:"packages"`
}

// Problem is a single packaging issue reported for a repository and/or maintainer.
type Problem struct {
	// Type is the problem type, e.g. "homepage_dead" or "cpe_missing".
	Type string `json:"type" yaml:"type"`

	// Data holds free-form, type specific details of the problem.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	ProjectName string `json:"project_name" yaml:"project_name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	SrcName     string `json:"srcname,omitempty" yaml:"srcname,omitempty"`
	BinName     string `json:"binname,omitempty" yaml:"binname,omitempty"`
	RawVersion  string `json:"rawversion,omitempty" yaml:"rawversion,omitempty"`
	Repo        string `json:"repo,omitempty" yaml:"repo,omitempty"`
	Maintainer  string `json:"maintainer,omitempty" yaml:"maintainer,omitempty"`
}

// projectList decodes a project listing.
// Repology answers with an object keyed by project name, while some compatible services
// answer with an array of {"name", "packages"} objects; both are accepted.
// The decoded list is ordered by project name.
type projectList []ProjectSummary

func (p *projectList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty project listing")
	}

	var projects []ProjectSummary

	switch trimmed[0] {
	case '{':
		var byName map[string][]Package
		if err := json.Unmarshal(trimmed, &byName); err != nil {
			return err
		}
		projects = make([]ProjectSummary, 0, len(byName))
		for name, pkgs := range byName {
			projects = append(projects, ProjectSummary{Name: name, Packages: pkgs})
		}
	case '[':
		if err := json.Unmarshal(trimmed, &projects); err != nil {
			return err
		}
	case 'n':
		if !bytes.Equal(trimmed, []byte("null")) {
			return fmt.Errorf("invalid project listing")
		}
	default:
		return fmt.Errorf("expected object or array for project listing, got %q", trimmed[0])
	}

	for i := range projects {
		if projects[i].Packages == nil {
			projects[i].Packages = []Package{}
		}
	}

	slices.SortStableFunc(projects, func(a, b ProjectSummary) int {
		return strings.Compare(a.Name, b.Name)
	})

	*p = projects
	return nil
}

// onlyRepo returns the packages that belong to the given repository.
func onlyRepo(pkgs []Package, repo string) []Package {
	filtered := make([]Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if pkg.Repo == repo {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

// projectsInRepo narrows every project down to its packages in repo,
// dropping projects which have none left.
func projectsInRepo(projects []ProjectSummary, repo string) []ProjectSummary {
	filtered := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		pkgs := onlyRepo(p.Packages, repo)
		if len(pkgs) == 0 {
			continue
		}
		filtered = append(filtered, ProjectSummary{Name: p.Name, Packages: pkgs})
	}
	return filtered
}
