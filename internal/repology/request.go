package repology

import (
	"net/url"
	"strings"
)

const (
	OperationSearchProjects     Operation = "search_projects"
	OperationGetProject         Operation = "get_project"
	OperationListProjects       Operation = "list_projects"
	OperationRepositoryProblems Operation = "get_repository_problems"
	OperationMaintainerProblems Operation = "get_maintainer_problems"
)

const (
	// DefaultLimit is the number of projects returned by search and list operations when no limit is given.
	DefaultLimit = 10

	// MaxSearchLimit is the largest limit accepted by SearchProjectsRequest.
	MaxSearchLimit = 100

	// MaxListLimit is the largest limit accepted by ListProjectsRequest.
	// It matches the page size of the Repology projects endpoint.
	MaxListLimit = 200
)

// Operation names one of the read-only operations supported by the remote service.
type Operation string

// Request is implemented by the closed set of typed requests in this package:
// SearchProjectsRequest, GetProjectRequest, ListProjectsRequest,
// RepositoryProblemsRequest and MaintainerProblemsRequest.
type Request interface {
	// Operation returns the operation the request is built for.
	Operation() Operation

	validate() error
	endpoint() Endpoint
}

// Endpoint is a built request: a resource path relative to the API base URL plus query parameters.
type Endpoint struct {
	Operation Operation
	Path      string
	Query     url.Values
}

// URL joins the endpoint onto baseURL. Query parameters are encoded sorted by key.
func (e Endpoint) URL(baseURL string) string {
	u := strings.TrimSuffix(baseURL, "/") + e.Path
	if len(e.Query) > 0 {
		u += "?" + e.Query.Encode()
	}
	return u
}

// Build validates the request and returns its endpoint. It performs no I/O.
func Build(r Request) (Endpoint, error) {
	if r == nil {
		return Endpoint{}, invalidArgument("request cannot be nil")
	}
	if err := r.validate(); err != nil {
		return Endpoint{}, err
	}
	return r.endpoint(), nil
}

// ProjectFilters are the optional project filters understood by the Repology projects endpoint.
// Values are passed through verbatim; InRepo and NotInRepo may both be set.
type ProjectFilters struct {
	// Maintainer only includes projects with a package maintained by this person (usually an email).
	Maintainer string

	// Category only includes projects in this category.
	Category string

	// InRepo only includes projects present in this repository.
	InRepo string

	// NotInRepo only includes projects absent from this repository.
	NotInRepo string

	// Repos filters by the number of repositories, e.g. "1", "5-", "-5", "2-7".
	Repos string

	// Families filters by the number of repository families, same syntax as Repos.
	Families string

	// Newest only includes projects which are newest in at least one repository.
	Newest bool

	// Outdated only includes projects which are outdated in at least one repository.
	Outdated bool

	// Problematic only includes projects which have problems in at least one repository.
	Problematic bool
}

func (f ProjectFilters) apply(q url.Values) {
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			q.Set(key, value)
		}
	}
	flag := func(key string, value bool) {
		if value {
			q.Set(key, "1")
		}
	}

	set("maintainer", f.Maintainer)
	set("category", f.Category)
	set("inrepo", f.InRepo)
	set("notinrepo", f.NotInRepo)
	set("repos", f.Repos)
	set("families", f.Families)
	flag("newest", f.Newest)
	flag("outdated", f.Outdated)
	flag("problematic", f.Problematic)
}

// SearchProjectsRequest searches projects by a substring of their name.
type SearchProjectsRequest struct {
	Query string

	// Limit caps the number of returned projects, 1..MaxSearchLimit. Zero means DefaultLimit.
	Limit int

	Filters ProjectFilters
}

func (r SearchProjectsRequest) Operation() Operation {
	return OperationSearchProjects
}

func (r SearchProjectsRequest) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return invalidArgument("query cannot be empty")
	}
	return validateLimit(r.Limit, MaxSearchLimit)
}

func (r SearchProjectsRequest) endpoint() Endpoint {
	q := url.Values{}
	q.Set("search", strings.TrimSpace(r.Query))
	r.Filters.apply(q)

	return Endpoint{
		Operation: r.Operation(),
		Path:      "/projects/",
		Query:     q,
	}
}

func (r SearchProjectsRequest) limit() int {
	return effectiveLimit(r.Limit)
}

// GetProjectRequest fetches every package of one project, matched by exact name.
type GetProjectRequest struct {
	ProjectName string

	// Repository optionally narrows the returned packages to a single repository.
	// It is applied to the response, not sent to the remote service.
	Repository string
}

func (r GetProjectRequest) Operation() Operation {
	return OperationGetProject
}

func (r GetProjectRequest) validate() error {
	if strings.TrimSpace(r.ProjectName) == "" {
		return invalidArgument("project_name cannot be empty")
	}
	return nil
}

func (r GetProjectRequest) endpoint() Endpoint {
	return Endpoint{
		Operation: r.Operation(),
		Path:      "/project/" + url.PathEscape(strings.TrimSpace(r.ProjectName)),
	}
}

// ListProjectsRequest lists projects in name order, one page at a time.
type ListProjectsRequest struct {
	// StartFrom is the pagination cursor: the project name the page starts from (inclusive).
	StartFrom string

	// EndAt is the project name the page ends at (inclusive).
	EndAt string

	// Limit caps the number of returned projects, 1..MaxListLimit. Zero means DefaultLimit.
	Limit int

	Filters ProjectFilters
}

func (r ListProjectsRequest) Operation() Operation {
	return OperationListProjects
}

func (r ListProjectsRequest) validate() error {
	return validateLimit(r.Limit, MaxListLimit)
}

func (r ListProjectsRequest) endpoint() Endpoint {
	path := "/projects/"
	if start := strings.TrimSpace(r.StartFrom); start != "" {
		path += url.PathEscape(start) + "/"
	}
	if end := strings.TrimSpace(r.EndAt); end != "" {
		path += ".." + url.PathEscape(end) + "/"
	}

	q := url.Values{}
	r.Filters.apply(q)

	return Endpoint{
		Operation: r.Operation(),
		Path:      path,
		Query:     q,
	}
}

func (r ListProjectsRequest) limit() int {
	return effectiveLimit(r.Limit)
}

// RepositoryProblemsRequest lists problems reported for a repository.
type RepositoryProblemsRequest struct {
	Repository string

	// StartFrom is the pagination cursor: the project name the page starts from.
	StartFrom string
}

func (r RepositoryProblemsRequest) Operation() Operation {
	return OperationRepositoryProblems
}

func (r RepositoryProblemsRequest) validate() error {
	if strings.TrimSpace(r.Repository) == "" {
		return invalidArgument("repository cannot be empty")
	}
	return nil
}

func (r RepositoryProblemsRequest) endpoint() Endpoint {
	return Endpoint{
		Operation: r.Operation(),
		Path:      "/repository/" + url.PathEscape(strings.TrimSpace(r.Repository)) + "/problems",
		Query:     cursorQuery(r.StartFrom),
	}
}

// MaintainerProblemsRequest lists problems reported for packages of a maintainer,
// optionally limited to one repository.
type MaintainerProblemsRequest struct {
	Maintainer string
	Repository string

	// StartFrom is the pagination cursor: the project name the page starts from.
	StartFrom string
}

func (r MaintainerProblemsRequest) Operation() Operation {
	return OperationMaintainerProblems
}

func (r MaintainerProblemsRequest) validate() error {
	if strings.TrimSpace(r.Maintainer) == "" {
		return invalidArgument("maintainer cannot be empty")
	}
	return nil
}

func (r MaintainerProblemsRequest) endpoint() Endpoint {
	path := "/maintainer/" + url.PathEscape(strings.TrimSpace(r.Maintainer))
	if repo := strings.TrimSpace(r.Repository); repo != "" {
		path += "/problems-for-repo/" + url.PathEscape(repo)
	} else {
		path += "/problems"
	}

	return Endpoint{
		Operation: r.Operation(),
		Path:      path,
		Query:     cursorQuery(r.StartFrom),
	}
}

func cursorQuery(cursor string) url.Values {
	q := url.Values{}
	if cursor = strings.TrimSpace(cursor); cursor != "" {
		q.Set("start", cursor)
	}
	return q
}

func validateLimit(limit int, maxLimit int) error {
	if limit < 0 || limit > maxLimit {
		return invalidArgument("limit must be between 1 and %d, got %d", maxLimit, limit)
	}
	return nil
}

func effectiveLimit(limit int) int {
	if limit == 0 {
		return DefaultLimit
	}
	return limit
}
