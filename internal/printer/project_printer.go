package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/repology-mcp/internal/cmd/output"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

var (
	_ output.Printer[repology.ProjectSummary] = (*ProjectPrinter)(nil)
	_ output.Printer[repology.ProjectDetail]  = (*ProjectDetailPrinter)(nil)
)

// ProjectPrinter prints search and list results, one project per block.
type ProjectPrinter struct {
	headerFunc output.WriteFunc[repology.ProjectSummary]
	footerFunc output.WriteFunc[repology.ProjectSummary]
}

func NewProjectPrinter() *ProjectPrinter {
	return &ProjectPrinter{
		headerFunc: DefaultProjectHeader(),
		footerFunc: DefaultProjectFooter(),
	}
}

func DefaultProjectHeader() output.WriteFunc[repology.ProjectSummary] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "🔎 Projects...")
		_, _ = fmt.Fprintln(w, "")
	}
}

func DefaultProjectFooter() output.WriteFunc[repology.ProjectSummary] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintln(w, separator)
		_, _ = fmt.Fprintf(w, "📦 Found %s\n", plural(count, "project"))
	}
}

func (p *ProjectPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ProjectPrinter) SetHeader(fn output.WriteFunc[repology.ProjectSummary]) {
	p.headerFunc = fn
}

// Item prints the project name followed by its repository, version and status table.
func (p *ProjectPrinter) Item(w io.Writer, project repology.ProjectSummary) error {
	if _, err := fmt.Fprintf(w, "  🆔 %s (%s)\n", project.Name, plural(len(project.Packages), "package")); err != nil {
		return err
	}

	if err := writePackages(w, project.Packages, repoColumn, versionColumn, statusColumn); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "")
	return err
}

func (p *ProjectPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ProjectPrinter) SetFooter(fn output.WriteFunc[repology.ProjectSummary]) {
	p.footerFunc = fn
}

// ProjectDetailPrinter prints every package of a single project.
type ProjectDetailPrinter struct {
	headerFunc output.WriteFunc[repology.ProjectDetail]
	footerFunc output.WriteFunc[repology.ProjectDetail]
}

func NewProjectDetailPrinter() *ProjectDetailPrinter {
	return &ProjectDetailPrinter{}
}

func (p *ProjectDetailPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ProjectDetailPrinter) SetHeader(fn output.WriteFunc[repology.ProjectDetail]) {
	p.headerFunc = fn
}

// Item prints the project name and a row per package, including the package name in its repository.
func (p *ProjectDetailPrinter) Item(w io.Writer, project repology.ProjectDetail) error {
	if _, err := fmt.Fprintf(w, "  🆔 %s\n", project.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  📦 %s\n", plural(len(project.Packages), "package")); err != nil {
		return err
	}

	return writePackages(w, project.Packages, repoColumn, nameColumn, versionColumn, statusColumn)
}

func (p *ProjectDetailPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ProjectDetailPrinter) SetFooter(fn output.WriteFunc[repology.ProjectDetail]) {
	p.footerFunc = fn
}
