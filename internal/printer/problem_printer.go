package printer

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/mozilla-ai/repology-mcp/internal/cmd/output"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

var _ output.Printer[repology.Problem] = (*ProblemPrinter)(nil)

// ProblemPrinter prints repository and maintainer problems.
type ProblemPrinter struct {
	headerFunc output.WriteFunc[repology.Problem]
	footerFunc output.WriteFunc[repology.Problem]
}

func NewProblemPrinter() *ProblemPrinter {
	return &ProblemPrinter{
		footerFunc: DefaultProblemFooter(),
	}
}

func DefaultProblemFooter() output.WriteFunc[repology.Problem] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintln(w, separator)
		_, _ = fmt.Fprintf(w, "⚠️ Found %s\n", plural(count, "problem"))
	}
}

func (p *ProblemPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ProblemPrinter) SetHeader(fn output.WriteFunc[repology.Problem]) {
	p.headerFunc = fn
}

// Item outputs a single problem entry. Type specific data is printed sorted by key.
func (p *ProblemPrinter) Item(w io.Writer, problem repology.Problem) error {
	title := fmt.Sprintf("  🔸 %s: %s", problem.Type, problem.ProjectName)
	if problem.Version != "" {
		title += " " + problem.Version
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	var details []string
	if problem.Repo != "" {
		details = append(details, "Repository: "+problem.Repo)
	}
	if problem.Maintainer != "" {
		details = append(details, "Maintainer: "+problem.Maintainer)
	}
	if name := cmp.Or(problem.SrcName, problem.BinName); name != "" {
		details = append(details, "Package: "+name)
	}
	if len(details) > 0 {
		if _, err := fmt.Fprintf(w, "    %s\n", strings.Join(details, ", ")); err != nil {
			return err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(problem.Data)) {
		if _, err := fmt.Fprintf(w, "    %s: %v\n", key, problem.Data[key]); err != nil {
			return err
		}
	}

	return nil
}

func (p *ProblemPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ProblemPrinter) SetFooter(fn output.WriteFunc[repology.Problem]) {
	p.footerFunc = fn
}
