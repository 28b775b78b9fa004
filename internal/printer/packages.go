package printer

import (
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

const separator = "────────────────────────────────────────────"

// packageColumn extracts one column of a package table row.
type packageColumn func(pkg repology.Package) string

func repoColumn(pkg repology.Package) string {
	if pkg.Subrepo != "" {
		return pkg.Repo + " (" + pkg.Subrepo + ")"
	}
	return pkg.Repo
}

func nameColumn(pkg repology.Package) string {
	return cmp.Or(pkg.VisibleName, pkg.SrcName, pkg.BinName, "-")
}

func versionColumn(pkg repology.Package) string {
	if pkg.Version == "" {
		return "-"
	}
	return pkg.Version
}

func statusColumn(pkg repology.Package) string {
	return string(pkg.Status)
}

// writePackages writes one aligned row per package, indented under the project line.
func writePackages(w io.Writer, pkgs []repology.Package, columns ...packageColumn) error {
	if len(pkgs) == 0 {
		_, err := fmt.Fprintln(w, "    (No packages)")
		return err
	}

	rows := make([][]string, len(pkgs))
	widths := make([]int, len(columns))
	for i, pkg := range pkgs {
		rows[i] = make([]string, len(columns))
		for j, col := range columns {
			cell := col(pkg)
			rows[i][j] = cell
			widths[j] = max(widths[j], len([]rune(cell)))
		}
	}

	for _, row := range rows {
		var sb strings.Builder
		sb.WriteString("    ")
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-len([]rune(cell))))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}

	return nil
}

func plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}
