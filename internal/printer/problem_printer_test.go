package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

func TestProblemPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		problem  repology.Problem
		expected string
	}{
		{
			name: "full problem with data",
			problem: repology.Problem{
				Type:        "homepage_dead",
				ProjectName: "vim",
				Version:     "9.0",
				Repo:        "freebsd",
				Maintainer:  "vim@FreeBSD.org",
				SrcName:     "editors/vim",
				Data:        map[string]any{"url": "http://vim.example", "code": 404},
			},
			expected: "  🔸 homepage_dead: vim 9.0\n" +
				"    Repository: freebsd, Maintainer: vim@FreeBSD.org, Package: editors/vim\n" +
				"    code: 404\n" +
				"    url: http://vim.example\n",
		},
		{
			name: "binary name used when source name is missing",
			problem: repology.Problem{
				Type:        "cpe_missing",
				ProjectName: "zsh",
				BinName:     "zsh-static",
			},
			expected: "  🔸 cpe_missing: zsh\n" +
				"    Package: zsh-static\n",
		},
		{
			name:     "minimal problem",
			problem:  repology.Problem{Type: "homepage_permanent_redirect", ProjectName: "curl"},
			expected: "  🔸 homepage_permanent_redirect: curl\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printer := NewProblemPrinter()

			require.NoError(t, printer.Item(&buf, tc.problem))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestProblemPrinter_HeaderFooter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer := NewProblemPrinter()

	printer.Header(&buf, 3)
	require.Empty(t, buf.String())

	printer.Footer(&buf, 3)
	require.Equal(t, separator+"\n⚠️ Found 3 problems\n", buf.String())
}
