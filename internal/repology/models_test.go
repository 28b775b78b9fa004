package repology

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []ProjectSummary
		wantErr bool
	}{
		{
			name:  "object keyed by project name",
			input: `{"zsh":[{"repo":"arch","version":"5.9"}],"bash":[{"repo":"freebsd","version":"5.2"}]}`,
			want: []ProjectSummary{
				{Name: "bash", Packages: []Package{{Repo: "freebsd", Version: "5.2"}}},
				{Name: "zsh", Packages: []Package{{Repo: "arch", Version: "5.9"}}},
			},
		},
		{
			name:  "array of named projects",
			input: `[{"name":"vim","packages":[{"repo":"freebsd","version":"9.0"}]}]`,
			want: []ProjectSummary{
				{Name: "vim", Packages: []Package{{Repo: "freebsd", Version: "9.0"}}},
			},
		},
		{
			name:  "missing packages default to empty",
			input: `[{"name":"vim"}]`,
			want:  []ProjectSummary{{Name: "vim", Packages: []Package{}}},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  []ProjectSummary{},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
		{
			name:    "string",
			input:   `"vim"`,
			wantErr: true,
		},
		{
			name:    "wrong package shape",
			input:   `{"vim":"9.0"}`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got projectList
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, []ProjectSummary(got))
		})
	}
}

func TestPackage_UnmarshalJSON_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	input := `{
		"repo": "debian_12",
		"subrepo": "main",
		"srcname": "vim",
		"binname": "vim-tiny",
		"binnames": ["vim", "vim-tiny"],
		"visiblename": "vim",
		"version": "9.0.1378",
		"origversion": "2:9.0.1378-2",
		"status": "outdated",
		"summary": "Vi IMproved",
		"categories": ["editors"],
		"licenses": ["Vim"],
		"maintainers": ["someone@example.org"],
		"vulnerable": true
	}`

	var pkg Package
	require.NoError(t, json.Unmarshal([]byte(input), &pkg))
	require.Equal(t, Package{
		Repo:        "debian_12",
		Subrepo:     "main",
		SrcName:     "vim",
		BinName:     "vim-tiny",
		BinNames:    []string{"vim", "vim-tiny"},
		VisibleName: "vim",
		Version:     "9.0.1378",
		OrigVersion: "2:9.0.1378-2",
		Status:      StatusOutdated,
		Summary:     "Vi IMproved",
		Categories:  []string{"editors"},
		Licenses:    []string{"Vim"},
		Maintainers: []string{"someone@example.org"},
	}, pkg)
}

func TestProjectsInRepo(t *testing.T) {
	t.Parallel()

	projects := []ProjectSummary{
		{Name: "bash", Packages: []Package{{Repo: "arch"}, {Repo: "freebsd"}}},
		{Name: "zsh", Packages: []Package{{Repo: "arch"}}},
	}

	got := projectsInRepo(projects, "freebsd")
	require.Equal(t, []ProjectSummary{{Name: "bash", Packages: []Package{{Repo: "freebsd"}}}}, got)
	require.Len(t, projects[0].Packages, 2, "input must not be mutated")
}
