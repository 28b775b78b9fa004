package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cmdopts "github.com/mozilla-ai/repology-mcp/internal/cmd/options"
	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

func vimProjects() []repology.ProjectSummary {
	return []repology.ProjectSummary{
		{
			Name: "vim",
			Packages: []repology.Package{
				{Repo: "freebsd", Version: "9.0", Status: repology.StatusNewest},
			},
		},
	}
}

func TestSearchCmd_Text(t *testing.T) {
	t.Parallel()

	client := &fakeClient{projects: vimProjects()}
	out, err := execute(t, NewSearchCmd, []string{"vim", "--limit", "5", "--inrepo", "freebsd"}, testOptions(client)...)
	require.NoError(t, err)

	require.Contains(t, out, "🆔 vim (1 package)")
	require.Contains(t, out, "    freebsd  9.0  newest\n")
	require.Contains(t, out, "📦 Found 1 project\n")

	require.Equal(t, repology.SearchProjectsRequest{
		Query:   "vim",
		Limit:   5,
		Filters: repology.ProjectFilters{InRepo: "freebsd"},
	}, client.lastRequest(t))
	require.True(t, client.closed)
}

func TestSearchCmd_DefaultLimit(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := execute(t, NewSearchCmd, []string{"vim"}, testOptions(client)...)
	require.NoError(t, err)

	req, ok := client.lastRequest(t).(repology.SearchProjectsRequest)
	require.True(t, ok)
	require.Equal(t, repology.DefaultLimit, req.Limit)
}

func TestSearchCmd_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{name: "text", format: "text", expected: "No projects found matching 'zzz'\n"},
		{name: "json", format: "json", expected: "{\n  \"results\": []\n}\n"},
		{name: "yaml", format: "yaml", expected: "results: []\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, NewSearchCmd, []string{"zzz", "--format", tc.format}, testOptions(&fakeClient{})...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestSearchCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("blank query", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		_, err := execute(t, NewSearchCmd, []string{"  "}, testOptions(client)...)
		require.EqualError(t, err, "query is required and cannot be empty")
		require.Empty(t, client.requests)
	})

	t.Run("missing query", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, NewSearchCmd, nil, testOptions(&fakeClient{})...)
		require.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, NewSearchCmd, []string{"vim", "--format", "xml"}, testOptions(&fakeClient{})...)
		require.ErrorContains(t, err, "invalid format 'xml'")
	})

	t.Run("client error in text", func(t *testing.T) {
		t.Parallel()

		remoteErr := &repology.RemoteError{StatusCode: 503, URL: "http://fake/projects/"}
		out, err := execute(t, NewSearchCmd, []string{"vim"}, testOptions(&fakeClient{err: remoteErr})...)
		require.ErrorIs(t, err, remoteErr)
		require.Empty(t, out)
	})

	t.Run("client error in json", func(t *testing.T) {
		t.Parallel()

		clientErr := errors.New("boom")
		out, err := execute(t, NewSearchCmd, []string{"vim", "--format", "json"}, testOptions(&fakeClient{err: clientErr})...)
		require.ErrorIs(t, err, clientErr)
		require.Equal(t, "{\n  \"error\": \"boom\"\n}\n", out)
	})

	t.Run("client cannot be built", func(t *testing.T) {
		t.Parallel()

		buildErr := errors.New("bad base URL")
		_, err := execute(
			t,
			NewSearchCmd,
			[]string{"vim"},
			cmdopts.WithConfigLoader(&fakeLoader{}),
			cmdopts.WithClientBuilder(&fakeBuilder{err: buildErr}),
		)
		require.ErrorIs(t, err, buildErr)
	})

	t.Run("config cannot be loaded", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("bad config")
		client := &fakeClient{}
		_, err := execute(
			t,
			NewSearchCmd,
			[]string{"vim"},
			cmdopts.WithConfigLoader(&fakeLoader{err: loadErr}),
			cmdopts.WithClientBuilder(&fakeBuilder{client: client}),
		)
		require.ErrorIs(t, err, loadErr)
		require.Empty(t, client.requests)
	})
}

func TestListCmd(t *testing.T) {
	t.Parallel()

	client := &fakeClient{projects: vimProjects()}
	out, err := execute(
		t,
		NewListCmd,
		[]string{
			"--start-from", "firefox",
			"--end-at", "zsh",
			"--limit", "200",
			"--maintainer", "someone@example.org",
			"--category", "editors",
			"--notinrepo", "arch",
			"--repos", "5-",
			"--families", "-3",
			"--newest",
			"--outdated",
			"--problematic",
			"--format", "json",
		},
		testOptions(client)...,
	)
	require.NoError(t, err)
	require.Contains(t, out, `"name": "vim"`)

	require.Equal(t, repology.ListProjectsRequest{
		StartFrom: "firefox",
		EndAt:     "zsh",
		Limit:     200,
		Filters: repology.ProjectFilters{
			Maintainer:  "someone@example.org",
			Category:    "editors",
			NotInRepo:   "arch",
			Repos:       "5-",
			Families:    "-3",
			Newest:      true,
			Outdated:    true,
			Problematic: true,
		},
	}, client.lastRequest(t))
}

func TestListCmd_Empty(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewListCmd, nil, testOptions(&fakeClient{})...)
	require.NoError(t, err)
	require.Equal(t, "No projects found matching the criteria\n", out)
}

func TestListCmd_RejectsArgs(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := execute(t, NewListCmd, []string{"vim"}, testOptions(client)...)
	require.Error(t, err)
	require.Empty(t, client.requests)
}

func TestProjectCmd(t *testing.T) {
	t.Parallel()

	client := &fakeClient{project: repology.ProjectDetail{
		Name:     "firefox",
		Packages: []repology.Package{{Repo: "debian_13", SrcName: "firefox-esr", Version: "128.5.0", Status: repology.StatusLegacy}},
	}}

	out, err := execute(t, NewProjectCmd, []string{"firefox", "--repository", "debian_13"}, testOptions(client)...)
	require.NoError(t, err)
	require.Equal(t, "  🆔 firefox\n  📦 1 package\n    debian_13  firefox-esr  128.5.0  legacy\n", out)

	require.Equal(t, repology.GetProjectRequest{ProjectName: "firefox", Repository: "debian_13"}, client.lastRequest(t))
	require.True(t, client.closed)
}

func TestProjectCmd_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "text",
			args:     []string{"ghost"},
			expected: "No packages found for project 'ghost'\n",
		},
		{
			name:     "text with repository",
			args:     []string{"ghost", "--repository", "freebsd"},
			expected: "No packages found for project 'ghost' in repository 'freebsd'\n",
		},
		{
			name:     "json",
			args:     []string{"ghost", "--format", "json"},
			expected: "{\n  \"result\": {\n    \"name\": \"ghost\",\n    \"packages\": []\n  }\n}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{project: repology.ProjectDetail{Name: "ghost", Packages: []repology.Package{}}}
			out, err := execute(t, NewProjectCmd, tc.args, testOptions(client)...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestProjectCmd_ClientError(t *testing.T) {
	t.Parallel()

	clientErr := errors.New("lookup failed")
	out, err := execute(t, NewProjectCmd, []string{"ghost", "--format", "yaml"}, testOptions(&fakeClient{err: clientErr})...)
	require.ErrorIs(t, err, clientErr)
	require.Equal(t, "error: lookup failed\n", out)
}

func TestProblemsCmd_Repository(t *testing.T) {
	t.Parallel()

	client := &fakeClient{problems: []repology.Problem{
		{Type: "homepage_dead", ProjectName: "vim", Repo: "freebsd"},
	}}

	out, err := execute(
		t,
		NewProblemsCmd,
		[]string{"repository", "freebsd", "--start-from", "v", "--format", "yaml"},
		testOptions(client)...,
	)
	require.NoError(t, err)
	require.Equal(t, "results:\n  - type: homepage_dead\n    project_name: vim\n    repo: freebsd\n", out)

	require.Equal(t, repology.RepositoryProblemsRequest{Repository: "freebsd", StartFrom: "v"}, client.lastRequest(t))
}

func TestProblemsCmd_Maintainer(t *testing.T) {
	t.Parallel()

	client := &fakeClient{problems: []repology.Problem{
		{Type: "cpe_missing", ProjectName: "zsh", Maintainer: "someone@example.org"},
	}}

	out, err := execute(
		t,
		NewProblemsCmd,
		[]string{"maintainer", "someone@example.org", "--repository", "freebsd"},
		testOptions(client)...,
	)
	require.NoError(t, err)
	require.Contains(t, out, "  🔸 cpe_missing: zsh\n")
	require.Contains(t, out, "⚠️ Found 1 problem\n")

	require.Equal(t, repology.MaintainerProblemsRequest{
		Maintainer: "someone@example.org",
		Repository: "freebsd",
	}, client.lastRequest(t))
}

func TestProblemsCmd_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "repository",
			args:     []string{"repository", "freebsd"},
			expected: "No problems found for repository 'freebsd'\n",
		},
		{
			name:     "maintainer",
			args:     []string{"maintainer", "someone@example.org"},
			expected: "No problems found for maintainer 'someone@example.org'\n",
		},
		{
			name:     "maintainer in repository",
			args:     []string{"maintainer", "someone@example.org", "--repository", "freebsd"},
			expected: "No problems found for maintainer 'someone@example.org' in repository 'freebsd'\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, NewProblemsCmd, tc.args, testOptions(&fakeClient{})...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}
