package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/repology-mcp/internal/repology"
)

func TestNewJSONHandler_Writer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.Package](buf, 2)
	require.Equal(t, buf, h.Writer())
}

func TestJSONHandler_HandleResults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.Package](buf, 2)

	pkgs := []repology.Package{
		{Repo: "freebsd", Version: "9.0", Status: repology.StatusNewest},
		{Repo: "arch", Version: "8.2"},
	}
	require.NoError(t, h.HandleResults(pkgs...))

	expected := `{
  "results": [
    {
      "repo": "freebsd",
      "version": "9.0",
      "status": "newest"
    },
    {
      "repo": "arch",
      "version": "8.2"
    }
  ]
}` + "\n"
	require.Equal(t, expected, buf.String())
}

func TestJSONHandler_HandleResults_Empty(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.Package](buf, 0)

	require.NoError(t, h.HandleResults(nil...))

	// An empty collection is an empty array, never null.
	require.Equal(t, `{"results":[]}`+"\n", buf.String())
}

func TestJSONHandler_HandleResult(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.ProjectDetail](buf, 0)

	require.NoError(t, h.HandleResult(repology.ProjectDetail{Name: "vim", Packages: []repology.Package{}}))
	require.Equal(t, `{"result":{"name":"vim","packages":[]}}`+"\n", buf.String())
}

func TestJSONHandler_HandleError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.Package](buf, 4)

	require.NoError(t, h.HandleError(errors.New("remote service error: HTTP 404")))

	expected := `{
    "error": "remote service error: HTTP 404"
}` + "\n"
	require.Equal(t, expected, buf.String())
}

func TestJSONHandler_HandleError_EmptyMessage(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewJSONHandler[repology.Package](buf, 0)

	require.NoError(t, h.HandleError(errors.New("")))
	require.Equal(t, `{"error":""}`+"\n", buf.String())
}
