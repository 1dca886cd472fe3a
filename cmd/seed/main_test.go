package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunReportsCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - {id: 1, name: Best Fic, kind: fic}
nominees:
  - {id: n1, data: {title: A}, statuses: {1: 0}}
  - {id: n2, data: {title: B}}
`), 0o600))

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", path, "--dry-run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1 categories, 2 nominees (dry run)")
}

func TestRequiresDatabaseURL(t *testing.T) {
	t.Setenv("VETTING_DATABASE_URL", "")
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nominees: []\n"), 0o600))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database-url")
}
