package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersTasks(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "seed", "expire-pending"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSeedRequiresReadableFile(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), ".env"), "seed", "--file", missing})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}
