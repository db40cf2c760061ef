package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"system-packages/internal/core"
	"system-packages/internal/types"
	"system-packages/tests/testutil"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"generate", "validate", "inspect"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := newGenerateCommand()
	flags := []string{
		"artifacts", "output", "property-name",
		"exclude-artifact", "exclude-package", "override", "workers",
	}
	for _, name := range flags {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	assert.NotNil(t, cmd.Flags().Lookup("baseline"))
	assert.NotNil(t, cmd.Flags().Lookup("artifacts"))
}

func TestScanOptionsRequestUsesChangedFlags(t *testing.T) {
	opts := scanOptions{}
	cmd := &cobra.Command{Use: "test"}
	addScanFlags(cmd, &opts)
	require.NoError(t, cmd.Flags().Set("artifacts", "deps.yaml"))
	require.NoError(t, cmd.Flags().Set("override", "com.acme*=2.0"))
	require.NoError(t, cmd.Flags().Set("workers", "8"))

	req := opts.request(cmd)
	assert.Equal(t, "deps.yaml", req.ArtifactsPath)
	assert.Equal(t, []string{"com.acme*=2.0"}, req.VersionOverrides)
	assert.Equal(t, 8, req.Workers)
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		values   []string
		expected []string
	}{
		{
			name:     "nil cmd with values returns values",
			cmd:      nil,
			values:   []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			name:     "nil cmd empty returns nil",
			cmd:      nil,
			values:   nil,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStrings(tt.cmd, tt.values, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveInt(t *testing.T) {
	got := resolveInt(nil, 42, "test_key", "test-flag")
	assert.Equal(t, 42, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "configuration error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid version override"),
			expected: 2,
		},
		{
			name: "baseline mismatch",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(core.BaselineMismatchMsg),
			expected: 3,
		},
		{
			name: "missing file",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("artifact list not found"),
			expected: 4,
		},
		{
			name: "corrupt archive",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open archive"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// ---------- Command execution ----------

func TestGenerateAndInspectCommands(t *testing.T) {
	dir := t.TempDir()
	jar := testutil.WriteJar(t, dir, testutil.Jar{
		Name:  "acme.jar",
		Files: []string{"com/acme/Api.class"},
	})
	list := testutil.WriteArtifactList(t, dir, []types.ArtifactRef{
		{Group: "com.acme", Artifact: "acme", Version: "1.4", Path: jar},
	})
	out := filepath.Join(dir, "out")

	root := newRootCommand()
	root.SetArgs([]string{"generate", "--artifacts", list, "--output", out, "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(t.Context()))
	data, err := os.ReadFile(filepath.Join(out, "system-packages.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `com.acme;version="1.4.0"`)

	root = newRootCommand()
	root.SetArgs([]string{"inspect", "--output", out})
	require.NoError(t, root.ExecuteContext(t.Context()))

	root = newRootCommand()
	root.SetArgs([]string{"validate", "--artifacts", list, "--output", filepath.Join(dir, "again"),
		"--baseline", filepath.Join(out, "system-packages.properties")})
	require.NoError(t, root.ExecuteContext(t.Context()))

}
