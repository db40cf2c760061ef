package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFileAdapterWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "target", "system-packages")
	adapter := NewOutputFileAdapter(dir)

	propsPath, err := adapter.WriteSystemPackages("key=\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SystemPackagesFile), propsPath)
	reportPath, err := adapter.WriteReport("report\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFile), reportPath)

	data, err := os.ReadFile(propsPath)
	require.NoError(t, err)
	assert.Equal(t, "key=\n", string(data))
	data, err = os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Equal(t, "report\n", string(data))
}

func TestOutputFileAdapterRequiresDir(t *testing.T) {
	_, err := NewOutputFileAdapter("").WriteReport("x")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
