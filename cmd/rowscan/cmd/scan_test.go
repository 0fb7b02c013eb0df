package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvalheim/rowscan/pkg/di"
	"github.com/kvalheim/rowscan/pkg/rowid"
)

// executeCommand runs the root command with the given arguments and returns
// captured stdout and stderr.
func executeCommand(args ...string) (string, string, error) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// missingConfig returns a --config path that does not exist, so commands
// fall back to defaults instead of the developer's own configuration.
func missingConfig(t *testing.T) string {
	t.Helper()
	return "--config=" + filepath.Join(t.TempDir(), "none.yaml")
}

func writeBlobFile(t *testing.T, records int) string {
	t.Helper()

	data := make([]byte, 0, records*rowid.RawSize)
	for i := 0; i < records; i++ {
		for j := 0; j < rowid.RawSize; j++ {
			data = append(data, byte(i*5+j))
		}
	}

	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestDecodeCommand(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		out, _, err := executeCommand("decode", "00108310518720928b30d38f4142", missingConfig(t))
		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGHIJKLMNOPAB\n", out)
	})

	t.Run("malformed record", func(t *testing.T) {
		_, _, err := executeCommand("decode", "zz", missingConfig(t))
		assert.ErrorIs(t, err, rowid.ErrMalformedRecord)
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Run("valid identifier", func(t *testing.T) {
		out, _, err := executeCommand("encode", "ABCDEFGHIJKLMNOPAB", missingConfig(t))
		require.NoError(t, err)
		assert.Equal(t, "00108310518720928b30d38f4142\n", out)
	})

	t.Run("invalid character", func(t *testing.T) {
		_, _, err := executeCommand("encode", "!AAAAAAAAAAAAAAAAA", missingConfig(t))
		assert.ErrorIs(t, err, rowid.ErrInvalidCharacter)
	})
}

func TestScanCommand_File(t *testing.T) {
	path := writeBlobFile(t, 3)

	out, _, err := executeCommand("scan", path, "--blob=", "--base-ordinal=100", missingConfig(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "100\t"))
	assert.True(t, strings.HasPrefix(lines[1], "101\t"))
	assert.True(t, strings.HasPrefix(lines[2], "102\t"))
}

func TestScanCommand_JSON(t *testing.T) {
	path := writeBlobFile(t, 2)

	out, _, err := executeCommand("scan", path, "--blob=", "--base-ordinal=0", "--format=json", missingConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"ordinal": 0`)
	assert.Contains(t, out, `"ordinal": 1`)
}

func TestScanCommand_MisalignedChunkSize(t *testing.T) {
	path := writeBlobFile(t, 1)

	_, _, err := executeCommand("scan", path, "--blob=", "--chunk-size=13", "--format=text", missingConfig(t))
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	out, _, err := executeCommand("init", "--config="+configPath, "--data-dir=./blobs")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written")
	assert.FileExists(t, configPath)

	// A second init without --force refuses to overwrite.
	out, _, err = executeCommand("init", "--config="+configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestLoadAndScanBlob(t *testing.T) {
	SetContainer(di.NewContainer())

	path := writeBlobFile(t, 4)
	dataDir := t.TempDir()

	id, _, err := executeCommand("load", path, "--data-dir="+dataDir, missingConfig(t))
	require.NoError(t, err)
	blobID := strings.TrimSpace(id)
	require.NotEmpty(t, blobID)

	out, _, err := executeCommand("scan", "--blob="+blobID, "--data-dir="+dataDir, "--chunk-size=0", "--base-ordinal=7", missingConfig(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "7\t"))
	assert.True(t, strings.HasPrefix(lines[3], "10\t"))
}
