package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTickers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickers.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTickers(t, `# Taiwan watchlist
2330.TW
2317.TW

  2454.TW
# trailing comment
2330.TW
`)

	tickers, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2330.TW", "2317.TW", "2454.TW"}, tickers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open ticker file")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeTickers(t, "\n# only comments\n\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no tickers")
}
