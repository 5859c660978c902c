package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSKUList(t *testing.T) {
	path := writeTempFile(t, "skus.txt",
		"Booster Box\n"+
			"\n"+
			"  Deck  Sleeves  \n"+
			"Plush Mascot\n")

	items, err := LoadSKUList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Booster Box", "Deck Sleeves", "Plush Mascot"}, items)
}

func TestLoadSKUListEmptyFile(t *testing.T) {
	path := writeTempFile(t, "skus.txt", "\n\n")

	items, err := LoadSKUList(path)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadSKUListMissingFile(t *testing.T) {
	_, err := LoadSKUList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
