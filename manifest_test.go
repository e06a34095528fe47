package iconkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Default(t *testing.T) {
	assert := assert.New(t)

	m, err := DefaultManifest()
	require.NoError(t, err)
	assert.Len(m.Targets, 31)
	assert.Equal([]int{20, 29, 40, 48, 58, 60, 72, 76, 80, 87, 96, 120, 144, 152, 167, 180, 192, 1024}, m.Sizes())
	assert.Contains(m.Targets, Target{Path: "assets/icons/app_icon.png", Size: 1024})
	assert.Contains(m.Targets, Target{Path: "android/app/src/main/res/mipmap-xxxhdpi/ic_launcher_round.png", Size: 192})
}

func TestManifest_Load(t *testing.T) {
	assert := assert.New(t)

	doc := `
[[target]]
path = "a/icon.png"
size = 48

[[target]]
path = "b/icon.bmp"
size = 16
`
	m, err := LoadManifest(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal([]Target{{Path: "a/icon.png", Size: 48}, {Path: "b/icon.bmp", Size: 16}}, m.Targets)
	assert.Equal([]int{16, 48}, m.Sizes())
}

func TestManifest_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[target]]\npath = \"x.png\"\nsize = 8\n"), 0644))

	m, err := LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Target{{Path: "x.png", Size: 8}}, m.Targets)

	_, err = LoadManifestFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestManifest_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		msg  string
	}{
		{"empty", "", "no targets"},
		{"syntax", "[[target]\n", "could not parse"},
		{"missing path", "[[target]]\nsize = 8\n", "missing path"},
		{"zero size", "[[target]]\npath = \"a.png\"\n", "invalid size"},
		{"too large", "[[target]]\npath = \"a.png\"\nsize = 9000\n", "invalid size"},
		{"format", "[[target]]\npath = \"a.jpg\"\nsize = 8\n", "not supported"},
		{"duplicate", "[[target]]\npath = \"a.png\"\nsize = 8\n[[target]]\npath = \"a.png\"\nsize = 16\n", "more than once"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadManifest(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestManifest_UppercaseExtension(t *testing.T) {
	m := &Manifest{Targets: []Target{{Path: "ICON.PNG", Size: 8}}}
	assert.NoError(t, m.Validate())
}
