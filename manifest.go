package iconkit

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed targets.toml
var defaultTargets []byte

// Target is a single icon file to produce.
type Target struct {
	// Path of the output file, relative to the project root unless absolute.
	Path string `toml:"path"`
	// Size is the edge length in pixels.
	Size int `toml:"size"`
}

// Manifest lists the icon files of a project.
type Manifest struct {
	Targets []Target `toml:"target"`
}

// LoadManifest parses and validates a TOML manifest.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("could not parse the manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifestFile reads a manifest from disk.
func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the manifest: %w", err)
	}
	defer f.Close()

	return LoadManifest(f)
}

// DefaultManifest returns the built-in Android and iOS launcher icon set.
func DefaultManifest() (*Manifest, error) {
	return LoadManifest(bytes.NewReader(defaultTargets))
}

// Validate checks that every target has a path with a supported extension,
// a size Render accepts, and that no path is listed twice.
func (m *Manifest) Validate() error {
	if len(m.Targets) == 0 {
		return errors.New("manifest has no targets")
	}

	seen := make(map[string]bool, len(m.Targets))
	for i, t := range m.Targets {
		switch {
		case t.Path == "":
			return fmt.Errorf("target %d: missing path", i)
		case t.Size <= 0 || t.Size > MaxSize:
			return fmt.Errorf("target %q: invalid size %d", t.Path, t.Size)
		case !isSupportedFormat(formatOf(t.Path)):
			return fmt.Errorf("target %q: %v file type not supported", t.Path, formatOf(t.Path))
		case seen[t.Path]:
			return fmt.Errorf("target %q: listed more than once", t.Path)
		}
		seen[t.Path] = true
	}
	return nil
}

// Sizes returns the distinct icon sizes of the manifest in ascending order.
func (m *Manifest) Sizes() []int {
	set := make(map[int]struct{})
	for _, t := range m.Targets {
		set[t.Size] = struct{}{}
	}
	sizes := make([]int, 0, len(set))
	for s := range set {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}
