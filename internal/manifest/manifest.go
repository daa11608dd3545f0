// Package manifest reads celestia.toml, the file that declares the stars a
// data set starts from and the ordered list of catalog files to load
// against them.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/LBV2012-26/Celestia/internal/astro"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// ErrNoManifest is returned by Load when the manifest file does not exist.
var ErrNoManifest = errors.New("manifest: celestia.toml not found")

// StarSpec declares one star in the manifest. Position is in kilometers;
// Radius defaults to the solar radius when omitted.
type StarSpec struct {
	Name     string     `toml:"name"`
	Position [3]float64 `toml:"position"`
	Radius   float64    `toml:"radius"`
}

// Defaults carries loader settings declared in the manifest. Command-line
// flags override these.
type Defaults struct {
	MaxFrameDepth int     `toml:"max_frame_depth"`
	DefaultAlbedo float64 `toml:"default_albedo"`
}

// Manifest is the parsed celestia.toml: the star field, the ordered catalog
// list, and loader defaults.
type Manifest struct {
	Dir      string     `toml:"-"`
	Stars    []StarSpec `toml:"star"`
	Catalogs []string   `toml:"catalogs"`
	Defaults Defaults   `toml:"defaults"`
}

// Load reads and validates the manifest at path. Catalog paths stay
// relative; resolve them against Dir.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parsing %s: %w", path, err)
	}
	m.Dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Stars) == 0 {
		return errors.New("manifest: no stars declared")
	}
	seen := make(map[string]bool, len(m.Stars))
	for _, s := range m.Stars {
		if s.Name == "" {
			return errors.New("manifest: star with empty name")
		}
		if seen[s.Name] {
			return fmt.Errorf("manifest: duplicate star %q", s.Name)
		}
		seen[s.Name] = true
		if s.Radius < 0 {
			return fmt.Errorf("manifest: star %q has negative radius", s.Name)
		}
	}
	return nil
}

// CatalogPaths returns the manifest's catalog files resolved against its
// directory, in declaration order.
func (m *Manifest) CatalogPaths() []string {
	paths := make([]string, len(m.Catalogs))
	for i, c := range m.Catalogs {
		paths[i] = filepath.Join(m.Dir, c)
	}
	return paths
}

// Populate registers the manifest's stars in the universe.
func (m *Manifest) Populate(u *solarsys.Universe) {
	for _, s := range m.Stars {
		radius := s.Radius
		if radius == 0 {
			radius = astro.SolRadius
		}
		u.AddStar(&solarsys.Star{
			Name:     s.Name,
			Position: mgl64.Vec3{s.Position[0], s.Position[1], s.Position[2]},
			Radius:   radius,
		})
	}
}
