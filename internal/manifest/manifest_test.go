package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LBV2012-26/Celestia/internal/astro"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "celestia.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
catalogs = ["solarsys.ssc", "extras/moons.ssc"]

[defaults]
max_frame_depth = 30

[[star]]
name = "Sol"
radius = 695700.0

[[star]]
name = "Proxima"
position = [-2.8e13, 1.2e13, 0.0]
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantStars := []StarSpec{
		{Name: "Sol", Radius: 695700},
		{Name: "Proxima", Position: [3]float64{-2.8e13, 1.2e13, 0}},
	}
	if diff := cmp.Diff(wantStars, m.Stars); diff != "" {
		t.Errorf("stars mismatch (-want +got):\n%s", diff)
	}
	if m.Defaults.MaxFrameDepth != 30 {
		t.Errorf("max_frame_depth = %d, want 30", m.Defaults.MaxFrameDepth)
	}

	dir := filepath.Dir(path)
	want := []string{
		filepath.Join(dir, "solarsys.ssc"),
		filepath.Join(dir, "extras", "moons.ssc"),
	}
	if diff := cmp.Diff(want, m.CatalogPaths()); diff != "" {
		t.Errorf("catalog paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "celestia.toml"))
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("err = %v, want ErrNoManifest", err)
	}
}

func TestValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"no stars", `catalogs = ["a.ssc"]`},
		{"empty star name", "[[star]]\nname = \"\""},
		{"duplicate star", "[[star]]\nname = \"Sol\"\n[[star]]\nname = \"Sol\""},
		{"negative radius", "[[star]]\nname = \"Sol\"\nradius = -1.0"},
		{"bad toml", `catalogs = [`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Load(writeManifest(t, tc.content)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestPopulate(t *testing.T) {
	t.Parallel()
	m, err := Load(writeManifest(t, `
[[star]]
name = "Sol"

[[star]]
name = "Proxima"
radius = 107000.0
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	u := solarsys.NewUniverse()
	m.Populate(u)

	sol := u.FindStar("Sol")
	if sol == nil {
		t.Fatal("Sol not registered")
	}
	if sol.Radius != astro.SolRadius {
		t.Errorf("unspecified radius = %v, want solar default", sol.Radius)
	}
	proxima := u.FindStar("Proxima")
	if proxima == nil || proxima.Radius != 107000 {
		t.Errorf("Proxima = %+v", proxima)
	}
}
