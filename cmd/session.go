package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LBV2012-26/Celestia/internal/catalog"
	"github.com/LBV2012-26/Celestia/internal/config"
	"github.com/LBV2012-26/Celestia/internal/manifest"
	"github.com/LBV2012-26/Celestia/internal/resource"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
	"github.com/LBV2012-26/Celestia/internal/telemetry"
)

// session wires the pieces every subcommand needs: the manifest, a universe
// seeded with its stars, resource managers, a diagnostics reporter, and an
// optional telemetry emitter.
type session struct {
	cfg      config.Config
	man      *manifest.Manifest
	universe *solarsys.Universe
	textures *resource.Manager
	meshes   *resource.Manager
	rep      *catalog.Reporter
	emitter  *telemetry.Emitter
}

// newSession loads configuration and the manifest and seeds a fresh
// universe with the manifest's stars. Nothing is loaded yet.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg := config.Load()
	applyFlagOverrides(cmd, &cfg)

	man, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	if man.Defaults.MaxFrameDepth > 0 && !cmd.Flags().Changed("max-frame-depth") {
		cfg.MaxFrameDepth = man.Defaults.MaxFrameDepth
	}
	if man.Defaults.DefaultAlbedo > 0 && !cmd.Flags().Changed("default-albedo") {
		cfg.DefaultAlbedo = man.Defaults.DefaultAlbedo
	}

	var emitter *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		emitter, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
	}

	s := &session{
		cfg:      cfg,
		man:      man,
		textures: resource.NewManager(),
		meshes:   resource.NewManager(),
		rep:      catalog.NewReporter(os.Stderr, cfg.Color),
		emitter:  emitter,
	}
	s.reset()
	return s, nil
}

// reset replaces the universe with a fresh one holding only the manifest's
// stars. Used both at startup and on watch-triggered reloads.
func (s *session) reset() {
	s.universe = solarsys.NewUniverse()
	s.man.Populate(s.universe)
	s.rep = catalog.NewReporter(os.Stderr, s.cfg.Color)
}

func (s *session) close() {
	if err := s.emitter.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// catalogPaths returns the files named on the command line, or the
// manifest's catalog list when none were given.
func (s *session) catalogPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return s.man.CatalogPaths()
}

// loadAll loads each catalog file in order. A structural error in any file
// aborts and is returned; semantic errors accumulate in the reporter.
func (s *session) loadAll(paths []string) error {
	for _, path := range paths {
		if err := s.loadOne(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) loadOne(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	s.emitter.Emit(telemetry.Event{Kind: telemetry.KindLoadStart, Catalog: path})

	opts := catalog.Options{
		MaxFrameDepth: s.cfg.MaxFrameDepth,
		DefaultAlbedo: s.cfg.DefaultAlbedo,
		BaseDir:       filepath.Dir(path),
	}
	ld := catalog.NewLoader(s.universe, s.textures, s.meshes, s.rep, opts)

	firstDiag := len(s.rep.Diagnostics())
	err = ld.Load(f)
	stats := ld.Stats()
	for _, d := range s.rep.Diagnostics()[firstDiag:] {
		if d.Severity != catalog.SeverityError {
			continue
		}
		s.emitter.Emit(telemetry.Event{
			Kind:    telemetry.KindEntryRejected,
			Catalog: path,
			Data:    map[string]any{"line": d.Line, "message": d.Message},
		})
	}
	s.emitter.Emit(telemetry.Event{
		Kind:    telemetry.KindLoadDone,
		Catalog: path,
		Data: map[string]any{
			"bodies":    stats.Bodies,
			"locations": stats.Locations,
			"surfaces":  stats.AltSurfaces,
			"rejected":  stats.RejectedEntries,
			"errors":    s.rep.ErrorCount(),
			"warnings":  s.rep.WarningCount(),
			"ok":        err == nil,
		},
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if s.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "%s: %d bodies, %d locations, %d surfaces, %d rejected\n",
			path, stats.Bodies, stats.Locations, stats.AltSurfaces, stats.RejectedEntries)
	}
	return nil
}

// applyFlagOverrides copies explicitly set CLI flags over config values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
	if m, _ := rootCmd.PersistentFlags().GetString("manifest"); m != "" {
		cfg.Manifest = m
	}
	if cmd.Flags().Changed("max-frame-depth") {
		cfg.MaxFrameDepth, _ = cmd.Flags().GetInt("max-frame-depth")
	}
	if cmd.Flags().Changed("default-albedo") {
		cfg.DefaultAlbedo, _ = cmd.Flags().GetFloat64("default-albedo")
	}
	if cmd.Flags().Changed("telemetry") {
		cfg.TelemetryPath, _ = cmd.Flags().GetString("telemetry")
	}
	if cmd.Flags().Changed("no-color") {
		if nc, _ := cmd.Flags().GetBool("no-color"); nc {
			cfg.Color = false
		}
	}
}

// addLoaderFlags registers the flags shared by every command that performs
// a load.
func addLoaderFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-frame-depth", 0, "override maximum reference frame nesting depth")
	cmd.Flags().Float64("default-albedo", 0, "override default body albedo")
	cmd.Flags().String("telemetry", "", "append JSONL load telemetry to this file")
	cmd.Flags().Bool("no-color", false, "disable colored diagnostics")
}
