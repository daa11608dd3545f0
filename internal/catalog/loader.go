package catalog

import (
	"fmt"
	"io"

	"github.com/LBV2012-26/Celestia/internal/parser"
	"github.com/LBV2012-26/Celestia/internal/resource"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// Disposition selects how a catalog entry merges against existing state.
type Disposition int

const (
	// DispositionAdd inserts a new entity, even when a same-named sibling
	// already exists.
	DispositionAdd Disposition = iota
	// DispositionReplace substitutes a fresh entity for an existing one in
	// the same collection slot.
	DispositionReplace
	// DispositionModify mutates an existing entity in place, touching only
	// the fields the entry supplies.
	DispositionModify
)

// String returns the catalog keyword for the disposition.
func (d Disposition) String() string {
	switch d {
	case DispositionReplace:
		return "Replace"
	case DispositionModify:
		return "Modify"
	default:
		return "Add"
	}
}

// Options configures a Loader.
type Options struct {
	// MaxFrameDepth bounds reference frame nesting; deeper chains are
	// rejected as probable cycles.
	MaxFrameDepth int

	// DefaultAlbedo is assigned to freshly constructed bodies.
	DefaultAlbedo float64

	// BaseDir is the directory the catalog file was loaded from, used to
	// resolve relative texture, mesh, and InfoURL references.
	BaseDir string
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{
		MaxFrameDepth: 50,
		DefaultAlbedo: 0.5,
	}
}

// Stats counts what one load did to the universe.
type Stats struct {
	Bodies          int // bodies and reference points inserted or modified
	Locations       int
	AltSurfaces     int
	RejectedEntries int
}

// Loader reads solar system catalog entries from a stream and applies them
// to a universe. Loads are synchronous and single-threaded; the universe
// must not be read concurrently while a load is in progress.
type Loader struct {
	universe *solarsys.Universe
	textures *resource.Manager
	meshes   *resource.Manager
	rep      *Reporter
	opts     Options
	stats    Stats
}

// NewLoader returns a Loader applying entries to u. Diagnostics stream
// through rep; texture and mesh references are registered with the two
// resource managers.
func NewLoader(u *solarsys.Universe, textures, meshes *resource.Manager, rep *Reporter, opts Options) *Loader {
	if opts.MaxFrameDepth <= 0 {
		opts.MaxFrameDepth = DefaultOptions().MaxFrameDepth
	}
	return &Loader{
		universe: u,
		textures: textures,
		meshes:   meshes,
		rep:      rep,
		opts:     opts,
	}
}

// Stats returns counters accumulated across all Load calls on this Loader.
func (ld *Loader) Stats() Stats { return ld.stats }

// Load consumes the entire catalog stream, applying each entry in order.
// Structural errors (malformed token sequences) abort the load and are
// returned wrapping ErrParse; the universe keeps whatever earlier entries
// committed. Semantic errors reject only the offending entry: a diagnostic
// is emitted through the Reporter and the load continues.
func (ld *Loader) Load(r io.Reader) error {
	tok := parser.NewTokenizer(r)
	p := parser.NewParser(tok)

	for tok.NextToken() != parser.TokenEnd {
		disp := DispositionAdd
		if tok.Kind() == parser.TokenName {
			switch tok.Name() {
			case "Add":
				tok.NextToken()
			case "Replace":
				disp = DispositionReplace
				tok.NextToken()
			case "Modify":
				disp = DispositionModify
				tok.NextToken()
			}
		}

		itemType := "Body"
		if tok.Kind() == parser.TokenName {
			itemType = tok.Name()
			tok.NextToken()
		}

		if tok.Kind() != parser.TokenString {
			return fmt.Errorf("%w: line %d: object name expected", ErrParse, tok.Line())
		}
		name := tok.Text()

		if tok.NextToken() != parser.TokenString {
			return fmt.Errorf("%w: line %d: parent name of %q expected", ErrParse, tok.Line(), name)
		}
		parentName := tok.Text()
		line := tok.Line()

		v, err := p.ReadValue()
		if err != nil {
			return fmt.Errorf("%w: line %d: bad definition of %q: %v", ErrParse, tok.Line(), name, err)
		}
		if v.Kind() != parser.MapValue {
			return fmt.Errorf("%w: line %d: definition of %q must be a property group", ErrParse, tok.Line(), name)
		}
		data := v.Map()

		ld.loadEntry(disp, itemType, name, parentName, data, line)
	}

	if err := tok.Err(); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrParse, tok.Line(), err)
	}
	return nil
}

// loadEntry applies one parsed catalog entry. All failures here are
// semantic: they reject the entry with a diagnostic and return.
func (ld *Loader) loadEntry(disp Disposition, itemType, name, parentName string, data *parser.Map, line int) {
	parent := ld.universe.FindPath(parentName)

	switch itemType {
	case "Body", "ReferencePoint":
		ld.loadBody(disp, itemType, name, parentName, parent, data, line)

	case "AltSurface":
		if parent.Body == nil {
			ld.rep.Errorf(line, "parent body %q of alternate surface %q not found", parentName, name)
			ld.stats.RejectedEntries++
			return
		}
		surf := solarsys.DefaultSurface()
		ld.fillSurface(data, &surf)
		parent.Body.AddAlternateSurface(name, &surf)
		ld.stats.AltSurfaces++

	case "Location":
		if parent.Body == nil {
			ld.rep.Errorf(line, "parent body %q of location %q not found", parentName, name)
			ld.stats.RejectedEntries++
			return
		}
		loc := buildLocation(data, parent.Body)
		loc.SetName(name)
		parent.Body.AddLocation(loc)
		ld.stats.Locations++

	default:
		ld.rep.Errorf(line, "unknown item type %q for object %q", itemType, name)
		ld.stats.RejectedEntries++
	}
}

func (ld *Loader) loadBody(disp Disposition, itemType, name, parentName string,
	parent solarsys.Selection, data *parser.Map, line int) {

	var parentSystem *solarsys.PlanetarySystem
	switch {
	case parent.Star != nil:
		parentSystem = ld.universe.CreateSolarSystem(parent.Star).Planets()
	case parent.Body != nil:
		parentSystem = parent.Body.GetOrCreateSatellites()
	default:
		ld.rep.Errorf(line, "parent body %q of %q not found", parentName, name)
		ld.stats.RejectedEntries++
		return
	}

	existing := parentSystem.Find(name)
	if existing != nil && disp == DispositionAdd {
		ld.rep.Warnf(line, "duplicate definition of %s %q", parentName, name)
	}
	if disp == DispositionModify && existing == nil {
		ld.rep.Errorf(line, "cannot modify %q in %s: no such object", name, parentName)
		ld.stats.RejectedEntries++
		return
	}

	// Replace builds a fresh body; only Modify works against the existing
	// one.
	target := existing
	if disp != DispositionModify {
		target = nil
	}

	var body *solarsys.Body
	var err error
	if itemType == "ReferencePoint" {
		body, err = ld.buildReferencePoint(disp, target, data, parentSystem)
	} else {
		body, err = ld.buildBody(disp, target, data, parentSystem)
	}
	if err != nil {
		ld.rep.Errorf(line, "%s of %q in %s rejected: %v", disp, name, parentName, err)
		ld.stats.RejectedEntries++
		return
	}

	body.SetName(name)
	switch {
	case disp == DispositionReplace && existing != nil:
		parentSystem.Replace(existing, body)
	case disp != DispositionModify:
		parentSystem.Add(body)
	}
	ld.stats.Bodies++
}
