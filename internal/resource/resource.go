// Package resource provides opaque handle registries for external assets
// (textures, meshes). The catalog engine records which assets a body refers
// to but never loads or decodes them; a renderer resolves handles later.
package resource

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Flags control how a texture asset should be treated by a consumer.
type Flags uint32

const (
	WrapTexture Flags = 1 << iota
	AllowSplitting
	CompressTexture
	NoMipMaps
)

// Handle identifies a registered asset. The zero Handle is invalid.
type Handle int

// Invalid is the zero, never-registered handle.
const Invalid Handle = 0

// Valid reports whether the handle refers to a registered asset.
func (h Handle) Valid() bool { return h != Invalid }

// Info describes a registered asset: its identifier, the base path it was
// referenced from, and reference parameters.
type Info struct {
	Name       string
	Path       string
	Flags      Flags
	BumpHeight float64    // bump-map textures only
	Center     mgl64.Vec3 // meshes only
}

// Manager deduplicates asset references: the same (name, path, parameters)
// tuple always yields the same handle. It is safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	handles map[Info]Handle
	infos   []Info // infos[h-1] is the Info for handle h
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{handles: make(map[Info]Handle)}
}

// Handle registers an asset reference and returns its handle, reusing the
// existing handle for a previously seen reference.
func (m *Manager) Handle(info Info) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[info]; ok {
		return h
	}
	m.infos = append(m.infos, info)
	h := Handle(len(m.infos))
	m.handles[info] = h
	return h
}

// Info returns the description of a registered handle.
func (m *Manager) Info(h Handle) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h <= 0 || int(h) > len(m.infos) {
		return Info{}, false
	}
	return m.infos[h-1], true
}

// Len returns the number of registered assets.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.infos)
}
