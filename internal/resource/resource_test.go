package resource

import (
	"fmt"
	"sync"
	"testing"
)

func TestHandleDeduplicates(t *testing.T) {
	t.Parallel()
	m := NewManager()

	earth := Info{Name: "earth.jpg", Path: "textures", Flags: WrapTexture}
	h1 := m.Handle(earth)
	h2 := m.Handle(earth)
	if h1 != h2 {
		t.Errorf("same reference got handles %d and %d", h1, h2)
	}
	if !h1.Valid() {
		t.Error("registered handle must be valid")
	}

	// Any parameter difference is a distinct asset.
	h3 := m.Handle(Info{Name: "earth.jpg", Path: "textures", Flags: WrapTexture | CompressTexture})
	if h3 == h1 {
		t.Error("different flags must yield a different handle")
	}
	h4 := m.Handle(Info{Name: "bump.png", Path: "textures", BumpHeight: 2.5})
	if h4 == h1 || h4 == h3 {
		t.Error("different name must yield a different handle")
	}

	if m.Len() != 3 {
		t.Errorf("Len()=%d, want 3", m.Len())
	}
}

func TestInfoRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewManager()

	want := Info{Name: "phobos.cmod", Path: "models", BumpHeight: 0}
	h := m.Handle(want)

	got, ok := m.Info(h)
	if !ok {
		t.Fatalf("Info(%d) not found", h)
	}
	if got != want {
		t.Errorf("Info(%d)=%+v, want %+v", h, got, want)
	}

	if _, ok := m.Info(Invalid); ok {
		t.Error("Info(Invalid) must report not found")
	}
	if _, ok := m.Info(Handle(99)); ok {
		t.Error("Info of unregistered handle must report not found")
	}
}

func TestZeroHandleInvalid(t *testing.T) {
	t.Parallel()
	var h Handle
	if h.Valid() {
		t.Error("zero handle must be invalid")
	}
}

func TestHandleConcurrent(t *testing.T) {
	t.Parallel()
	m := NewManager()

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	handles := make([][]Handle, workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				info := Info{Name: fmt.Sprintf("tex%d.jpg", i), Flags: WrapTexture}
				handles[w] = append(handles[w], m.Handle(info))
			}
		}(w)
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Fatalf("Len()=%d, want 20", m.Len())
	}
	for w := 1; w < workers; w++ {
		for i := 0; i < 20; i++ {
			if handles[w][i] != handles[0][i] {
				t.Fatalf("worker %d asset %d got handle %d, want %d",
					w, i, handles[w][i], handles[0][i])
			}
		}
	}
}
