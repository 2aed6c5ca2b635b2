package materials

import "github.com/google/uuid"

// Texture is a tightly packed RGBA8 image, bottom-left origin.
type Texture struct {
	id            uuid.UUID
	Width, Height int
	Pixels        []byte

	disposed  bool
	onDispose []func(*Texture)
}

func NewTexture(width, height int, pixels []byte) *Texture {
	return &Texture{id: uuid.New(), Width: width, Height: height, Pixels: pixels}
}

func (t *Texture) ID() uuid.UUID { return t.id }

func (t *Texture) OnDispose(fn func(*Texture)) {
	t.onDispose = append(t.onDispose, fn)
}

func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	cbs := t.onDispose
	t.onDispose = nil
	for _, fn := range cbs {
		fn(t)
	}
}

func (t *Texture) Disposed() bool { return t.disposed }
