package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/google/uuid"
	"github.com/hubastard/grove3d/engine/materials"
)

// textureCache uploads material textures on first use and frees them when
// the texture is disposed.
type textureCache struct {
	ids map[uuid.UUID]uint32

	upload func(*materials.Texture) uint32
	use    func(unit, id uint32)
	free   func(id uint32)
}

func newTextureCache() *textureCache {
	return &textureCache{
		ids:    make(map[uuid.UUID]uint32),
		upload: upload,
		use:    useTexture,
		free:   freeTexture,
	}
}

// bind makes tex current on unit. A disposed texture is never uploaded, the
// unit is bound to nothing instead.
func (c *textureCache) bind(unit uint32, tex *materials.Texture) {
	if tex.Disposed() {
		c.use(unit, 0)
		return
	}
	id, ok := c.ids[tex.ID()]
	if !ok {
		id = c.upload(tex)
		c.ids[tex.ID()] = id
		tex.OnDispose(c.release)
	}
	c.use(unit, id)
}

func useTexture(unit, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func freeTexture(id uint32) { gl.DeleteTextures(1, &id) }

func upload(tex *materials.Texture) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if len(tex.Pixels) >= tex.Width*tex.Height*4 && tex.Width > 0 && tex.Height > 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(tex.Width), int32(tex.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	return id
}

func (c *textureCache) release(tex *materials.Texture) {
	id, ok := c.ids[tex.ID()]
	if !ok {
		return
	}
	delete(c.ids, tex.ID())
	c.free(id)
}

func (c *textureCache) clear() {
	for key, id := range c.ids {
		c.free(id)
		delete(c.ids, key)
	}
}
