package assets

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/hubastard/grove3d/engine/materials"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadTexture decodes a PNG, JPEG, BMP, TIFF or WebP file into a texture.
func LoadTexture(path string) (*materials.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	tex, err := DecodeTexture(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %q", path)
	}
	return tex, nil
}

// DecodeTexture returns tightly packed RGBA8 pixels flipped vertically to
// match OpenGL's bottom-left origin.
func DecodeTexture(r io.Reader) (*materials.Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	rgba := imageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	out := make([]byte, w*h*4)
	row := w * 4
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+row]
		copy(out[(h-1-y)*row:(h-y)*row], src)
	}
	return materials.NewTexture(w, h, out), nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
