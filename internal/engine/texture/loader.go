package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Loader loads image files and uploads them as OpenGL textures.
// Loaded textures are cached by path so repeated bones sharing an
// image get the same texture ID.
type Loader struct {
	baseDir string
	cache   map[string]uint32
}

// NewLoader creates a loader resolving relative paths against baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		baseDir: baseDir,
		cache:   make(map[string]uint32),
	}
}

// Load decodes the image at path and returns its GL texture ID.
// TGA files use the built-in decoder; PNG and JPEG go through image.Decode.
func (l *Loader) Load(path string) (uint32, error) {
	if id, ok := l.cache[path]; ok {
		return id, nil
	}

	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return 0, fmt.Errorf("read texture: %w", err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(full), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return 0, fmt.Errorf("decode texture %s: %w", path, err)
	}

	id := Upload(ImageToRGBA(img))
	l.cache[path] = id
	return id, nil
}

// Upload creates a GL texture from an RGBA image and returns its ID.
func Upload(rgba *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	bounds := rgba.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Destroy releases every loaded texture.
func (l *Loader) Destroy() {
	for _, id := range l.cache {
		gl.DeleteTextures(1, &id)
	}
	l.cache = make(map[string]uint32)
}
