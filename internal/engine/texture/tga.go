// Package texture decodes bone images and uploads them as OpenGL textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	tgaTypeTrueColor = 2  // Uncompressed true-color
	tgaTypeRLE       = 10 // RLE compressed true-color
)

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, fmt.Errorf("TGA data too short")
	}

	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		// Bit 5 of the descriptor means rows are stored top-to-bottom.
		topToBottom: data[17]&0x20 != 0,
	}

	if h.colorMapType != 0 {
		return tgaHeader{}, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != tgaTypeTrueColor && h.imageType != tgaTypeRLE {
		return tgaHeader{}, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return tgaHeader{}, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}

	return h, nil
}

// DecodeTGA decodes a TGA image.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10)
// files at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := 18 + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixels := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))

	if h.imageType == tgaTypeTrueColor {
		if err := decodeTGARaw(img, pixels, h); err != nil {
			return nil, err
		}
	} else {
		decodeTGARLE(img, pixels, h)
	}

	return img, nil
}

// readBGRA reads one pixel stored as BGR or BGRA.
func readBGRA(data []byte, i, bytesPerPixel int) color.RGBA {
	c := color.RGBA{R: data[i+2], G: data[i+1], B: data[i], A: 255}
	if bytesPerPixel == 4 {
		c.A = data[i+3]
	}
	return c
}

func destRow(y int, h tgaHeader) int {
	if h.topToBottom {
		return y
	}
	return h.height - 1 - y
}

func decodeTGARaw(img *image.RGBA, pixels []byte, h tgaHeader) error {
	bytesPerPixel := h.bpp / 8
	if len(pixels) < h.width*h.height*bytesPerPixel {
		return fmt.Errorf("TGA pixel data truncated")
	}

	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			i := (y*h.width + x) * bytesPerPixel
			img.SetRGBA(x, destRow(y, h), readBGRA(pixels, i, bytesPerPixel))
		}
	}
	return nil
}

// decodeTGARLE decodes RLE packets. Truncated data stops the decode and
// leaves the remaining pixels transparent rather than failing the load.
func decodeTGARLE(img *image.RGBA, pixels []byte, h tgaHeader) {
	bytesPerPixel := h.bpp / 8
	pixelCount := h.width * h.height
	pixelIdx := 0
	dataIdx := 0

	setNext := func(c color.RGBA) {
		x := pixelIdx % h.width
		y := pixelIdx / h.width
		img.SetRGBA(x, destRow(y, h), c)
		pixelIdx++
	}

	for pixelIdx < pixelCount && dataIdx < len(pixels) {
		packet := pixels[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel value repeated count times.
			if dataIdx+bytesPerPixel > len(pixels) {
				return
			}
			c := readBGRA(pixels, dataIdx, bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				setNext(c)
			}
		} else {
			// Raw packet: count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bytesPerPixel > len(pixels) {
					return
				}
				setNext(readBGRA(pixels, dataIdx, bytesPerPixel))
				dataIdx += bytesPerPixel
			}
		}
	}
}

// ImageToRGBA converts any image.Image to *image.RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			})
		}
	}
	return rgba
}
