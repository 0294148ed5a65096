package photoviewer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/TommyGymer/LW-Photo-Viewer/qoi"
)

// testPattern fills a w×h image with a deterministic, non-uniform pattern.
// With alpha set, every third column is translucent.
func testPattern(w, h int, alpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: 255,
			}
			if alpha && x%3 == 0 {
				c.A = uint8(x*5 + y)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// opaqueRGBA converts an opaque NRGBA pattern into an *image.RGBA, which the
// PNG encoder writes as truecolor without alpha.
func opaqueRGBA(src *image.NRGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

func encodeQOI(t *testing.T, img image.Image, channels uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, qoi.Encode(&buf, img, &qoi.Options{Channels: channels}))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// nrgbaPixels flattens an NRGBA image into the pipeline's pixel form.
func nrgbaPixels(img *image.NRGBA) []color.NRGBA {
	b := img.Bounds()
	out := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, img.NRGBAAt(x, y))
		}
	}
	return out
}
