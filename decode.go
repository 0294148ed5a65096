package photoviewer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	"image/png"

	"github.com/gen2brain/jpegn"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/TommyGymer/LW-Photo-Viewer/qoi"
)

// decodeFunc turns the raw bytes of one file into a validated frame. ext is
// only used as error context.
type decodeFunc func(data []byte, ext string) (*Frame, error)

// decodeJPEG always yields an RGB frame.
func decodeJPEG(data []byte, ext string) (*Frame, error) {
	img, err := jpegn.Decode(bytes.NewReader(data), &jpegn.Options{ToRGBA: true})
	if err != nil {
		return nil, newError(Decoding, ext, err)
	}
	b := img.Bounds()
	return NewFrame(b.Dx(), b.Dy(), RGB, pack(img, 3), ext)
}

// PNG color types from the IHDR chunk.
const (
	pngGrayscale      = 0
	pngTruecolor      = 2
	pngIndexed        = 3
	pngGrayscaleAlpha = 4
	pngTruecolorAlpha = 6
)

const pngSignature = "\x89PNG\r\n\x1a\n"

type pngHeader struct {
	width, height int
	depth         uint8
	colorType     uint8
}

// readPNGHeader parses the IHDR chunk, which must directly follow the
// signature.
func readPNGHeader(data []byte) (pngHeader, error) {
	var h pngHeader
	if len(data) < len(pngSignature) || string(data[:len(pngSignature)]) != pngSignature {
		return h, png.FormatError("not a PNG file")
	}
	ihdr := data[len(pngSignature):]
	if len(ihdr) < 8+13 || string(ihdr[4:8]) != "IHDR" || binary.BigEndian.Uint32(ihdr[:4]) != 13 {
		return h, png.FormatError("missing IHDR")
	}
	ihdr = ihdr[8:]
	h.width = int(binary.BigEndian.Uint32(ihdr[0:4]))
	h.height = int(binary.BigEndian.Uint32(ihdr[4:8]))
	h.depth = ihdr[8]
	h.colorType = ihdr[9]
	return h, nil
}

func pngColorTypeName(ct uint8) string {
	switch ct {
	case pngGrayscale:
		return "grayscale"
	case pngTruecolor:
		return "truecolor"
	case pngIndexed:
		return "indexed"
	case pngGrayscaleAlpha:
		return "grayscale+alpha"
	case pngTruecolorAlpha:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("color type %d", ct)
}

// decodePNG yields an RGB frame for truecolor images and an RGBA frame for
// truecolor+alpha. Every other color type is rejected before the pixel data
// is decoded. 16 bit samples keep their high byte.
func decodePNG(data []byte, ext string) (*Frame, error) {
	h, err := readPNGHeader(data)
	if err != nil {
		return nil, newError(Decoding, ext, err)
	}

	var layout ChannelLayout
	switch h.colorType {
	case pngTruecolor:
		layout = RGB
	case pngTruecolorAlpha:
		layout = RGBA
	default:
		return nil, newError(UnsupportedColorType, ext,
			fmt.Errorf("%s png is not supported", pngColorTypeName(h.colorType)))
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError(Decoding, ext, err)
	}
	return NewFrame(h.width, h.height, layout, pack(img, layout.Channels()), ext)
}

// decodeQOI takes its layout from the channel count in the QOI header.
func decodeQOI(data []byte, ext string) (*Frame, error) {
	h, pix, err := qoi.DecodeBytes(data)
	if err != nil {
		return nil, newError(Decoding, ext, err)
	}
	layout := RGB
	if h.Channels == 4 {
		layout = RGBA
	}
	return NewFrame(int(h.Width), int(h.Height), layout, pix, ext)
}

// decodeAny sniffs the format from the registered image decoders and always
// yields an RGBA frame.
func decodeAny(data []byte, ext string) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError(UnsupportedFormat, ext, err)
	}
	b := img.Bounds()
	return NewFrame(b.Dx(), b.Dy(), RGBA, pack(img, 4), ext)
}

// pack returns the pixels of img as straight alpha bytes, channels (3 or 4)
// per pixel, rows packed without padding. The common decoder outputs are
// read directly; anything else is drawn into an NRGBA first.
func pack(img image.Image, channels int) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		return packRows(src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, w, h, 1, channels)
	case *image.NRGBA64:
		return packRows(src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, w, h, 2, channels)
	case *image.RGBA:
		// RGB decoders only hand back opaque RGBA images.
		if channels == 3 {
			return packRows(src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, w, h, 1, channels)
		}
	case *image.RGBA64:
		if channels == 3 {
			return packRows(src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, w, h, 2, channels)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return packRows(dst.Pix, dst.Stride, w, h, 1, channels)
}

// packRows copies the first channels samples of every 4 sample pixel,
// keeping the most significant byte of each sample.
func packRows(pix []byte, stride, w, h, sampleBytes, channels int) []byte {
	out := make([]byte, w*h*channels)
	pixelBytes := 4 * sampleBytes
	o := 0
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*pixelBytes]
		for x := 0; x < len(row); x += pixelBytes {
			for c := 0; c < channels; c++ {
				out[o] = row[x+c*sampleBytes]
				o++
			}
		}
	}
	return out
}
