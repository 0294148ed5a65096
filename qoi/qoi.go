// Package qoi implements a decoder and encoder for the "Quite OK Image"
// format. Besides the image.Image based API, DecodeBytes returns the raw
// pixel bytes packed with the channel count recorded in the header, which is
// what the viewer's normalization pipeline consumes.
package qoi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const Magic = "qoif"

type ChunkType byte

const (
	Index ChunkType = 0x00
	Diff  ChunkType = 0x40
	Luma  ChunkType = 0x80
	Run   ChunkType = 0xc0
	RGB   ChunkType = 0xfe
	RGBA  ChunkType = 0xff
)

type Mask byte

const Mask2 Mask = 0xc0

type ColorSpace byte

const (
	ColorSpaceSRGB   ColorSpace = 0x00
	ColorSpaceLinear ColorSpace = 0x01
)

const HeaderSize = 14

// EndMarker terminates every stream.
var EndMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// MaxPixels bounds width*height so a forged header cannot force a huge
// allocation.
const MaxPixels = 400_000_000

// maxRun is the longest run a single Run chunk can encode.
const maxRun = 62

// A FormatError reports that the input is not a valid QOI image.
type FormatError string

func (e FormatError) Error() string {
	return "qoi: invalid format: " + string(e)
}

// Header is the fixed 14 byte QOI file header.
type Header struct {
	Magic      [4]byte
	Width      uint32
	Height     uint32
	Channels   uint8
	ColorSpace uint8
}

func parseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, io.ErrUnexpectedEOF
	}
	copy(h.Magic[:], b[:4])
	h.Width = binary.BigEndian.Uint32(b[4:8])
	h.Height = binary.BigEndian.Uint32(b[8:12])
	h.Channels = b[12]
	h.ColorSpace = b[13]
	return h, h.validate()
}

func (h Header) validate() error {
	if string(h.Magic[:]) != Magic {
		return FormatError("bad header magic value")
	}
	if h.Height == 0 || h.Width == 0 {
		return FormatError("bad header height or width")
	}
	if uint64(h.Width)*uint64(h.Height) > MaxPixels {
		return FormatError("image too large")
	}
	if h.Channels < 3 || h.Channels > 4 {
		return FormatError("bad header channels")
	}
	if ColorSpace(h.ColorSpace) > ColorSpaceLinear {
		return FormatError("bad header color space")
	}
	return nil
}

func colorHash(c color.NRGBA) uint8 {
	return (c.R*3 + c.G*5 + c.B*7 + c.A*11) % 64
}

// DecodeBytes decodes a complete QOI stream held in memory. The returned
// pixels are packed row-major with h.Channels bytes per pixel, so their
// length is always Width*Height*Channels.
func DecodeBytes(data []byte) (Header, []byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return h, nil, err
	}

	n := int(h.Width) * int(h.Height)
	body := data[HeaderSize:]
	// Every chunk is at least one byte and covers at most maxRun pixels.
	if len(body) < (n+maxRun-1)/maxRun {
		return h, nil, io.ErrUnexpectedEOF
	}

	channels := int(h.Channels)
	pixels := make([]byte, n*channels)

	pix := color.NRGBA{A: 255}
	seen := [64]color.NRGBA{}
	run := 0
	p := 0

	for out := 0; out < len(pixels); out += channels {
		if run > 0 {
			run--
		} else {
			if p >= len(body) {
				return h, nil, io.ErrUnexpectedEOF
			}
			b := body[p]
			p++

			switch {
			case b == byte(RGB):
				if p+3 > len(body) {
					return h, nil, io.ErrUnexpectedEOF
				}
				pix.R, pix.G, pix.B = body[p], body[p+1], body[p+2]
				p += 3
			case b == byte(RGBA):
				if p+4 > len(body) {
					return h, nil, io.ErrUnexpectedEOF
				}
				pix = color.NRGBA{R: body[p], G: body[p+1], B: body[p+2], A: body[p+3]}
				p += 4
			case b&byte(Mask2) == byte(Index):
				pix = seen[b]
			case b&byte(Mask2) == byte(Diff):
				pix.R += ((b >> 4) & 0x03) - 2
				pix.G += ((b >> 2) & 0x03) - 2
				pix.B += (b & 0x03) - 2
			case b&byte(Mask2) == byte(Luma):
				if p >= len(body) {
					return h, nil, io.ErrUnexpectedEOF
				}
				b2 := body[p]
				p++
				dg := (b & 0x3f) - 32
				pix.R += dg - 8 + (b2 >> 4)
				pix.G += dg
				pix.B += dg - 8 + (b2 & 0x0f)
			case b&byte(Mask2) == byte(Run):
				run = int(b & 0x3f)
			}
			seen[colorHash(pix)] = pix
		}

		pixels[out] = pix.R
		pixels[out+1] = pix.G
		pixels[out+2] = pix.B
		if channels == 4 {
			pixels[out+3] = pix.A
		}
	}

	return h, pixels, nil
}

// Decode reads a QOI image from r. The result is always an *image.NRGBA;
// 3 channel images come back fully opaque.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	h, pixels, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(h.Width), int(h.Height)))
	if h.Channels == 4 {
		copy(img.Pix, pixels)
		return img, nil
	}
	for i, j := 0, 0; i < len(pixels); i, j = i+3, j+4 {
		img.Pix[j] = pixels[i]
		img.Pix[j+1] = pixels[i+1]
		img.Pix[j+2] = pixels[i+2]
		img.Pix[j+3] = 255
	}
	return img, nil
}

// DecodeConfig returns the dimensions of a QOI image without decoding the
// pixel data. The color model is color.NRGBAModel whatever the channel count.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return image.Config{}, err
	}
	h, err := parseHeader(b[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

type Options struct {
	Channels   uint8
	ColorSpace ColorSpace
}

// Encode writes img to w in QOI format. A nil o encodes 4 channel sRGB.
// With 3 channels the alpha of every pixel is treated as opaque.
func Encode(w io.Writer, img image.Image, o *Options) error {
	if o == nil {
		o = &Options{
			Channels:   4,
			ColorSpace: ColorSpaceSRGB,
		}
	}

	bounds := img.Bounds()
	minX, maxX := bounds.Min.X, bounds.Max.X
	minY, maxY := bounds.Min.Y, bounds.Max.Y

	m := (*[4]byte)([]byte(Magic))
	h := Header{
		Magic:      *m,
		Width:      uint32(maxX - minX),
		Height:     uint32(maxY - minY),
		Channels:   o.Channels,
		ColorSpace: uint8(o.ColorSpace),
	}
	if err := h.validate(); err != nil {
		return err
	}

	buf := bufio.NewWriter(w)

	err := binary.Write(buf, binary.BigEndian, h)
	if err != nil {
		return err
	}

	run := 0
	prev := color.NRGBA{A: 255}
	seen := [64]color.NRGBA{}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			pix := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if o.Channels == 3 {
				pix.A = 255
			}
			lastPx := x == maxX-1 && y == maxY-1

			if pix == prev {
				run++
				if run == maxRun || lastPx {
					if err = buf.WriteByte(byte(Run) | byte(run-1)); err != nil {
						return fmt.Errorf("encode: run: %w", err)
					}
					run = 0
				}
				continue
			}

			if run > 0 {
				if err = buf.WriteByte(byte(Run) | byte(run-1)); err != nil {
					return fmt.Errorf("encode: run: %w", err)
				}
				run = 0
			}

			pos := colorHash(pix)
			switch {
			case seen[pos] == pix:
				err = buf.WriteByte(byte(Index) | pos)
			case pix.A != prev.A:
				seen[pos] = pix
				_, err = buf.Write([]byte{byte(RGBA), pix.R, pix.G, pix.B, pix.A})
			default:
				seen[pos] = pix

				Δr := int8(pix.R - prev.R)
				Δg := int8(pix.G - prev.G)
				Δb := int8(pix.B - prev.B)
				Δrg := Δr - Δg
				Δbg := Δb - Δg

				switch {
				case Δr > -3 && Δr < 2 && Δg > -3 && Δg < 2 && Δb > -3 && Δb < 2:
					err = buf.WriteByte(byte(Diff) | byte(Δr+2)<<4 | byte(Δg+2)<<2 | byte(Δb+2))
				case Δrg > -9 && Δrg < 8 && Δg > -33 && Δg < 32 && Δbg > -9 && Δbg < 8:
					_, err = buf.Write([]byte{
						byte(Luma) | byte(Δg+32),
						byte(Δrg+8)<<4 | byte(Δbg+8),
					})
				default:
					_, err = buf.Write([]byte{byte(RGB), pix.R, pix.G, pix.B})
				}
			}
			if err != nil {
				return err
			}
			prev = pix
		}
	}

	if _, err = buf.Write(EndMarker[:]); err != nil {
		return err
	}
	return buf.Flush()
}

// IsFormatError reports whether err came from a malformed stream rather
// than an I/O failure.
func IsFormatError(err error) bool {
	var fe FormatError
	return errors.As(err, &fe) || errors.Is(err, io.ErrUnexpectedEOF)
}

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}
