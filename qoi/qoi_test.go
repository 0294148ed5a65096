package qoi_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	xqoi "github.com/xfmoulet/qoi"

	"github.com/TommyGymer/LW-Photo-Viewer/qoi"
)

func TestConst(t *testing.T) {
	exp := []byte{
		0x00,
		0x40,
		0x80,
		0xc0,
		0xfe,
		0xff,
	}
	for i, v := range []byte{
		byte(qoi.Index),
		byte(qoi.Diff),
		byte(qoi.Luma),
		byte(qoi.Run),
		byte(qoi.RGB),
		byte(qoi.RGBA),
	} {
		if v != exp[i] {
			t.Errorf("\ngot: %x\nexp: %x", v, exp[i])
		}
	}
}

// gradient exercises every chunk type: long runs, small diffs, luma diffs,
// index hits and full literals.
func gradient(w, h int, alpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 255}
			switch {
			case y%4 == 0:
				c.R, c.G, c.B = 200, 10, 10
			case y%4 == 1:
				c.R, c.G, c.B = uint8(x), uint8(x), uint8(x)
			case y%4 == 2:
				c.R, c.G, c.B = uint8(x*7), uint8(x*5), uint8(x*3)
			default:
				c.R, c.G, c.B = uint8(x*31^y), uint8(x*17), uint8(y*13)
			}
			if alpha && x%3 == 0 {
				c.A = uint8(x * 11)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func packed(img *image.NRGBA, channels int) []byte {
	var out []byte
	for i := 0; i < len(img.Pix); i += 4 {
		out = append(out, img.Pix[i:i+channels]...)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		channels uint8
		alpha    bool
	}{
		{"rgb", 3, false},
		{"rgba", 4, true},
		{"rgba_opaque", 4, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			src := gradient(150, 9, tc.alpha)

			var buf bytes.Buffer
			err := qoi.Encode(&buf, src, &qoi.Options{Channels: tc.channels})
			if err != nil {
				t.Fatal(err)
			}

			h, pix, err := qoi.DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatal(err)
			}
			if h.Width != 150 || h.Height != 9 || h.Channels != tc.channels {
				t.Fatalf("header: got %+v", h)
			}
			if diff := cmp.Diff(packed(src, int(tc.channels)), pix); diff != "" {
				t.Errorf("pixels mismatch (-want +got):\n%s", diff)
			}

			img, err := qoi.Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			want := src.Pix
			if tc.channels == 3 {
				want = gradient(150, 9, false).Pix
			}
			if diff := cmp.Diff(want, img.(*image.NRGBA).Pix); diff != "" {
				t.Errorf("image mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeReferenceEncoder(t *testing.T) {
	src := gradient(97, 13, false)

	var buf bytes.Buffer
	if err := xqoi.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	h, pix, err := qoi.DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if h.Channels != 4 {
		t.Fatalf("channels: got %d, want 4", h.Channels)
	}
	if diff := cmp.Diff(src.Pix, pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, gradient(5, 3, false), nil); err != nil {
		t.Fatal(err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if format != "qoi" || cfg.Width != 5 || cfg.Height != 3 {
		t.Errorf("got %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestDecodeErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, gradient(40, 4, true), nil); err != nil {
		t.Fatal(err)
	}
	valid := buf.Bytes()

	badMagic := append([]byte("qoix"), valid[4:]...)

	badChannels := append([]byte(nil), valid...)
	badChannels[12] = 2

	zeroWidth := append([]byte(nil), valid...)
	copy(zeroWidth[4:8], []byte{0, 0, 0, 0})

	huge := append([]byte(nil), valid[:qoi.HeaderSize]...)
	copy(huge[4:12], []byte{0, 0, 0x40, 0, 0, 0, 0x40, 0})
	huge = append(huge, qoi.EndMarker[:]...)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short_header", valid[:8]},
		{"bad_magic", badMagic},
		{"bad_channels", badChannels},
		{"zero_width", zeroWidth},
		{"truncated", valid[:len(valid)/2]},
		{"huge", huge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := qoi.DecodeBytes(tc.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !qoi.IsFormatError(err) {
				t.Errorf("expected format error, got %v", err)
			}
		})
	}
}

func TestDecodeTruncatedReader(t *testing.T) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, gradient(64, 64, false), nil); err != nil {
		t.Fatal(err)
	}
	_, err := qoi.Decode(io.LimitReader(&buf, 40))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}
