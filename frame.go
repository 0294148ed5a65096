package photoviewer

import "fmt"

// ChannelLayout is the count and meaning of the per-pixel components of a
// decoded frame.
type ChannelLayout int

const (
	Grayscale ChannelLayout = iota + 1
	RGB
	RGBA
)

// Channels returns the number of bytes per pixel, or 0 for an unknown layout.
func (l ChannelLayout) Channels() int {
	switch l {
	case Grayscale:
		return 1
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

func (l ChannelLayout) String() string {
	switch l {
	case Grayscale:
		return "gray"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("ChannelLayout(%d)", int(l))
}

// Frame is the raw output of a format decoder: packed, row-major pixel bytes
// with a known layout. Frames are built with NewFrame, which guarantees
// len(pix) == width*height*channels.
type Frame struct {
	width, height int
	layout        ChannelLayout
	pix           []byte
}

// NewFrame wraps pix as a frame of the given geometry. Only RGB and RGBA
// layouts are accepted. ext names the source format in the returned error.
func NewFrame(width, height int, layout ChannelLayout, pix []byte, ext string) (*Frame, error) {
	if layout != RGB && layout != RGBA {
		return nil, newError(UnsupportedColorType, ext, fmt.Errorf("%s frames are not supported", layout))
	}
	if width < 0 || height < 0 {
		return nil, newError(MalformedBuffer, ext, fmt.Errorf("negative size %dx%d", width, height))
	}
	want := uint64(width) * uint64(height) * uint64(layout.Channels())
	if uint64(len(pix)) != want {
		return nil, newError(MalformedBuffer, ext,
			fmt.Errorf("raw image bytes did not fit the image container: have %d bytes, %dx%d %s needs %d",
				len(pix), width, height, layout, want))
	}
	return &Frame{width: width, height: height, layout: layout, pix: pix}, nil
}

func (f *Frame) Width() int { return f.width }
func (f *Frame) Height() int { return f.height }
func (f *Frame) Layout() ChannelLayout { return f.layout }
func (f *Frame) Pix() []byte { return f.pix }
