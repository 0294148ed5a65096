package photoviewer

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
)

// minBand is the fewest pixels a conversion worker is given. Smaller images
// are converted on fewer goroutines, down to the calling one.
const minBand = 4096

// NormalizedImage is the pipeline's output: straight (non-premultiplied)
// RGBA pixels in row-major order, independent of the source format.
type NormalizedImage struct {
	Width, Height int
	Pix           []color.NRGBA
}

func (m *NormalizedImage) Size() image.Point {
	return image.Pt(m.Width, m.Height)
}

// At returns the pixel at (x, y). It panics if the point is out of range.
func (m *NormalizedImage) At(x, y int) color.NRGBA {
	return m.Pix[y*m.Width+x]
}

// NRGBA copies the pixels into an *image.NRGBA for toolkits that upload
// standard library images.
func (m *NormalizedImage) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, c := range m.Pix {
		j := i * 4
		img.Pix[j] = c.R
		img.Pix[j+1] = c.G
		img.Pix[j+2] = c.B
		img.Pix[j+3] = c.A
	}
	return img
}

// Convert expands a 3 or 4 channel frame into a NormalizedImage. RGB pixels
// get A=255 and RGBA pixels are copied verbatim. The work is split into
// contiguous bands across workers goroutines, or GOMAXPROCS when workers is
// not positive; each band writes only its own slice of the output.
//
// Convert panics if the frame's byte length does not match its geometry.
// Frames from NewFrame always match.
func Convert(f *Frame, workers int) *NormalizedImage {
	channels := f.layout.Channels()
	n := f.width * f.height
	if channels < 3 || len(f.pix) != n*channels {
		panic(fmt.Sprintf("photoviewer: %s frame of %dx%d has %d bytes, want %d",
			f.layout, f.width, f.height, len(f.pix), n*channels))
	}

	out := make([]color.NRGBA, n)
	parallel(n, workers, func(start, end int) {
		convertBand(out[start:end], f.pix[start*channels:end*channels], channels)
	})

	return &NormalizedImage{Width: f.width, Height: f.height, Pix: out}
}

func convertBand(dst []color.NRGBA, src []byte, channels int) {
	if channels == 4 {
		for i := range dst {
			p := src[i*4 : i*4+4 : i*4+4]
			dst[i] = color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
		return
	}
	for i := range dst {
		p := src[i*3 : i*3+3 : i*3+3]
		dst[i] = color.NRGBA{R: p[0], G: p[1], B: p[2], A: 255}
	}
}

// parallel calls fn over disjoint [start, end) ranges covering [0, size).
func parallel(size, workers int, fn func(start, end int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if limit := size / minBand; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		fn(0, size)
		return
	}

	part := size / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * part
		end := start + part
		// Last band takes the remainder.
		if i == workers-1 {
			end = size
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
