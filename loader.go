// Package photoviewer loads image files into normalized RGBA pixel buffers
// for display.
//
// The decoder is chosen by file extension: jpg, jfif and jpeg go to a fast
// JPEG decoder, png to a PNG decoder that keeps the file's channel layout,
// qoi to the QOI decoder. Everything else, including files with no extension,
// is sniffed by the generic image decoders (GIF, BMP, TIFF, WebP, ...). The
// raw pixels are then converted in parallel into a NormalizedImage, which
// always has four 8 bit components per pixel.
//
// Every failure is reported as a *DecodeError.
package photoviewer

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Options configures a Loader. The zero value is usable.
type Options struct {
	// Workers bounds the goroutines used for pixel conversion. Zero or
	// negative means GOMAXPROCS.
	Workers int
	// FoldCase matches extensions case-insensitively. By default "PNG"
	// is not "png" and goes to the generic decoder.
	FoldCase bool
	// Observer, if set, is told about every stage of each Load and Decode.
	Observer Observer
}

// Loader dispatches image files to format decoders. It holds no mutable
// state and may be used from several goroutines at once.
type Loader struct {
	opts     Options
	decoders map[string]decodeFunc
}

// NewLoader returns a Loader with the built-in format table. opts may be nil.
func NewLoader(opts *Options) *Loader {
	l := &Loader{decoders: make(map[string]decodeFunc)}
	if opts != nil {
		l.opts = *opts
	}

	l.register(decodeJPEG, "jpg", "jfif", "jpeg")
	l.register(decodePNG, "png")
	l.register(decodeQOI, "qoi")

	return l
}

func (l *Loader) register(fn decodeFunc, exts ...string) {
	for _, ext := range exts {
		l.decoders[ext] = fn
	}
}

// Formats returns the extensions with a dedicated decoder, sorted.
func (l *Loader) Formats() []string {
	formats := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// Ext returns the extension of path without the leading dot, or "" if
// there is none.
func Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Load reads and decodes the file at path. A failed read is reported with
// kind UnreadableFile, distinct from every decode failure.
func (l *Loader) Load(path string) (*NormalizedImage, error) {
	start := time.Now()
	ext := Ext(path)

	img, err := l.load(path, ext)

	ev := Event{Stage: StageTotal, Path: path, Ext: ext, Elapsed: time.Since(start), Err: err}
	if img != nil {
		ev.Width, ev.Height = img.Width, img.Height
	}
	l.opts.Observer.emit(ev)
	return img, err
}

func (l *Loader) load(path, ext string) (*NormalizedImage, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		de := &DecodeError{Kind: UnreadableFile, Ext: ext, Path: path, Err: err}
		l.opts.Observer.emit(Event{Stage: StageRead, Path: path, Ext: ext, Elapsed: time.Since(start), Err: de})
		return nil, de
	}
	l.opts.Observer.emit(Event{Stage: StageRead, Path: path, Ext: ext, Elapsed: time.Since(start)})

	return l.decode(path, ext, data)
}

// Decode decodes an in-memory file. ext selects the decoder the same way
// the extension of a path does in Load.
func (l *Loader) Decode(ext string, data []byte) (*NormalizedImage, error) {
	return l.decode("", ext, data)
}

func (l *Loader) decode(path, ext string, data []byte) (*NormalizedImage, error) {
	key := ext
	if l.opts.FoldCase {
		key = strings.ToLower(ext)
	}
	fn, ok := l.decoders[key]
	if !ok {
		fn = decodeAny
	}

	start := time.Now()
	frame, err := fn(data, ext)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		l.opts.Observer.emit(Event{Stage: StageDecode, Path: path, Ext: ext, Elapsed: time.Since(start), Err: err})
		return nil, err
	}
	l.opts.Observer.emit(Event{
		Stage:   StageDecode,
		Path:    path,
		Ext:     ext,
		Layout:  frame.Layout(),
		Width:   frame.Width(),
		Height:  frame.Height(),
		Elapsed: time.Since(start),
	})

	start = time.Now()
	img := Convert(frame, l.opts.Workers)
	l.opts.Observer.emit(Event{
		Stage:   StageConvert,
		Path:    path,
		Ext:     ext,
		Layout:  frame.Layout(),
		Width:   img.Width,
		Height:  img.Height,
		Elapsed: time.Since(start),
	})

	return img, nil
}

var defaultLoader = NewLoader(nil)

// Load reads and decodes path with the default options.
func Load(path string) (*NormalizedImage, error) {
	return defaultLoader.Load(path)
}

// Decode decodes an in-memory file with the default options.
func Decode(ext string, data []byte) (*NormalizedImage, error) {
	return defaultLoader.Decode(ext, data)
}
