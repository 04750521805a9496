/*
Package bmpfile loads and saves uncompressed BMP files to and from a
caller-owned pixel buffer.

Files with 8, 24 or 32 bits per pixel are supported. 8-bit files with a gray
color table are read as Mono8, other 8-bit files are expanded through their
color table to BGR8. The layout of the buffer is described by ImageProperties:
each line may be followed by padding bytes and the first line may be either
the top or the bottom of the image.

The BMP specification is at http://www.digicamsoft.com/bmp/bmp.html.
*/
package bmpfile

import (
	"bufio"
	"io"
	"os"
)

// PixelFormat defines the layout of a single pixel in a buffer.
type PixelFormat int

// Pixel formats. PixelFormatInvalid is the zero value.
const (
	PixelFormatInvalid PixelFormat = iota
	Mono8                          // uint8 luminance
	BGR8                           // uint8 blue, green, red
	BGRA8                          // uint8 blue, green, red, alpha
)

func (f PixelFormat) String() string {
	switch f {
	case Mono8:
		return "Mono8"
	case BGR8:
		return "BGR8"
	case BGRA8:
		return "BGRA8"
	}
	return "Invalid"
}

// Orientation defines which line of the image is stored first.
type Orientation int

// Orientations. BottomUp is the zero value as it is the default order of a
// BMP file.
const (
	BottomUp Orientation = iota
	TopDown
	OrientationInvalid
)

func (o Orientation) String() string {
	switch o {
	case BottomUp:
		return "BottomUp"
	case TopDown:
		return "TopDown"
	}
	return "Invalid"
}

func (o Orientation) valid() bool {
	return o == BottomUp || o == TopDown
}

// ImageProperties describes an image held in a buffer. The zero value is the
// reset state reported alongside any failure.
type ImageProperties struct {
	Width       int // pixels per line
	Height      int // lines
	LinePadding int // bytes following each line in the buffer
	PixelFormat PixelFormat
	Orientation Orientation
}

// Valid reports whether p describes an image that can be saved.
func (p ImageProperties) Valid() bool {
	return p.Width > 0 && p.Height > 0 && p.LinePadding >= 0 &&
		p.PixelFormat != PixelFormatInvalid && p.PixelFormat.bytesPerPixel() != 0 &&
		p.Orientation.valid()
}

// Flag alters the layout used by Load, Decode, Save and Encode.
type Flag uint

const (
	// ForceLinePadding makes Load use the line padding passed in the
	// properties instead of the padding of the file.
	ForceLinePadding Flag = 1 << iota
	// ForceOrientation makes Load use the orientation passed in the
	// properties instead of the orientation of the file.
	ForceOrientation
	// PreserveOrientation makes Save store the lines in the orientation of
	// the buffer. Without it files are always written bottom-up.
	PreserveOrientation
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// DecodeConfig reads the properties of the BMP image in r. On failure p is
// reset to its zero value.
func DecodeConfig(r io.ReadSeeker, p *ImageProperties) error {
	if p == nil || r == nil {
		return NullArgument
	}
	d := decoder{r: r}
	if err := d.decodeConfig(p); err != nil {
		*p = ImageProperties{}
		return err
	}
	return nil
}

// Decode reads the BMP image in r into buf and stores its properties in p.
// With ForceLinePadding or ForceOrientation the corresponding fields of p
// describe the layout wanted in buf on input. On failure p is reset to its
// zero value.
func Decode(r io.ReadSeeker, buf []byte, p *ImageProperties, flags Flag) error {
	if p == nil {
		return NullArgument
	}
	if err := checkDecode(r != nil, buf, p, flags); err != nil {
		*p = ImageProperties{}
		return err
	}
	d := decoder{r: r}
	if err := d.decode(buf, p, flags); err != nil {
		*p = ImageProperties{}
		return err
	}
	return nil
}

func checkDecode(ok bool, buf []byte, p *ImageProperties, flags Flag) error {
	switch {
	case !ok || buf == nil:
		return NullArgument
	case flags&ForceOrientation != 0 && !p.Orientation.valid():
		return InvalidArgument
	case flags&ForceLinePadding != 0 && p.LinePadding < 0:
		return InvalidArgument
	}
	return nil
}

// Encode writes the image held in buf, described by p, to w in BMP format.
func Encode(w io.Writer, buf []byte, p ImageProperties, flags Flag) error {
	if err := checkEncode(w != nil, buf, p); err != nil {
		return err
	}
	e := encoder{w: w}
	return e.encode(buf, p, flags)
}

func checkEncode(ok bool, buf []byte, p ImageProperties) error {
	switch {
	case !ok || buf == nil:
		return NullArgument
	case !p.Valid() || len(buf) == 0 || p.Width > maxInt32 || p.Height > maxInt32:
		return InvalidArgument
	}
	size := ComputeBufferSize(p)
	if size == 0 {
		return InvalidArgument
	}
	if size > len(buf) {
		return BufferTooSmall
	}
	return nil
}

// LoadProperties reads the properties of the BMP file named path. On failure
// p is reset to its zero value.
func LoadProperties(path string, p *ImageProperties) error {
	if p == nil {
		return NullArgument
	}
	if path == "" {
		*p = ImageProperties{}
		return NullArgument
	}

	f, err := os.Open(path)
	if err != nil {
		*p = ImageProperties{}
		return FileNotFound
	}
	defer f.Close()

	return DecodeConfig(f, p)
}

// Load reads the BMP file named path into buf. It behaves like Decode.
func Load(path string, buf []byte, p *ImageProperties, flags Flag) error {
	if p == nil {
		return NullArgument
	}
	if err := checkDecode(path != "", buf, p, flags); err != nil {
		*p = ImageProperties{}
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		*p = ImageProperties{}
		return FileNotFound
	}
	defer f.Close()

	return Decode(f, buf, p, flags)
}

// Save writes the image held in buf, described by p, to the file named path.
// The file is written bottom-up unless PreserveOrientation is set. A file
// that fails part way through is left as written so far.
func Save(path string, buf []byte, p ImageProperties, flags Flag) error {
	if err := checkEncode(path != "", buf, p); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return FileOpenForWritingError
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Encode(w, buf, p, flags); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return FileWriteError
	}
	if err := f.Close(); err != nil {
		return FileWriteError
	}
	return nil
}
