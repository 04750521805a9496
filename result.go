package bmpfile

import "errors"

// Result is the outcome of a codec operation. Every failure the codec reports
// is one of these values; operations return nil instead of Ok.
type Result int

// Result values.
const (
	Invalid Result = iota // unset, never returned by an operation
	Ok
	FileNotFound
	FileOpenForWritingError
	FileReadError
	FileWriteError
	BufferTooSmall
	NotABmpFile
	UnsupportedCompression
	UnsupportedBitPerPixel
	UnsupportedUseOfColorTable
	TooLargeColorTable
	Corrupt
	NullArgument
	InvalidArgument
)

var descriptions = map[Result]string{
	Invalid:                    "Invalid operation type. No operation executed.",
	Ok:                         "BMP file operation successful.",
	FileNotFound:               "BMP file not found.",
	FileOpenForWritingError:    "Failed to open BMP file for writing.",
	FileReadError:              "BMP file read error.",
	FileWriteError:             "BMP file write error.",
	BufferTooSmall:             "Buffer too small for BMP file operation.",
	NotABmpFile:                "BMP file read error. Not a BMP file.",
	UnsupportedCompression:     "BMP file read error. Compression type not supported.",
	UnsupportedBitPerPixel:     "BMP file read error. Bit per pixel not supported.",
	UnsupportedUseOfColorTable: "BMP file read error. Color table variant not supported.",
	TooLargeColorTable:         "BMP file read error. Color table too large.",
	Corrupt:                    "BMP file read error. File has been corrupted.",
	NullArgument:               "Argument must not be null.",
	InvalidArgument:            "An argument passed is invalid.",
}

// OK reports whether r is the success outcome.
func (r Result) OK() bool {
	return r == Ok
}

// String returns a human-readable description of r.
func (r Result) String() string {
	if s, ok := descriptions[r]; ok {
		return s
	}
	return "Unsupported operation result type."
}

func (r Result) Error() string {
	return "bmpfile: " + r.String()
}

// ResultOf returns the Result carried by err. A nil error is Ok and an error
// that did not come from this package is Invalid.
func ResultOf(err error) Result {
	if err == nil {
		return Ok
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return Invalid
}
