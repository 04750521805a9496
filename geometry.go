package bmpfile

const (
	maxInt   = int(^uint(0) >> 1)
	maxInt32 = 1<<31 - 1
)

func (f PixelFormat) bytesPerPixel() int {
	switch f {
	case Mono8:
		return 1
	case BGR8:
		return 3
	case BGRA8:
		return 4
	}
	return 0
}

func fileBytesPerPixel(bpp uint16) int {
	switch bpp {
	case 8:
		return 1
	case 24:
		return 3
	case 32:
		return 4
	}
	return 0
}

// fileStride returns the length of a stored row, which is always a multiple
// of four bytes.
func fileStride(bpp uint16, width int) int {
	return (fileBytesPerPixel(bpp)*width + 3) &^ 3
}

// filePadding returns the number of bytes that pad a stored row to its
// stride, between 0 and 3.
func filePadding(bpp uint16, width int) int {
	return fileStride(bpp, width) - fileBytesPerPixel(bpp)*width
}

// Stride returns the distance in bytes between the start of two consecutive
// lines in a buffer holding an image with these properties.
func (p ImageProperties) Stride() int {
	return p.Width*p.PixelFormat.bytesPerPixel() + p.LinePadding
}

// ComputeBufferSize returns the size in bytes of a buffer that holds an image
// with the properties p, or 0 if the width, height or pixel format of p are
// not set.
func ComputeBufferSize(p ImageProperties) int {
	if p.Width <= 0 || p.Height <= 0 || p.PixelFormat.bytesPerPixel() == 0 || p.LinePadding < 0 {
		return 0
	}
	if p.Width > (maxInt-p.LinePadding)/p.PixelFormat.bytesPerPixel() {
		return 0
	}
	stride := p.Stride()
	if stride > maxInt/p.Height {
		return 0
	}
	return stride * p.Height
}

// bufferRow maps a row in file order to the row of the buffer it is
// transferred to or from. Rows are mirrored when the buffer and the file
// disagree on the orientation.
func bufferRow(requested, native Orientation, row, height int) int {
	if requested == native {
		return row
	}
	return height - row - 1
}
