package bmpfile

import (
	"io"
	"math"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) write(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return FileWriteError
	}
	return nil
}

func (e *encoder) encode(buf []byte, p ImageProperties, flags Flag) error {
	h := fileHeader{
		sigBM:          signature,
		pixOffset:      headerLen,
		infoHeaderSize: infoHeaderLen,
		width:          int32(p.Width),
		height:         int32(p.Height),
		colorPlanes:    1,
		compression:    biRGB,
	}

	native := BottomUp
	if flags&PreserveOrientation != 0 && p.Orientation == TopDown {
		h.height = -h.height
		native = TopDown
	}

	var palette []byte
	switch p.PixelFormat {
	case Mono8:
		h.bpp = 8
		palette = linearMono8()
		h.colorUse = maxColors
		h.colorImportant = maxColors
		h.pixOffset += uint32(len(palette))
	case BGR8:
		h.bpp = 24
	case BGRA8:
		h.bpp = 32
	default:
		return InvalidArgument
	}

	step := fileStride(h.bpp, p.Width)
	size := uint64(step) * uint64(p.Height)
	if size > math.MaxUint32-uint64(h.pixOffset) {
		return InvalidArgument
	}
	h.imageSize = uint32(size)
	h.fileSize = h.pixOffset + h.imageSize

	if err := e.write(h.marshal()); err != nil {
		return err
	}
	if palette != nil {
		if err := e.write(palette); err != nil {
			return err
		}
	}

	stride := p.Stride()
	n := p.Width * p.PixelFormat.bytesPerPixel()
	var padding []byte
	if n < step {
		padding = make([]byte, step-n)
	}
	for y := 0; y < p.Height; y++ {
		off := bufferRow(p.Orientation, native, y, p.Height) * stride
		if err := e.write(buf[off : off+n]); err != nil {
			return err
		}
		if padding != nil {
			if err := e.write(padding); err != nil {
				return err
			}
		}
	}
	return nil
}
