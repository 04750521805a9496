package bmpfile

import "io"

type decoder struct {
	r       io.ReadSeeker
	h       fileHeader
	palette colorTable
}

func (d *decoder) readHeader() error {
	var b [headerLen]byte
	if err := readFull(d.r, b[:]); err != nil {
		return NotABmpFile
	}
	d.h.unmarshal(b[:])
	return d.h.check()
}

func (d *decoder) decodeConfig(p *ImageProperties) error {
	if err := d.readHeader(); err != nil {
		return err
	}

	if d.h.bpp == 8 {
		t, err := readColorTable(d.r, &d.h)
		if err != nil {
			return err
		}
		d.palette = t
	}

	*p = ImageProperties{
		Width:       int(d.h.width),
		Height:      d.h.rows(),
		LinePadding: filePadding(d.h.bpp, int(d.h.width)),
		Orientation: d.h.orientation(),
	}
	switch d.h.bpp {
	case 8:
		if d.palette.isMono8() {
			p.PixelFormat = Mono8
		} else {
			p.PixelFormat = BGR8
		}
	case 24:
		p.PixelFormat = BGR8
	case 32:
		p.PixelFormat = BGRA8
	}
	return nil
}

func (d *decoder) decode(buf []byte, p *ImageProperties, flags Flag) error {
	requested := *p
	if err := d.decodeConfig(p); err != nil {
		return err
	}
	native := p.Orientation

	if flags&ForceLinePadding != 0 {
		p.LinePadding = requested.LinePadding
	}
	if flags&ForceOrientation != 0 {
		p.Orientation = requested.Orientation
	}

	size := ComputeBufferSize(*p)
	if size == 0 {
		return InvalidArgument
	}
	if size > len(buf) {
		return BufferTooSmall
	}

	if _, err := d.r.Seek(int64(d.h.pixOffset), io.SeekStart); err != nil {
		return FileReadError
	}

	switch {
	case d.h.bpp > 8 && (p.PixelFormat == BGR8 || p.PixelFormat == BGRA8):
		return d.decodeDirect(buf, p, native)
	case p.PixelFormat == Mono8:
		return d.decodeMono(buf, p, native)
	case p.PixelFormat == BGR8 && d.h.bpp == 8:
		return d.decodePaletted(buf, p, native)
	}
	return UnsupportedBitPerPixel
}

// skipPadding moves past the bytes that pad a stored row.
func (d *decoder) skipPadding(n int) error {
	if n == 0 {
		return nil
	}
	if _, err := d.r.Seek(int64(n), io.SeekCurrent); err != nil {
		return FileReadError
	}
	return nil
}

// decodeDirect copies 24 or 32 bit-per-pixel rows as they are.
func (d *decoder) decodeDirect(buf []byte, p *ImageProperties, native Orientation) error {
	stride := p.Stride()
	n := fileBytesPerPixel(d.h.bpp) * p.Width
	padding := filePadding(d.h.bpp, p.Width)
	for y := 0; y < p.Height; y++ {
		off := bufferRow(p.Orientation, native, y, p.Height) * stride
		if err := readFull(d.r, buf[off:off+n]); err != nil {
			return FileReadError
		}
		if err := d.skipPadding(padding); err != nil {
			return err
		}
	}
	return nil
}

// decodeMono reads an 8 bit-per-pixel image with a gray color table. Indices
// are only mapped through the table if it differs from the identity.
func (d *decoder) decodeMono(buf []byte, p *ImageProperties, native Orientation) error {
	linear := d.palette.isLinearMono8()
	stride := p.Stride()
	padding := filePadding(d.h.bpp, p.Width)
	for y := 0; y < p.Height; y++ {
		off := bufferRow(p.Orientation, native, y, p.Height) * stride
		line := buf[off : off+p.Width]
		if err := readFull(d.r, line); err != nil {
			return FileReadError
		}
		if !linear {
			for x, i := range line {
				if int(i) >= len(d.palette) {
					return Corrupt
				}
				// b == g == r
				line[x] = d.palette[i].b
			}
		}
		if err := d.skipPadding(padding); err != nil {
			return err
		}
	}
	return nil
}

// decodePaletted expands an 8 bit-per-pixel image to BGR8 through its color
// table.
func (d *decoder) decodePaletted(buf []byte, p *ImageProperties, native Orientation) error {
	stride := p.Stride()
	b := make([]byte, fileStride(d.h.bpp, p.Width))
	for y := 0; y < p.Height; y++ {
		if err := readFull(d.r, b); err != nil {
			return FileReadError
		}
		off := bufferRow(p.Orientation, native, y, p.Height) * stride
		line := buf[off : off+3*p.Width]
		for x := 0; x < p.Width; x++ {
			i := int(b[x])
			if i >= len(d.palette) {
				return Corrupt
			}
			e := d.palette[i]
			line[3*x+0] = e.b
			line[3*x+1] = e.g
			line[3*x+2] = e.r
		}
	}
	return nil
}
