package bmpfile

import (
	"image"
	"image/color"
)

// ToImage returns a copy of the image held in buf, described by p, as an
// image.Image. Mono8 becomes *image.Gray, BGR8 *image.RGBA and BGRA8
// *image.NRGBA.
func ToImage(buf []byte, p ImageProperties) (image.Image, error) {
	if buf == nil {
		return nil, NullArgument
	}
	if !p.Valid() {
		return nil, InvalidArgument
	}
	size := ComputeBufferSize(p)
	if size == 0 {
		return nil, InvalidArgument
	}
	if size > len(buf) {
		return nil, BufferTooSmall
	}

	r := image.Rect(0, 0, p.Width, p.Height)
	stride := p.Stride()
	line := func(y int) []byte {
		off := bufferRow(p.Orientation, TopDown, y, p.Height) * stride
		return buf[off : off+p.Width*p.PixelFormat.bytesPerPixel()]
	}

	switch p.PixelFormat {
	case Mono8:
		m := image.NewGray(r)
		for y := 0; y < p.Height; y++ {
			copy(m.Pix[y*m.Stride:], line(y))
		}
		return m, nil
	case BGR8:
		m := image.NewRGBA(r)
		for y := 0; y < p.Height; y++ {
			b := line(y)
			q := m.Pix[y*m.Stride : y*m.Stride+p.Width*4]
			for i, j := 0, 0; i < len(q); i, j = i+4, j+3 {
				q[i+0] = b[j+2]
				q[i+1] = b[j+1]
				q[i+2] = b[j+0]
				q[i+3] = 0xff
			}
		}
		return m, nil
	default:
		m := image.NewNRGBA(r)
		for y := 0; y < p.Height; y++ {
			b := line(y)
			q := m.Pix[y*m.Stride : y*m.Stride+p.Width*4]
			for i := 0; i < len(q); i += 4 {
				q[i+0] = b[i+2]
				q[i+1] = b[i+1]
				q[i+2] = b[i+0]
				q[i+3] = b[i+3]
			}
		}
		return m, nil
	}
}

// FromImage converts m to a top-down buffer without line padding in the pixel
// format f.
func FromImage(m image.Image, f PixelFormat) ([]byte, ImageProperties, error) {
	if m == nil {
		return nil, ImageProperties{}, NullArgument
	}
	b := m.Bounds()
	p := ImageProperties{
		Width:       b.Dx(),
		Height:      b.Dy(),
		PixelFormat: f,
		Orientation: TopDown,
	}
	size := ComputeBufferSize(p)
	if size == 0 {
		return nil, ImageProperties{}, InvalidArgument
	}

	buf := make([]byte, size)
	bpp := f.bytesPerPixel()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		q := buf[(y-b.Min.Y)*p.Stride():]
		if g, ok := m.(*image.Gray); ok && f == Mono8 {
			copy(q, g.Pix[g.PixOffset(b.Min.X, y):g.PixOffset(b.Max.X, y)])
			continue
		}
		for x, i := b.Min.X, 0; x < b.Max.X; x, i = x+1, i+bpp {
			switch f {
			case Mono8:
				q[i] = color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y
			default:
				c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
				q[i+0] = c.B
				q[i+1] = c.G
				q[i+2] = c.R
				if f == BGRA8 {
					q[i+3] = c.A
				}
			}
		}
	}
	return buf, p, nil
}
