package bmpfile

import (
	"encoding/binary"
	"math"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen

	biRGB = 0
)

var signature = [2]byte{'B', 'M'}

// fileHeader is a BITMAPFILEHEADER immediately followed by a
// BITMAPINFOHEADER, exactly as stored on disk.
type fileHeader struct {
	sigBM           [2]byte
	fileSize        uint32
	reserved        [2]uint16
	pixOffset       uint32
	infoHeaderSize  uint32
	width           int32
	height          int32
	colorPlanes     uint16
	bpp             uint16
	compression     uint32
	imageSize       uint32
	xPixelsPerMeter int32
	yPixelsPerMeter int32
	colorUse        uint32
	colorImportant  uint32
}

func (h *fileHeader) unmarshal(b []byte) {
	le := binary.LittleEndian
	copy(h.sigBM[:], b[0:2])
	h.fileSize = le.Uint32(b[2:])
	h.reserved[0] = le.Uint16(b[6:])
	h.reserved[1] = le.Uint16(b[8:])
	h.pixOffset = le.Uint32(b[10:])
	h.infoHeaderSize = le.Uint32(b[14:])
	h.width = int32(le.Uint32(b[18:]))
	h.height = int32(le.Uint32(b[22:]))
	h.colorPlanes = le.Uint16(b[26:])
	h.bpp = le.Uint16(b[28:])
	h.compression = le.Uint32(b[30:])
	h.imageSize = le.Uint32(b[34:])
	h.xPixelsPerMeter = int32(le.Uint32(b[38:]))
	h.yPixelsPerMeter = int32(le.Uint32(b[42:]))
	h.colorUse = le.Uint32(b[46:])
	h.colorImportant = le.Uint32(b[50:])
}

func (h *fileHeader) marshal() []byte {
	le := binary.LittleEndian
	b := make([]byte, headerLen)
	copy(b[0:2], h.sigBM[:])
	le.PutUint32(b[2:], h.fileSize)
	le.PutUint16(b[6:], h.reserved[0])
	le.PutUint16(b[8:], h.reserved[1])
	le.PutUint32(b[10:], h.pixOffset)
	le.PutUint32(b[14:], h.infoHeaderSize)
	le.PutUint32(b[18:], uint32(h.width))
	le.PutUint32(b[22:], uint32(h.height))
	le.PutUint16(b[26:], h.colorPlanes)
	le.PutUint16(b[28:], h.bpp)
	le.PutUint32(b[30:], h.compression)
	le.PutUint32(b[34:], h.imageSize)
	le.PutUint32(b[38:], uint32(h.xPixelsPerMeter))
	le.PutUint32(b[42:], uint32(h.yPixelsPerMeter))
	le.PutUint32(b[46:], h.colorUse)
	le.PutUint32(b[50:], h.colorImportant)
	return b
}

// rows returns the number of lines regardless of the orientation encoded in
// the sign of the height.
func (h *fileHeader) rows() int {
	if h.height < 0 {
		return -int(h.height)
	}
	return int(h.height)
}

func (h *fileHeader) orientation() Orientation {
	if h.height < 0 {
		return TopDown
	}
	return BottomUp
}

// check validates the header. The order of the checks decides which error is
// reported for a header with several problems.
func (h *fileHeader) check() error {
	switch {
	case h.sigBM != signature:
		return NotABmpFile
	case h.infoHeaderSize < infoHeaderLen:
		return Corrupt
	case h.pixOffset < headerLen:
		return Corrupt
	case h.height == 0 || h.width <= 0:
		return Corrupt
	}

	switch h.bpp {
	case 1, 4, 8, 16, 24, 32:
	default:
		return Corrupt
	}

	if h.compression != biRGB {
		return UnsupportedCompression
	}

	switch h.bpp {
	case 8, 24, 32:
	default:
		return UnsupportedBitPerPixel
	}

	switch {
	case (h.bpp == 24 || h.bpp == 32) && (h.colorUse != 0 || h.colorImportant != 0):
		return UnsupportedUseOfColorTable
	case h.bpp == 8 && (h.colorUse > maxColors || h.colorImportant > maxColors):
		return TooLargeColorTable
	}

	if h.imageSize != 0 {
		stride := fileStride(h.bpp, int(h.width))
		if uint64(stride) > math.MaxUint32 || uint64(stride)*uint64(h.rows()) != uint64(h.imageSize) {
			return Corrupt
		}
	}

	return nil
}
