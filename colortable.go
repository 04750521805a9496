package bmpfile

import "io"

const (
	colorEntryLen = 4
	maxColors     = 256
)

// colorEntry is stored in BGR order followed by a reserved byte.
type colorEntry struct {
	b, g, r, reserved uint8
}

type colorTable []colorEntry

// defaultColors is the size of the color table when the header does not
// declare one.
func defaultColors(bpp uint16) int {
	switch bpp {
	case 1:
		return 1
	case 4:
		return 16
	case 8:
		return maxColors
	}
	return 0
}

func readColorTable(r io.ReadSeeker, h *fileHeader) (colorTable, error) {
	if _, err := r.Seek(int64(h.infoHeaderSize)+fileHeaderLen, io.SeekStart); err != nil {
		return nil, FileReadError
	}

	n := int(h.colorUse)
	if n == 0 {
		n = defaultColors(h.bpp)
	}
	if n == 0 {
		return nil, UnsupportedUseOfColorTable
	}

	b := make([]byte, n*colorEntryLen)
	if err := readFull(r, b); err != nil {
		return nil, FileReadError
	}

	t := make(colorTable, n)
	for i := range t {
		t[i] = colorEntry{b[4*i+0], b[4*i+1], b[4*i+2], b[4*i+3]}
	}
	return t, nil
}

// isMono8 reports whether every entry is a shade of gray.
func (t colorTable) isMono8() bool {
	for _, e := range t {
		if e.r != e.g || e.r != e.b {
			return false
		}
	}
	return true
}

// isLinearMono8 reports whether entry i is the gray value i for every entry,
// in which case indices need no lookup.
func (t colorTable) isLinearMono8() bool {
	for i, e := range t {
		if int(e.b) != i || int(e.g) != i || int(e.r) != i {
			return false
		}
	}
	return true
}

func linearMono8() []byte {
	b := make([]byte, maxColors*colorEntryLen)
	for i := 0; i < maxColors; i++ {
		b[i*4+0] = uint8(i)
		b[i*4+1] = uint8(i)
		b[i*4+2] = uint8(i)
		b[i*4+3] = 0xff
	}
	return b
}
