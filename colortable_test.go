package bmpfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTableClassification(t *testing.T) {
	gray := grayTable()
	assert.True(t, gray.isMono8())
	assert.True(t, gray.isLinearMono8())
	assert.True(t, gray[:16].isLinearMono8())

	swapped := grayTable()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	assert.True(t, swapped.isMono8())
	assert.False(t, swapped.isLinearMono8())

	color := grayTable()
	color[200].r++
	assert.False(t, color.isMono8())
	assert.False(t, color.isLinearMono8())

	// The reserved byte is not part of the color
	reserved := grayTable()
	reserved[7].reserved = 0xff
	assert.True(t, reserved.isLinearMono8())
}

func TestReadColorTable(t *testing.T) {
	b := buildBMP(8, 4, 2, false, grayTable())

	tables := []struct {
		name    string
		colors  uint32
		b       []byte
		want    int
		wantErr error
	}{
		{"default size", 0, b, 256, nil},
		{"declared size", 16, b, 16, nil},
		{"truncated", 0, b[:headerLen+1023], 0, FileReadError},
		{"truncated declared size", 16, b[:headerLen+63], 0, FileReadError},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			h := fileHeader{infoHeaderSize: infoHeaderLen, bpp: 8, colorUse: table.colors}
			ct, err := readColorTable(bytes.NewReader(table.b), &h)
			if table.wantErr != nil {
				assert.Equal(t, table.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, ct, table.want)
			assert.True(t, ct.isLinearMono8())
		})
	}
}

func TestReadColorTableOffset(t *testing.T) {
	// The table follows the info header whatever its size
	b := make([]byte, fileHeaderLen+124)
	b = append(b, 9, 8, 7, 0)

	h := fileHeader{infoHeaderSize: 124, bpp: 8, colorUse: 1}
	ct, err := readColorTable(bytes.NewReader(b), &h)
	require.NoError(t, err)
	assert.Equal(t, colorTable{{9, 8, 7, 0}}, ct)
}

func TestDefaultColors(t *testing.T) {
	assert.Equal(t, 1, defaultColors(1))
	assert.Equal(t, 16, defaultColors(4))
	assert.Equal(t, 256, defaultColors(8))
	assert.Equal(t, 0, defaultColors(24))
}
