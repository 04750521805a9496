package bmpfile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultString(t *testing.T) {
	assert.Equal(t, "BMP file operation successful.", Ok.String())
	assert.Equal(t, "BMP file read error. File has been corrupted.", Corrupt.String())
	assert.Equal(t, "Unsupported operation result type.", Result(1000).String())
	assert.Equal(t, "bmpfile: BMP file not found.", FileNotFound.Error())

	for r := Invalid; r <= InvalidArgument; r++ {
		assert.NotEqual(t, "Unsupported operation result type.", r.String(), "result %d", int(r))
	}
}

func TestResultOK(t *testing.T) {
	assert.True(t, Ok.OK())
	assert.False(t, Invalid.OK())
	assert.False(t, Corrupt.OK())
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, Ok, ResultOf(nil))
	assert.Equal(t, Corrupt, ResultOf(Corrupt))
	assert.Equal(t, BufferTooSmall, ResultOf(fmt.Errorf("load: %w", BufferTooSmall)))
	assert.Equal(t, Invalid, ResultOf(errors.New("other")))
}
