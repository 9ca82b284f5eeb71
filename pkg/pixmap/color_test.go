package pixmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorPacking(t *testing.T) {
	c := NewColor(0x11, 0x22, 0x33, 0x44)

	assert.Equal(t, uint8(0x11), c.R())
	assert.Equal(t, uint8(0x22), c.G())
	assert.Equal(t, uint8(0x33), c.B())
	assert.Equal(t, uint8(0x44), c.A())

	assert.Equal(t, Color(0x44332211), c)
}

func TestColorWithAlpha(t *testing.T) {
	c := NewColor(1, 2, 3, 4).WithAlpha(200)

	assert.Equal(t, uint8(200), c.A())
	assert.Equal(t, uint8(1), c.R())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#0a141e28", NewColor(10, 20, 30, 40).String())
}
