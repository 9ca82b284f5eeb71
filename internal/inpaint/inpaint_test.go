package inpaint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facepaint/facepaint/pkg/pixmap"
)

// holeScene builds a uniform image with a rectangular hole marked in the
// target mask; everything outside the hole is usable as exemplar.
func holeScene(w, h int, hole [4]int) (img, source, target *pixmap.Pixmap) {
	img = pixmap.New(w, h, pixmap.NRGBA8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA8(x, y, 90, 60, 40, 255)
		}
	}

	source = pixmap.New(w, h, pixmap.Gray8)
	source.Fill(255)
	target = pixmap.New(w, h, pixmap.Gray8)

	for y := hole[1]; y < hole[3]; y++ {
		for x := hole[0]; x < hole[2]; x++ {
			// Garbage content inside the hole.
			img.SetRGBA8(x, y, 255, 0, 255, 255)
			source.SetGray(x, y, 0)
			target.SetGray(x, y, 255)
		}
	}

	return img, source, target
}

func TestInitializeValidation(t *testing.T) {
	var in Inpainter

	assert.Error(t, in.Initialize())

	img, source, target := holeScene(16, 16, [4]int{6, 6, 10, 10})

	in.SetSourceImage(img)
	in.SetSourceMask(source)
	in.SetTargetMask(target)

	// Patch size is still unset.
	assert.Error(t, in.Initialize())

	in.SetPatchSize(2)
	assert.NoError(t, in.Initialize())
}

func TestInitializeRejectsFormats(t *testing.T) {
	img, source, target := holeScene(16, 16, [4]int{6, 6, 10, 10})

	var in Inpainter
	in.SetSourceImage(pixmap.New(16, 16, pixmap.Gray8))
	in.SetSourceMask(source)
	in.SetTargetMask(target)
	in.SetPatchSize(2)

	assert.ErrorIs(t, in.Initialize(), pixmap.ErrFormat)

	in.SetSourceImage(img)
	in.SetSourceMask(pixmap.New(8, 8, pixmap.Gray8))

	assert.Error(t, in.Initialize())
}

func TestStepRequiresInitialize(t *testing.T) {
	var in Inpainter

	assert.False(t, in.HasMoreSteps())
	assert.ErrorIs(t, in.Step(), ErrNotInitialized)
}

func TestStepLoopFillsHole(t *testing.T) {
	img, source, target := holeScene(24, 24, [4]int{9, 9, 15, 15})

	var in Inpainter
	in.SetSourceImage(img)
	in.SetSourceMask(source)
	in.SetTargetMask(target)
	in.SetPatchSize(2)

	assert.NoError(t, in.Initialize())
	assert.True(t, in.HasMoreSteps())

	steps := 0

	for in.HasMoreSteps() {
		assert.NoError(t, in.Step())
		steps++

		// Progress is guaranteed, so the loop is bounded by the hole
		// area.
		assert.LessOrEqual(t, steps, 6*6)
	}

	// The surrounding content is uniform, so the restored hole matches
	// it exactly.
	out := in.Image()

	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			r, g, b, a := out.RGBA8At(x, y)
			assert.Equal(t, [4]uint8{90, 60, 40, 255}, [4]uint8{r, g, b, a})
		}
	}
}

func TestStepAfterDoneIsNoop(t *testing.T) {
	img, source, target := holeScene(16, 16, [4]int{7, 7, 9, 9})

	var in Inpainter
	in.SetSourceImage(img)
	in.SetSourceMask(source)
	in.SetTargetMask(target)
	in.SetPatchSize(2)

	assert.NoError(t, in.Initialize())

	for in.HasMoreSteps() {
		assert.NoError(t, in.Step())
	}

	before := in.Image().Clone()
	assert.NoError(t, in.Step())
	assert.Equal(t, before.Pix, in.Image().Pix)
}

func TestInputsAreCopied(t *testing.T) {
	img, source, target := holeScene(16, 16, [4]int{6, 6, 10, 10})

	var in Inpainter
	in.SetSourceImage(img)
	in.SetSourceMask(source)
	in.SetTargetMask(target)
	in.SetPatchSize(2)

	assert.NoError(t, in.Initialize())

	for in.HasMoreSteps() {
		assert.NoError(t, in.Step())
	}

	// The caller's buffers keep the hole.
	r, _, _, _ := img.RGBA8At(7, 7)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), target.GrayAt(7, 7))
}
