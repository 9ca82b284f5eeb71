// Package effect implements the per-category cosmetic orchestrators:
// each entry point reads landmarks and style parameters, builds or
// warps a cosmetic tile, and composites it into the destination image.
// Destinations are written all-or-nothing: every fallible step runs on
// a working copy, and the destination is only touched once the whole
// pipeline succeeded. Destination buffers may alias the source.
package effect

import (
	"fmt"

	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/event"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

var log = event.Log

// validate checks the shared preconditions of all public entry points.
func validate(dst, src *pixmap.Pixmap, pts landmark.Sequence, amount float64) error {
	if src == nil || src.Empty() {
		return fmt.Errorf("effect: empty source image")
	}

	if dst == nil || dst.Empty() {
		return fmt.Errorf("effect: empty destination image")
	}

	if src.Format != pixmap.NRGBA8 {
		return fmt.Errorf("%w: source must be nrgba8, got %s", pixmap.ErrFormat, src.Format)
	}

	if dst.Format != src.Format || dst.W != src.W || dst.H != src.H {
		return fmt.Errorf("%w: destination %s %dx%d does not match source %s %dx%d",
			pixmap.ErrFormat, dst.Format, dst.W, dst.H, src.Format, src.W, src.H)
	}

	if err := pts.Validate(); err != nil {
		return err
	}

	if amount < 0 || amount > 1 {
		return fmt.Errorf("%w: %g", blend.ErrAmount, amount)
	}

	return nil
}

// commit writes the finished working copy into the destination.
func commit(dst, result *pixmap.Pixmap) error {
	return dst.CopyFrom(result)
}
