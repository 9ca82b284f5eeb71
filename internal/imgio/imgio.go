// Package imgio loads and saves the images and landmark files the CLI
// works with. The engine itself never touches the filesystem.
package imgio

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/facepaint/facepaint/internal/event"
	"github.com/facepaint/facepaint/pkg/fs"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

var log = event.Log

// Open loads an image file as an NRGBA8 pixmap.
func Open(fileName string) (*pixmap.Pixmap, error) {
	if !fs.FileExists(fileName) {
		return nil, fmt.Errorf("imgio: file %s not found", filepath.Base(fileName))
	}

	img, err := imaging.Open(fileName)

	if err != nil {
		return nil, fmt.Errorf("imgio: %s in %s", err, filepath.Base(fileName))
	}

	return pixmap.FromImage(img), nil
}

// OpenMask loads an image file as a Gray8 opacity mask. Images with an
// alpha channel use it as opacity; opaque images use luminance.
func OpenMask(fileName string) (*pixmap.Pixmap, error) {
	if !fs.FileExists(fileName) {
		return nil, fmt.Errorf("imgio: mask %s not found", filepath.Base(fileName))
	}

	img, err := imaging.Open(fileName)

	if err != nil {
		return nil, fmt.Errorf("imgio: %s in %s", err, filepath.Base(fileName))
	}

	b := img.Bounds()
	m := pixmap.New(b.Dx(), b.Dy(), pixmap.Gray8)

	opaque := true

Scan:
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				opaque = false
				break Scan
			}
		}
	}

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			px := img.At(b.Min.X+x, b.Min.Y+y)

			if opaque {
				m.SetGray(x, y, color.GrayModel.Convert(px).(color.Gray).Y)
			} else {
				_, _, _, a := px.RGBA()
				m.SetGray(x, y, uint8(a>>8))
			}
		}
	}

	return m, nil
}

// Save writes a pixmap to disk; the encoder is chosen by file
// extension.
func Save(p *pixmap.Pixmap, fileName string) error {
	if fileName == "" {
		return fmt.Errorf("imgio: output filename missing")
	}

	if err := imaging.Save(p.Image(), fileName); err != nil {
		return fmt.Errorf("imgio: %s in %s", err, filepath.Base(fileName))
	}

	log.Infof("imgio: saved %dx%d %s to %s", p.W, p.H, p.Format, filepath.Base(fileName))

	return nil
}
