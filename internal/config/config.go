// Package config assembles the run configuration of the facepaint CLI
// from command line flags. The engine packages are parameter-driven
// and never read configuration themselves.
package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/urfave/cli"

	"github.com/facepaint/facepaint/pkg/pixmap"
)

// Config holds the inputs of one CLI invocation.
type Config struct {
	SourcePath    string
	LandmarksPath string
	OutputPath    string

	Amount  float64
	OffsetY float64

	Style string

	MaskPath  string
	MaskPaths []string

	Color  pixmap.Color
	Colors []pixmap.Color
}

// NewConfig builds a Config from the CLI context.
func NewConfig(ctx *cli.Context) (*Config, error) {
	c := &Config{
		SourcePath:    ctx.String("src"),
		LandmarksPath: ctx.String("landmarks"),
		OutputPath:    ctx.String("out"),
		Amount:        ctx.Float64("amount"),
		OffsetY:       ctx.Float64("offset-y"),
		Style:         ctx.String("style"),
		MaskPath:      ctx.String("mask"),
	}

	if masks := ctx.String("masks"); masks != "" {
		c.MaskPaths = splitList(masks)
	}

	alpha := ctx.Int("alpha")

	if alpha < 0 || alpha > 255 {
		return nil, fmt.Errorf("config: alpha must be in [0, 255], got %d", alpha)
	}

	if s := ctx.String("color"); s != "" {
		color, err := ParseColor(s, uint8(alpha))

		if err != nil {
			return nil, err
		}

		c.Color = color
	}

	if s := ctx.String("colors"); s != "" {
		for _, part := range splitList(s) {
			color, err := ParseColor(part, uint8(alpha))

			if err != nil {
				return nil, err
			}

			c.Colors = append(c.Colors, color)
		}
	}

	if c.SourcePath == "" {
		return nil, fmt.Errorf("config: source image missing (--src)")
	}

	if c.LandmarksPath == "" {
		return nil, fmt.Errorf("config: landmark file missing (--landmarks)")
	}

	if c.OutputPath == "" {
		return nil, fmt.Errorf("config: output file missing (--out)")
	}

	return c, nil
}

// ParseColor parses a hex color like "#cc3355" and attaches the given
// alpha.
func ParseColor(s string, alpha uint8) (pixmap.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	c, err := colorful.Hex(s)

	if err != nil {
		return 0, fmt.Errorf("config: invalid color %q", s)
	}

	r, g, b := c.RGB255()

	return pixmap.NewColor(r, g, b, alpha), nil
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
