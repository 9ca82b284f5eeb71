package commands

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/facepaint/facepaint/internal/config"
	"github.com/facepaint/facepaint/internal/effect"
	"github.com/facepaint/facepaint/internal/imgio"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/internal/shape"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// BlushCommand draws a blush onto both cheeks.
var BlushCommand = cli.Command{
	Name:  "blush",
	Usage: "Apply blush to both cheeks",
	Flags: append([]cli.Flag{
		colorFlag("blush color as hex"),
		cli.StringFlag{
			Name:  "style, s",
			Usage: "blush shape `STYLE` (default, disk, oval, triangle, heart, seagull)",
			Value: "default",
		},
	}, commonFlags...),
	Action: blushAction,
}

func blushAction(ctx *cli.Context) error {
	return run(ctx, "blush", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		style, err := shape.ParseStyle(conf.Style)

		if err != nil {
			return err
		}

		return effect.Blush(dst, src, pts, style, conf.Color, conf.Amount)
	})
}

// LipCommand colors the lips.
var LipCommand = cli.Command{
	Name:  "lip",
	Usage: "Apply lip color",
	Flags: append([]cli.Flag{
		colorFlag("lip color as hex"),
	}, commonFlags...),
	Action: lipAction,
}

func lipAction(ctx *cli.Context) error {
	return run(ctx, "lip", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		return effect.Lip(dst, src, pts, conf.Color, conf.Amount)
	})
}

// BrowCommand redraws both eyebrows from a cosmetic brow mask.
var BrowCommand = cli.Command{
	Name:  "brow",
	Usage: "Remove the existing eyebrows and draw cosmetic ones",
	Flags: append([]cli.Flag{
		colorFlag("brow color as hex"),
		cli.StringFlag{
			Name:  "mask, m",
			Usage: "brow mask image `FILE`",
		},
		cli.Float64Flag{
			Name:  "offset-y",
			Usage: "vertical brow offset in pixels",
		},
	}, commonFlags...),
	Action: browAction,
}

func browAction(ctx *cli.Context) error {
	return run(ctx, "brow", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		browMask, err := imgio.OpenMask(conf.MaskPath)

		if err != nil {
			return err
		}

		return effect.Brow(dst, src, pts, browMask, conf.Color, conf.Amount, conf.OffsetY)
	})
}

// EyeLashCommand applies a colored lash texture to both eyes.
var EyeLashCommand = cli.Command{
	Name:  "eyelash",
	Usage: "Apply an eye lash cosmetic to both eyes",
	Flags: append([]cli.Flag{
		colorFlag("lash color as hex"),
		cli.StringFlag{
			Name:  "mask, m",
			Usage: "lash mask image `FILE` in canonical eye coordinates",
		},
	}, commonFlags...),
	Action: eyeLashAction,
}

func eyeLashAction(ctx *cli.Context) error {
	return run(ctx, "eyelash", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		lashMask, err := imgio.OpenMask(conf.MaskPath)

		if err != nil {
			return err
		}

		return effect.EyeLash(dst, src, pts, lashMask, conf.Color, conf.Amount)
	})
}

// EyeShadowCommand fuses three pigment layers and applies them to both
// eyes.
var EyeShadowCommand = cli.Command{
	Name:  "eyeshadow",
	Usage: "Apply a three-layer eye shadow to both eyes",
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:  "masks",
			Usage: "three layer mask `FILES`, comma separated",
		},
		cli.StringFlag{
			Name:  "colors",
			Usage: "three layer colors as hex, comma separated",
		},
	}, commonFlags...),
	Action: eyeShadowAction,
}

func eyeShadowAction(ctx *cli.Context) error {
	return run(ctx, "eyeshadow", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		if len(conf.MaskPaths) != effect.ShadowLayers || len(conf.Colors) != effect.ShadowLayers {
			return fmt.Errorf("eyeshadow: need %d masks and %d colors", effect.ShadowLayers, effect.ShadowLayers)
		}

		var masks [effect.ShadowLayers]*pixmap.Pixmap
		var colors [effect.ShadowLayers]pixmap.Color

		for i := 0; i < effect.ShadowLayers; i++ {
			m, err := imgio.OpenMask(conf.MaskPaths[i])

			if err != nil {
				return err
			}

			masks[i] = m
			colors[i] = conf.Colors[i]
		}

		return effect.EyeShadow(dst, src, pts, masks, colors, conf.Amount)
	})
}

// EyeCommand applies an arbitrary RGBA eye cosmetic texture.
var EyeCommand = cli.Command{
	Name:  "eye",
	Usage: "Apply an RGBA eye cosmetic texture to both eyes",
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:  "texture, t",
			Usage: "cosmetic texture `FILE` in canonical eye coordinates",
		},
	}, commonFlags...),
	Action: eyeAction,
}

func eyeAction(ctx *cli.Context) error {
	return run(ctx, "eye", func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error {
		cosmetic, err := imgio.Open(ctx.String("texture"))

		if err != nil {
			return err
		}

		return effect.Eye(dst, src, pts, cosmetic, conf.Amount)
	})
}
