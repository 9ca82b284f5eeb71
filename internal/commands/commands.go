// Package commands registers the facepaint CLI commands, one per
// cosmetic category.
package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/facepaint/facepaint/internal/config"
	"github.com/facepaint/facepaint/internal/event"
	"github.com/facepaint/facepaint/internal/imgio"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/fs"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

var log = event.Log

// commonFlags are shared by every cosmetic command.
var commonFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "src, i",
		Usage: "source face image `FILE`",
	},
	cli.StringFlag{
		Name:  "landmarks, l",
		Usage: "landmark json `FILE`",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output image `FILE`",
	},
	cli.Float64Flag{
		Name:  "amount, a",
		Usage: "blend amount between 0 and 1",
		Value: 1,
	},
	cli.IntFlag{
		Name:  "alpha",
		Usage: "cosmetic color opacity between 0 and 255",
		Value: 255,
	},
}

func colorFlag(usage string) cli.StringFlag {
	return cli.StringFlag{
		Name:  "color, c",
		Usage: usage,
		Value: "#b25050",
	}
}

// inputs loads the source image and landmark sequence of a run.
func inputs(conf *config.Config) (*pixmap.Pixmap, landmark.Sequence, error) {
	src, err := imgio.Open(conf.SourcePath)

	if err != nil {
		return nil, nil, err
	}

	pts, err := imgio.Landmarks(conf.LandmarksPath)

	if err != nil {
		return nil, nil, err
	}

	return src, pts, nil
}

// run executes a cosmetic action against the configured inputs and
// saves the result.
func run(ctx *cli.Context, name string, apply func(conf *config.Config, dst, src *pixmap.Pixmap, pts landmark.Sequence) error) error {
	start := time.Now()

	conf, err := config.NewConfig(ctx)

	if err != nil {
		return err
	}

	if dir := filepath.Dir(conf.OutputPath); !fs.Writable(dir) {
		return fmt.Errorf("%s: output directory %s is not writable", name, dir)
	}

	src, pts, err := inputs(conf)

	if err != nil {
		return err
	}

	dst := src.Clone()

	if err := apply(conf, dst, src, pts); err != nil {
		return err
	}

	if err := imgio.Save(dst, conf.OutputPath); err != nil {
		return err
	}

	log.Infof("%s: applied in %s", name, time.Since(start).Truncate(time.Millisecond))

	return nil
}
