package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/facepaint/facepaint/internal/commands"
	"github.com/facepaint/facepaint/internal/event"
)

var version = "development"

var log = event.Log

func main() {
	app := cli.NewApp()
	app.Name = "facepaint"
	app.Usage = "Facial cosmetics compositing engine"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		if ctx.GlobalBool("debug") {
			log.SetLevel(logrus.DebugLevel)
		}

		return nil
	}
	app.Commands = []cli.Command{
		commands.BlushCommand,
		commands.BrowCommand,
		commands.EyeCommand,
		commands.EyeLashCommand,
		commands.EyeShadowCommand,
		commands.LipCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
