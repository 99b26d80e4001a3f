package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type VersionTags struct {
	Version   string
	GitCommit string
	BuildDate string
	BuildOS   string
}

var configFile string
var verboseMode bool

func Main(info VersionTags) {
	app := cli.NewApp()

	app.EnableBashCompletion = true

	app.Name = "dbc"
	app.Usage = "parse, format and convert CAN network descriptions"
	app.Version = info.Version

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config",
			Usage:       "YAML configuration file",
			EnvVar:      "DBC_CONFIG",
			TakesFile:   true,
			Destination: &configFile,
		},
		cli.BoolFlag{
			Name:        "verbose, v",
			Usage:       "trace parsing",
			Destination: &verboseMode,
		},
	}
	app.Before = func(*cli.Context) error {
		c, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		if verboseMode {
			c.Verbose = true
		}
		if c.Verbose {
			logrus.SetLevel(logrus.TraceLevel)
		}
		config = c
		return nil
	}

	app.Commands = []cli.Command{
		toJSONCommand,
		toYAMLCommand,
		toCBORCommand,
		fromJSONCommand,
		fmtCommand,
		recodeCommand,
		gbkToUTF8Command,
		utf8ToGBKCommand,
		listCommand,
		versionCommand(info),
	}

	err := app.Run(os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}
