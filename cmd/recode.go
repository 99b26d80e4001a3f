package cmd

import (
	"github.com/urfave/cli"

	"github.com/arr-ai/dbc/textenc"
)

var recodeFrom string
var recodeTo string

var recodeCommand = cli.Command{
	Name:      "recode",
	Aliases:   []string{"toutf8"},
	Usage:     "Convert a file between UTF-8 and a legacy encoding",
	ArgsUsage: "[file]",
	Action:    recode,
	Flags: []cli.Flag{
		outputFlag,
		cli.StringFlag{
			Name:        "from",
			Usage:       "input encoding (default: detect)",
			Destination: &recodeFrom,
		},
		cli.StringFlag{
			Name:        "to",
			Usage:       "output encoding",
			Value:       "utf-8",
			Destination: &recodeTo,
		},
	},
}

var gbkToUTF8Command = cli.Command{
	Name:      "gbk2utf8",
	Usage:     "Convert GBK to UTF-8",
	ArgsUsage: "[file]",
	Action:    recodeAction("gbk", "utf-8"),
	Flags:     []cli.Flag{outputFlag},
}

var utf8ToGBKCommand = cli.Command{
	Name:      "utf82gbk",
	Usage:     "Convert UTF-8 to GBK",
	ArgsUsage: "[file]",
	Action:    recodeAction("utf-8", "gbk"),
	Flags:     []cli.Flag{outputFlag},
}

func recode(c *cli.Context) error {
	return recodeFile(c.Args().First(), recodeFrom, recodeTo)
}

func recodeAction(from, to string) cli.ActionFunc {
	return func(c *cli.Context) error {
		return recodeFile(c.Args().First(), from, to)
	}
}

func recodeFile(path, from, to string) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	out, err := textenc.Recode(data, from, to)
	if err != nil {
		return err
	}
	return writeOutput(outFile, out)
}
