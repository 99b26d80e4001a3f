package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/arr-ai/dbc/dbc"
	"github.com/arr-ai/dbc/interchange"
	"github.com/arr-ai/dbc/textenc"
)

var outFile string
var outEncoding string
var inFormat string

var outputFlag = cli.StringFlag{
	Name:        "output, o",
	Usage:       "output file (default stdout)",
	TakesFile:   true,
	Destination: &outFile,
}

var toJSONCommand = cli.Command{
	Name:      "tojson",
	Aliases:   []string{"dbc2json"},
	Usage:     "Convert a DBC file to JSON",
	ArgsUsage: "[file]",
	Action:    exportAction(interchange.EncodeJSON),
	Flags:     []cli.Flag{outputFlag},
}

var toYAMLCommand = cli.Command{
	Name:      "toyaml",
	Usage:     "Convert a DBC file to YAML",
	ArgsUsage: "[file]",
	Action:    exportAction(interchange.EncodeYAML),
	Flags:     []cli.Flag{outputFlag},
}

var toCBORCommand = cli.Command{
	Name:      "tocbor",
	Usage:     "Convert a DBC file to CBOR",
	ArgsUsage: "[file]",
	Action:    exportAction(interchange.EncodeCBOR),
	Flags:     []cli.Flag{outputFlag},
}

var fromJSONCommand = cli.Command{
	Name:      "fromjson",
	Aliases:   []string{"json2dbc"},
	Usage:     "Convert JSON, YAML or CBOR back to a DBC file",
	ArgsUsage: "[file]",
	Action:    fromJSON,
	Flags: []cli.Flag{
		outputFlag,
		cli.StringFlag{
			Name:        "format, f",
			Usage:       "input format: yaml (also reads JSON) or cbor",
			Value:       "yaml",
			Destination: &inFormat,
		},
		cli.StringFlag{
			Name:        "encoding",
			Usage:       "encoding of the DBC output (default from config, else utf-8)",
			Destination: &outEncoding,
		},
	},
}

func exportAction(encode func(io.Writer, *dbc.Document) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		d, _, err := readDocument(c.Args().First())
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := encode(&buf, d); err != nil {
			return err
		}
		return writeOutput(outFile, buf.Bytes())
	}
}

func fromJSON(c *cli.Context) error {
	data, err := readInput(c.Args().First())
	if err != nil {
		return err
	}
	var d *dbc.Document
	switch inFormat {
	case "json", "yaml":
		d, err = interchange.DecodeYAML(bytes.NewReader(data))
	case "cbor":
		d, err = interchange.DecodeCBOR(bytes.NewReader(data))
	default:
		return fmt.Errorf("unknown format %q", inFormat)
	}
	if err != nil {
		return err
	}
	enc := outEncoding
	if enc == "" {
		enc = config.OutputEncoding
	}
	out, err := textenc.Encode(d.String(), enc)
	if err != nil {
		return err
	}
	return writeOutput(outFile, out)
}
