package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/dbc/dbc"
	"github.com/arr-ai/dbc/textenc"
)

//nolint:gochecknoglobals
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func readInput(path string) ([]byte, error) {
	switch path {
	case "", "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(path)
	}
}

func writeOutput(path string, data []byte) error {
	switch path {
	case "", "-":
		_, err := stdout.Write(data)
		return err
	default:
		return os.WriteFile(path, data, 0o644)
	}
}

func parseOptions(path string) []dbc.Option {
	opts := []dbc.Option{dbc.WithFilename(path)}
	if config.Verbose {
		opts = append(opts, dbc.WithLogger(logrus.StandardLogger()))
	}
	return opts
}

// readDocument reads and parses a DBC file, returning the document and the
// encoding the file was saved in.
func readDocument(path string) (*dbc.Document, string, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, "", err
	}
	d, _, enc, err := decodeDocument(data, displayName(path))
	return d, enc, err
}

// decodeDocument parses data, also returning its decoded text.
func decodeDocument(data []byte, name string) (d *dbc.Document, text, enc string, err error) {
	text, enc, err = textenc.Decode(data, config.Encodings...)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", name, err)
	}
	if enc != "utf-8" {
		logrus.WithField("file", name).Debugf("decoded as %s", enc)
	}
	d, err = dbc.Parse(text, parseOptions(name)...)
	if err != nil {
		return nil, "", "", describe(err)
	}
	return d, text, enc, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}

// describe prefixes parse errors with their code.
func describe(err error) error {
	var e *dbc.Error
	if !errors.As(err, &e) {
		return err
	}
	if config.Verbose {
		return fmt.Errorf("%s: %s", e.Kind.Code(), e.Detail())
	}
	return fmt.Errorf("%s: %w", e.Kind.Code(), err)
}
