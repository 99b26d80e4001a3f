package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/arr-ai/dbc/dbc"
)

var listMessage string

var listCommand = cli.Command{
	Name:      "list",
	Aliases:   []string{"ls"},
	Usage:     "List the messages of a DBC file, or the signals of one message",
	ArgsUsage: "[file]",
	Action:    list,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "message, m",
			Usage:       "list the signals of the message with this id or name",
			Destination: &listMessage,
		},
	},
}

func list(c *cli.Context) error {
	d, _, err := readDocument(c.Args().First())
	if err != nil {
		return err
	}
	if listMessage == "" {
		listMessages(stdout, d)
		return nil
	}
	m, err := findMessage(d, listMessage)
	if err != nil {
		return err
	}
	listSignals(stdout, m)
	return nil
}

func findMessage(d *dbc.Document, key string) (*dbc.Message, error) {
	if id, err := strconv.ParseUint(key, 0, 32); err == nil {
		if m, has := d.Message(uint32(id)); has {
			return m, nil
		}
	}
	for i, m := range d.Messages {
		if m.Header.Name == key {
			return &d.Messages[i], nil
		}
	}
	return nil, fmt.Errorf("no message %q", key)
}

func listMessages(w io.Writer, d *dbc.Document) {
	var data [][]string
	for _, m := range d.Messages {
		h := m.Header
		data = append(data, []string{
			formatID(h),
			h.Name,
			strconv.FormatUint(uint64(h.Size), 10),
			h.Transmitter,
			strconv.Itoa(len(m.Signals)),
		})
	}
	render(w, []string{"ID", "NAME", "SIZE", "TRANSMITTER", "SIGNALS"}, data)
}

func listSignals(w io.Writer, m *dbc.Message) {
	var data [][]string
	for _, s := range m.Signals {
		mux := ""
		if s.Multiplexer != nil {
			mux = s.Multiplexer.String()
		}
		limits := ""
		if s.Range != nil {
			limits = s.Range.String()
		}
		unit := ""
		if s.Unit != nil {
			unit = string(*s.Unit)
		}
		order := "big"
		if s.ByteOrder == dbc.LittleEndian {
			order = "little"
		}
		kind := "unsigned"
		if s.ValueType == dbc.Signed {
			kind = "signed"
		}
		data = append(data, []string{
			s.Name,
			mux,
			fmt.Sprintf("%d|%d", s.StartBit, s.Size),
			order,
			kind,
			dbc.DoubleValue(s.Factor).String(),
			dbc.DoubleValue(s.Offset).String(),
			limits,
			unit,
			strings.Join(s.Receivers, ","),
		})
	}
	render(w, []string{"NAME", "MUX", "BITS", "ORDER", "TYPE", "FACTOR", "OFFSET", "RANGE", "UNIT", "RECEIVERS"}, data)
}

// formatID shows the CAN id, marking extended frames.
func formatID(h dbc.MessageHeader) string {
	if h.IsExtended() {
		return fmt.Sprintf("0x%08X (ext)", h.RawID())
	}
	return fmt.Sprintf("0x%03X", h.RawID())
}

func render(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
