package dbc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteTo renders the document in canonical layout.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	rw := &renderWriter{w: w}

	rw.line("VERSION " + d.Version.Quoted())
	rw.blank()

	rw.line("NS_:")
	for _, symbol := range d.NewSymbols {
		rw.line("\t" + symbol)
	}
	rw.blank()

	if d.BitTiming != nil {
		rw.line(d.BitTiming.String())
	}
	rw.line(renderNodes(d.Nodes))
	rw.blank()

	if d.ValueTables != nil {
		for _, vt := range d.ValueTables {
			rw.line(vt.String())
		}
		rw.blank()
	}

	for _, m := range d.Messages {
		rw.line(m.String())
		rw.blank()
	}

	writeSection(rw, d.EnvironmentVariables)
	writeSection(rw, d.EnvironmentVariableData)
	writeSection(rw, d.Comments)
	writeSection(rw, d.AttributeDefinitions)
	writeSection(rw, d.AttributeDefaults)
	writeSection(rw, d.AttributeValues)
	writeSection(rw, d.SignalValueDescriptions)
	writeSection(rw, d.EnvironmentVariableValueDescriptions)

	return rw.n, rw.err
}

func (d *Document) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}

// renderWriter remembers the first write error and stops writing after it.
type renderWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (rw *renderWriter) line(s string) {
	if rw.err != nil {
		return
	}
	n, err := io.WriteString(rw.w, s+"\n")
	rw.n += int64(n)
	rw.err = err
}

func (rw *renderWriter) blank() {
	rw.line("")
}

func writeSection[T fmt.Stringer](rw *renderWriter, items []T) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		rw.line(item.String())
	}
	rw.blank()
}

func renderNodes(nodes []string) string {
	var sb strings.Builder
	sb.WriteString("BU_:")
	for _, n := range nodes {
		sb.WriteString(" " + n)
	}
	return sb.String()
}

func (bt BitTiming) String() string {
	if bt.Value == nil {
		return "BS_:"
	}
	return "BS_: " + bt.Value.String()
}

func (v BitTimingValue) String() string {
	return fmt.Sprintf("%d:%d:%d", v.Baudrate, v.BTR1, v.BTR2)
}

func (vd ValueDescription) String() string {
	return strconv.FormatInt(vd.Code, 10) + " " + vd.Label.Quoted()
}

func renderValueDescriptions(sb *strings.Builder, values []ValueDescription) {
	for _, v := range values {
		sb.WriteString(" " + v.String())
	}
}

func (vt ValueTable) String() string {
	var sb strings.Builder
	sb.WriteString("VAL_TABLE_ " + vt.Name)
	renderValueDescriptions(&sb, vt.Values)
	sb.WriteString(";")
	return sb.String()
}

func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Header.String())
	for _, s := range m.Signals {
		sb.WriteString("\n " + s.String())
	}
	return sb.String()
}

func (h MessageHeader) String() string {
	return fmt.Sprintf("BO_ %d %s: %d %s", h.ID, h.Name, h.Size, h.Transmitter)
}

func (m Multiplexer) String() string {
	var sb strings.Builder
	if m.SwitchValue != nil {
		sb.WriteString("m" + strconv.FormatUint(uint64(*m.SwitchValue), 10))
	}
	if m.IsSwitch {
		sb.WriteString("M")
	}
	return sb.String()
}

func (r Range) String() string {
	return "[" + formatNumber(r.Min) + "|" + formatNumber(r.Max) + "]"
}

func (b ByteOrder) String() string {
	if b == LittleEndian {
		return "1"
	}
	return "0"
}

func (v ValueType) String() string {
	if v == Signed {
		return "-"
	}
	return "+"
}

func (s Signal) String() string {
	var sb strings.Builder
	sb.WriteString("SG_ " + s.Name + " ")
	if s.Multiplexer != nil {
		if mux := s.Multiplexer.String(); mux != "" {
			sb.WriteString(mux + " ")
		}
	}
	fmt.Fprintf(&sb, ": %d|%d@%s%s (%s,%s)",
		s.StartBit, s.Size, s.ByteOrder, s.ValueType, formatNumber(s.Factor), formatNumber(s.Offset))
	if s.Range != nil {
		sb.WriteString(" " + s.Range.String())
	}
	if s.Unit != nil {
		sb.WriteString(" " + s.Unit.Quoted())
	}
	if len(s.Receivers) > 0 {
		sb.WriteString(" " + strings.Join(s.Receivers, ","))
	}
	return sb.String()
}

func (NetworkRef) String() string   { return "" }
func (r NodeRef) String() string    { return "BU_ " + r.Node }
func (r MessageRef) String() string { return "BO_ " + strconv.FormatUint(uint64(r.MessageID), 10) }
func (r SignalRef) String() string {
	return "SG_ " + strconv.FormatUint(uint64(r.MessageID), 10) + " " + r.Signal
}
func (r EnvVarRef) String() string { return "EV_ " + r.EnvironmentVariable }

// withObject renders keyword, the object reference if any, and rest.
func withObject(keyword string, object ObjectRef, rest string) string {
	if object != nil {
		if ref := object.String(); ref != "" {
			return keyword + " " + ref + " " + rest
		}
	}
	return keyword + " " + rest
}

func (c Comment) String() string {
	return withObject("CM_", c.Object, c.Text.Quoted()+";")
}

var scopeKeywords = [...]string{
	NetworkScope:                 "BA_DEF_",
	NodeScope:                    "BA_DEF_ BU_",
	MessageScope:                 "BA_DEF_ BO_",
	SignalScope:                  "BA_DEF_ SG_",
	EnvironmentVariableScope:     "BA_DEF_ EV_",
	NodeEnvironmentVariableScope: "BA_DEF_REL_ BU_EV_REL_",
	NodeTxMessageScope:           "BA_DEF_REL_ BU_BO_REL_",
	NodeMappedRxSignalScope:      "BA_DEF_REL_ BU_SG_REL_",
}

func (s AttributeScope) String() string {
	if s < 0 || int(s) >= len(scopeKeywords) {
		return fmt.Sprintf("AttributeScope(%d)", int(s))
	}
	return scopeKeywords[s]
}

func (t IntType) String() string {
	return fmt.Sprintf("INT %d %d", t.Min, t.Max)
}

func (t HexType) String() string {
	return fmt.Sprintf("HEX %d %d", t.Min, t.Max)
}

func (t FloatType) String() string {
	return "FLOAT " + formatNumber(t.Min) + " " + formatNumber(t.Max)
}

func (StringType) String() string { return "STRING" }

func (t EnumType) String() string {
	if len(t.Labels) == 0 {
		return "ENUM"
	}
	labels := make([]string, 0, len(t.Labels))
	for _, l := range t.Labels {
		labels = append(labels, l.Quoted())
	}
	return "ENUM " + strings.Join(labels, ",")
}

func quoteName(name string) string {
	return `"` + name + `"`
}

func (a AttributeDefinition) String() string {
	return fmt.Sprintf("%s %s %v;", a.Scope, quoteName(a.Name), a.Type)
}

func (v DoubleValue) String() string { return formatNumber(float64(v)) }
func (v StringValue) String() string { return CharString(v).Quoted() }

func (a AttributeDefault) String() string {
	keyword := "BA_DEF_DEF_"
	if a.Relation {
		keyword = "BA_DEF_DEF_REL_"
	}
	return fmt.Sprintf("%s %s %v;", keyword, quoteName(a.Name), a.Value)
}

func (a AttributeValue) String() string {
	return withObject("BA_ "+quoteName(a.Name), a.Object, fmt.Sprintf("%v;", a.Value))
}

func (k EnvVarKind) String() string {
	switch k {
	case IntegerEnvVar:
		return "integer"
	case FloatEnvVar:
		return "float"
	case StringEnvVar:
		return "string"
	case DataEnvVar:
		return "data"
	}
	return fmt.Sprintf("EnvVarKind(%d)", int(k))
}

func (ev EnvironmentVariable) String() string {
	digit, access := EncodeEnvVarKind(ev.Kind, ev.AccessType)
	nodes := NoSender
	if len(ev.AccessNodes) > 0 {
		nodes = strings.Join(ev.AccessNodes, ",")
	}
	return fmt.Sprintf("EV_ %s: %d [%s|%s] %s %s %d DUMMY_NODE_VECTOR%X %s;",
		ev.Name, digit, formatNumber(ev.Min), formatNumber(ev.Max), ev.Unit.Quoted(),
		formatNumber(ev.InitialValue), ev.ID, access, nodes)
}

func (ev EnvironmentVariableData) String() string {
	return fmt.Sprintf("ENVVAR_DATA_ %s: %d;", ev.Name, ev.Size)
}

func (s SignalValueDescriptions) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VAL_ %d %s", s.MessageID, s.Signal)
	renderValueDescriptions(&sb, s.Values)
	sb.WriteString(";")
	return sb.String()
}

func (e EnvironmentVariableValueDescriptions) String() string {
	var sb strings.Builder
	sb.WriteString("VAL_ " + e.EnvironmentVariable)
	renderValueDescriptions(&sb, e.Values)
	sb.WriteString(";")
	return sb.String()
}
