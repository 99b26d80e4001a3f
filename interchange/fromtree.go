package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/arr-ai/dbc/dbc"
)

// ErrInvalidTree is wrapped by every error FromTree returns.
var ErrInvalidTree = errors.New("invalid interchange tree")

// FromTree converts a tree produced by ToTree, or decoded from JSON or YAML,
// back to a document.
func FromTree(t Tree) (*dbc.Document, error) {
	r := &reader{}
	d := &dbc.Document{
		Version:    dbc.CharString(r.str("version", t["version"])),
		NewSymbols: r.strs("new_symbols", t["new_symbols"]),
		Nodes:      r.strs("nodes", t["nodes"]),
	}
	if v, has := t["bit_timing"]; has {
		bt := r.tree("bit_timing", v)
		d.BitTiming = &dbc.BitTiming{}
		if v, has := bt["value"]; has && v != nil {
			d.BitTiming.Value = &dbc.BitTimingValue{}
			r.record("bit_timing.value", v, d.BitTiming.Value)
		}
	}
	if v, has := t["value_tables"]; has {
		d.ValueTables = []dbc.ValueTable{}
		for i, e := range r.list("value_tables", v) {
			path := index("value_tables", i)
			vt := r.tree(path, e)
			d.ValueTables = append(d.ValueTables, dbc.ValueTable{
				Name:   r.str(path+".name", vt["name"]),
				Values: r.valueDescriptions(path+".values", vt["values"]),
			})
		}
	}
	for i, e := range r.list("messages", t["messages"]) {
		d.Messages = append(d.Messages, r.message(index("messages", i), e))
	}
	for i, e := range r.list("environment_variables", t["environment_variables"]) {
		d.EnvironmentVariables = append(d.EnvironmentVariables, r.envVar(index("environment_variables", i), e))
	}
	for i, e := range r.list("environment_variable_data", t["environment_variable_data"]) {
		var ev dbc.EnvironmentVariableData
		r.record(index("environment_variable_data", i), e, &ev)
		d.EnvironmentVariableData = append(d.EnvironmentVariableData, ev)
	}
	for i, e := range r.list("comments", t["comments"]) {
		path := index("comments", i)
		c := r.tree(path, e)
		d.Comments = append(d.Comments, dbc.Comment{
			Object: r.object(path+".object", c["object"]),
			Text:   dbc.CharString(r.str(path+".text", c["text"])),
		})
	}
	for i, e := range r.list("attribute_definitions", t["attribute_definitions"]) {
		path := index("attribute_definitions", i)
		a := r.tree(path, e)
		d.AttributeDefinitions = append(d.AttributeDefinitions, dbc.AttributeDefinition{
			Scope: enum(r, scopes, path+".scope", a["scope"]),
			Name:  r.str(path+".name", a["name"]),
			Type:  r.valueType(path+".type", a["type"]),
		})
	}
	for i, e := range r.list("attribute_defaults", t["attribute_defaults"]) {
		path := index("attribute_defaults", i)
		a := r.tree(path, e)
		d.AttributeDefaults = append(d.AttributeDefaults, dbc.AttributeDefault{
			Relation: r.boolean(path+".relation", a["relation"]),
			Name:     r.str(path+".name", a["name"]),
			Value:    r.scalar(path+".value", a["value"]),
		})
	}
	for i, e := range r.list("attribute_values", t["attribute_values"]) {
		path := index("attribute_values", i)
		a := r.tree(path, e)
		d.AttributeValues = append(d.AttributeValues, dbc.AttributeValue{
			Name:   r.str(path+".name", a["name"]),
			Object: r.object(path+".object", a["object"]),
			Value:  r.scalar(path+".value", a["value"]),
		})
	}
	for i, e := range r.list("signal_value_descriptions", t["signal_value_descriptions"]) {
		path := index("signal_value_descriptions", i)
		s := r.tree(path, e)
		d.SignalValueDescriptions = append(d.SignalValueDescriptions, dbc.SignalValueDescriptions{
			MessageID: uint32(r.unsigned(path+".message_id", s["message_id"], 32)),
			Signal:    r.str(path+".signal", s["signal"]),
			Values:    r.valueDescriptions(path+".values", s["values"]),
		})
	}
	for i, e := range r.list("env_var_value_descriptions", t["env_var_value_descriptions"]) {
		path := index("env_var_value_descriptions", i)
		ev := r.tree(path, e)
		d.EnvironmentVariableValueDescriptions = append(d.EnvironmentVariableValueDescriptions,
			dbc.EnvironmentVariableValueDescriptions{
				EnvironmentVariable: r.str(path+".env_var", ev["env_var"]),
				Values:              r.valueDescriptions(path+".values", ev["values"]),
			})
	}
	if r.err != nil {
		return nil, r.err
	}
	return d, nil
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// reader converts tree values and keeps the first error it meets.
type reader struct {
	err error
}

func (r *reader) fail(path, format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s: %s", ErrInvalidTree, path, fmt.Sprintf(format, args...))
	}
}

func (r *reader) tree(path string, v interface{}) Tree {
	t, ok := v.(map[string]interface{})
	if !ok {
		r.fail(path, "expected object, got %T", v)
		return Tree{}
	}
	return t
}

// list accepts a missing list as empty.
func (r *reader) list(path string, v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	l, ok := v.([]interface{})
	if !ok {
		r.fail(path, "expected list, got %T", v)
		return nil
	}
	return l
}

func (r *reader) str(path string, v interface{}) string {
	s, ok := v.(string)
	if !ok {
		r.fail(path, "expected string, got %T", v)
	}
	return s
}

func (r *reader) strs(path string, v interface{}) []string {
	var result []string
	for i, e := range r.list(path, v) {
		result = append(result, r.str(index(path, i), e))
	}
	return result
}

func (r *reader) boolean(path string, v interface{}) bool {
	b, ok := v.(bool)
	if !ok {
		r.fail(path, "expected bool, got %T", v)
	}
	return b
}

// numberText returns the decimal text of any numeric value a decoder may
// produce.
func numberText(v interface{}) (string, bool) {
	switch v := v.(type) {
	case json.Number:
		return string(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func (r *reader) unsigned(path string, v interface{}, bits int) uint64 {
	s, ok := numberText(v)
	if !ok {
		r.fail(path, "expected number, got %T", v)
		return 0
	}
	u, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		r.fail(path, "%s is not a %d-bit unsigned integer", s, bits)
	}
	return u
}

func (r *reader) signed(path string, v interface{}, bits int) int64 {
	s, ok := numberText(v)
	if !ok {
		r.fail(path, "expected number, got %T", v)
		return 0
	}
	i, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		r.fail(path, "%s is not a %d-bit integer", s, bits)
	}
	return i
}

func (r *reader) number(path string, v interface{}) float64 {
	s, ok := numberText(v)
	if !ok {
		r.fail(path, "expected number, got %T", v)
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(path, "%s is not a number", s)
	}
	return f
}

func enum[T comparable](r *reader, n names[T], path string, v interface{}) T {
	s := r.str(path, v)
	value, ok := n.value(s)
	if !ok {
		r.fail(path, "unknown value %q", s)
	}
	return value
}

// record decodes a flat object into the struct out points to. Keys are
// matched to field names ignoring case and underscores.
func (r *reader) record(path string, v interface{}, out interface{}) {
	if r.err != nil {
		return
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  numberHook,
		ErrorUnused: true,
		MatchName: func(key, field string) bool {
			return strings.EqualFold(strings.ReplaceAll(key, "_", ""), field)
		},
		Result: out,
	})
	if err != nil {
		r.fail(path, "%v", err)
		return
	}
	if err := dec.Decode(r.tree(path, v)); err != nil {
		r.fail(path, "%v", err)
	}
}

// numberHook converts json.Number, which mapstructure treats as a string,
// to the numeric kind of the target field.
func numberHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return n.Int64()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(string(n), 10, 64)
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	}
	return data, nil
}

func (r *reader) valueDescriptions(path string, v interface{}) []dbc.ValueDescription {
	var result []dbc.ValueDescription
	for i, e := range r.list(path, v) {
		var vd dbc.ValueDescription
		r.record(index(path, i), e, &vd)
		result = append(result, vd)
	}
	return result
}

func (r *reader) message(path string, v interface{}) dbc.Message {
	t := r.tree(path, v)
	var m dbc.Message
	r.record(path+".header", t["header"], &m.Header)
	for i, e := range r.list(path+".signals", t["signals"]) {
		m.Signals = append(m.Signals, r.signal(index(path+".signals", i), e))
	}
	return m
}

func (r *reader) signal(path string, v interface{}) dbc.Signal {
	t := r.tree(path, v)
	s := dbc.Signal{
		Name:      r.str(path+".name", t["name"]),
		StartBit:  uint32(r.unsigned(path+".start_bit", t["start_bit"], 32)),
		Size:      uint32(r.unsigned(path+".size", t["size"], 32)),
		ByteOrder: enum(r, byteOrders, path+".byte_order", t["byte_order"]),
		ValueType: enum(r, valueTypes, path+".value_type", t["value_type"]),
		Factor:    r.number(path+".factor", t["factor"]),
		Offset:    r.number(path+".offset", t["offset"]),
		Receivers: r.strs(path+".receivers", t["receivers"]),
	}
	if v, has := t["multiplexer"]; has && v != nil {
		mux := r.tree(path+".multiplexer", v)
		s.Multiplexer = &dbc.Multiplexer{IsSwitch: r.boolean(path+".multiplexer.is_switch", mux["is_switch"])}
		if sv, has := mux["switch_value"]; has && sv != nil {
			n := uint32(r.unsigned(path+".multiplexer.switch_value", sv, 32))
			s.Multiplexer.SwitchValue = &n
		}
	}
	if v, has := t["range"]; has && v != nil {
		s.Range = &dbc.Range{}
		r.record(path+".range", v, s.Range)
	}
	if v, has := t["unit"]; has && v != nil {
		unit := dbc.CharString(r.str(path+".unit", v))
		s.Unit = &unit
	}
	return s
}

func (r *reader) object(path string, v interface{}) dbc.ObjectRef {
	t := r.tree(path, v)
	switch kind := r.str(path+".type", t["type"]); kind {
	case "network":
		return dbc.NetworkRef{}
	case "node":
		return dbc.NodeRef{Node: r.str(path+".node", t["node"])}
	case "message":
		return dbc.MessageRef{MessageID: uint32(r.unsigned(path+".message_id", t["message_id"], 32))}
	case "signal":
		return dbc.SignalRef{
			MessageID: uint32(r.unsigned(path+".message_id", t["message_id"], 32)),
			Signal:    r.str(path+".signal", t["signal"]),
		}
	case "env_var":
		return dbc.EnvVarRef{EnvironmentVariable: r.str(path+".env_var", t["env_var"])}
	default:
		r.fail(path+".type", "unknown object type %q", kind)
	}
	return dbc.NetworkRef{}
}

func (r *reader) scalar(path string, v interface{}) dbc.Scalar {
	t := r.tree(path, v)
	if s, has := t["string"]; has {
		return dbc.StringValue(r.str(path+".string", s))
	}
	if d, has := t["double"]; has {
		return dbc.DoubleValue(r.number(path+".double", d))
	}
	r.fail(path, "expected double or string")
	return dbc.DoubleValue(0)
}

func (r *reader) valueType(path string, v interface{}) dbc.AttributeValueType {
	t := r.tree(path, v)
	switch kind := r.str(path+".type", t["type"]); kind {
	case "int":
		return dbc.IntType{
			Min: int32(r.signed(path+".min", t["min"], 32)),
			Max: int32(r.signed(path+".max", t["max"], 32)),
		}
	case "hex":
		return dbc.HexType{
			Min: int32(r.signed(path+".min", t["min"], 32)),
			Max: int32(r.signed(path+".max", t["max"], 32)),
		}
	case "float":
		return dbc.FloatType{Min: r.number(path+".min", t["min"]), Max: r.number(path+".max", t["max"])}
	case "string":
		return dbc.StringType{}
	case "enum":
		var labels []dbc.CharString
		for _, l := range r.strs(path+".labels", t["labels"]) {
			labels = append(labels, dbc.CharString(l))
		}
		return dbc.EnumType{Labels: labels}
	default:
		r.fail(path+".type", "unknown value type %q", kind)
	}
	return dbc.StringType{}
}

func (r *reader) envVar(path string, v interface{}) dbc.EnvironmentVariable {
	t := r.tree(path, v)
	return dbc.EnvironmentVariable{
		Name:         r.str(path+".name", t["name"]),
		Kind:         enum(r, envVarKinds, path+".kind", t["kind"]),
		Min:          r.number(path+".min", t["min"]),
		Max:          r.number(path+".max", t["max"]),
		Unit:         dbc.CharString(r.str(path+".unit", t["unit"])),
		InitialValue: r.number(path+".initial_value", t["initial_value"]),
		ID:           uint32(r.unsigned(path+".id", t["id"], 32)),
		AccessType:   uint16(r.unsigned(path+".access_type", t["access_type"], 16)),
		AccessNodes:  r.strs(path+".access_nodes", t["access_nodes"]),
	}
}
