// Package interchange converts documents to and from a generic tree of maps,
// lists and scalars, and reads and writes that tree as JSON or YAML.
//
// Keys are snake_case. Optional parts of a document (bit timing, value
// tables, a signal's multiplexer, range and unit) are present in the tree
// only when they are present in the document.
package interchange

import (
	"fmt"

	"github.com/arr-ai/dbc/dbc"
)

// Tree is a JSON-like object.
type Tree = map[string]interface{}

// names maps the values of an enumeration to their names in the tree.
type names[T comparable] map[T]string

func (n names[T]) name(v T) string {
	if s, has := n[v]; has {
		return s
	}
	return fmt.Sprint(v)
}

func (n names[T]) value(s string) (T, bool) {
	for v, name := range n {
		if name == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}

var (
	byteOrders = names[dbc.ByteOrder]{
		dbc.BigEndian:    "big_endian",
		dbc.LittleEndian: "little_endian",
	}
	valueTypes = names[dbc.ValueType]{
		dbc.Unsigned: "unsigned",
		dbc.Signed:   "signed",
	}
	envVarKinds = names[dbc.EnvVarKind]{
		dbc.IntegerEnvVar: "integer",
		dbc.FloatEnvVar:   "float",
		dbc.StringEnvVar:  "string",
		dbc.DataEnvVar:    "data",
	}
	scopes = names[dbc.AttributeScope]{
		dbc.NetworkScope:                 "network",
		dbc.NodeScope:                    "node",
		dbc.MessageScope:                 "message",
		dbc.SignalScope:                  "signal",
		dbc.EnvironmentVariableScope:     "env_var",
		dbc.NodeEnvironmentVariableScope: "node_env_var",
		dbc.NodeTxMessageScope:           "node_tx_message",
		dbc.NodeMappedRxSignalScope:      "node_mapped_rx_signal",
	}
)

// ToTree converts d to a tree. The tree holds only maps, []interface{},
// strings, bools, int64, uint64 and float64.
func ToTree(d *dbc.Document) Tree {
	t := Tree{
		"version":     string(d.Version),
		"new_symbols": stringList(d.NewSymbols),
		"nodes":       stringList(d.Nodes),
		"messages":    list(d.Messages, messageTree),

		"environment_variables":     list(d.EnvironmentVariables, envVarTree),
		"environment_variable_data": list(d.EnvironmentVariableData, envVarDataTree),

		"comments":              list(d.Comments, commentTree),
		"attribute_definitions": list(d.AttributeDefinitions, attributeDefinitionTree),
		"attribute_defaults":    list(d.AttributeDefaults, attributeDefaultTree),
		"attribute_values":      list(d.AttributeValues, attributeValueTree),

		"signal_value_descriptions":  list(d.SignalValueDescriptions, signalValueDescriptionsTree),
		"env_var_value_descriptions": list(d.EnvironmentVariableValueDescriptions, envVarValueDescriptionsTree),
	}
	if d.BitTiming != nil {
		bt := Tree{}
		if v := d.BitTiming.Value; v != nil {
			bt["value"] = Tree{"baudrate": v.Baudrate, "btr1": v.BTR1, "btr2": v.BTR2}
		}
		t["bit_timing"] = bt
	}
	if d.ValueTables != nil {
		t["value_tables"] = list(d.ValueTables, valueTableTree)
	}
	return t
}

func list[T any](items []T, f func(T) Tree) []interface{} {
	result := make([]interface{}, 0, len(items))
	for _, item := range items {
		result = append(result, f(item))
	}
	return result
}

func stringList(items []string) []interface{} {
	result := make([]interface{}, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result
}

func valueDescriptionsList(values []dbc.ValueDescription) []interface{} {
	return list(values, func(v dbc.ValueDescription) Tree {
		return Tree{"code": v.Code, "label": string(v.Label)}
	})
}

func valueTableTree(vt dbc.ValueTable) Tree {
	return Tree{"name": vt.Name, "values": valueDescriptionsList(vt.Values)}
}

func messageTree(m dbc.Message) Tree {
	h := m.Header
	return Tree{
		"header": Tree{
			"id":          uint64(h.ID),
			"name":        h.Name,
			"size":        uint64(h.Size),
			"transmitter": h.Transmitter,
		},
		"signals": list(m.Signals, signalTree),
	}
}

func signalTree(s dbc.Signal) Tree {
	t := Tree{
		"name":       s.Name,
		"start_bit":  uint64(s.StartBit),
		"size":       uint64(s.Size),
		"byte_order": byteOrders.name(s.ByteOrder),
		"value_type": valueTypes.name(s.ValueType),
		"factor":     s.Factor,
		"offset":     s.Offset,
		"receivers":  stringList(s.Receivers),
	}
	if mux := s.Multiplexer; mux != nil {
		m := Tree{"is_switch": mux.IsSwitch}
		if mux.SwitchValue != nil {
			m["switch_value"] = uint64(*mux.SwitchValue)
		}
		t["multiplexer"] = m
	}
	if s.Range != nil {
		t["range"] = Tree{"min": s.Range.Min, "max": s.Range.Max}
	}
	if s.Unit != nil {
		t["unit"] = string(*s.Unit)
	}
	return t
}

func objectTree(o dbc.ObjectRef) Tree {
	switch o := o.(type) {
	case dbc.NodeRef:
		return Tree{"type": "node", "node": o.Node}
	case dbc.MessageRef:
		return Tree{"type": "message", "message_id": uint64(o.MessageID)}
	case dbc.SignalRef:
		return Tree{"type": "signal", "message_id": uint64(o.MessageID), "signal": o.Signal}
	case dbc.EnvVarRef:
		return Tree{"type": "env_var", "env_var": o.EnvironmentVariable}
	}
	return Tree{"type": "network"}
}

func scalarTree(v dbc.Scalar) Tree {
	if s, ok := v.(dbc.StringValue); ok {
		return Tree{"string": string(s)}
	}
	d, _ := v.(dbc.DoubleValue)
	return Tree{"double": float64(d)}
}

func valueTypeTree(vt dbc.AttributeValueType) Tree {
	switch vt := vt.(type) {
	case dbc.IntType:
		return Tree{"type": "int", "min": int64(vt.Min), "max": int64(vt.Max)}
	case dbc.HexType:
		return Tree{"type": "hex", "min": int64(vt.Min), "max": int64(vt.Max)}
	case dbc.FloatType:
		return Tree{"type": "float", "min": vt.Min, "max": vt.Max}
	case dbc.EnumType:
		labels := make([]interface{}, 0, len(vt.Labels))
		for _, l := range vt.Labels {
			labels = append(labels, string(l))
		}
		return Tree{"type": "enum", "labels": labels}
	}
	return Tree{"type": "string"}
}

func commentTree(c dbc.Comment) Tree {
	return Tree{"object": objectTree(c.Object), "text": string(c.Text)}
}

func attributeDefinitionTree(a dbc.AttributeDefinition) Tree {
	return Tree{"scope": scopes.name(a.Scope), "name": a.Name, "type": valueTypeTree(a.Type)}
}

func attributeDefaultTree(a dbc.AttributeDefault) Tree {
	return Tree{"relation": a.Relation, "name": a.Name, "value": scalarTree(a.Value)}
}

func attributeValueTree(a dbc.AttributeValue) Tree {
	return Tree{"name": a.Name, "object": objectTree(a.Object), "value": scalarTree(a.Value)}
}

func envVarTree(ev dbc.EnvironmentVariable) Tree {
	return Tree{
		"name":          ev.Name,
		"kind":          envVarKinds.name(ev.Kind),
		"min":           ev.Min,
		"max":           ev.Max,
		"unit":          string(ev.Unit),
		"initial_value": ev.InitialValue,
		"id":            uint64(ev.ID),
		"access_type":   uint64(ev.AccessType),
		"access_nodes":  stringList(ev.AccessNodes),
	}
}

func envVarDataTree(ev dbc.EnvironmentVariableData) Tree {
	return Tree{"name": ev.Name, "size": uint64(ev.Size)}
}

func signalValueDescriptionsTree(s dbc.SignalValueDescriptions) Tree {
	return Tree{
		"message_id": uint64(s.MessageID),
		"signal":     s.Signal,
		"values":     valueDescriptionsList(s.Values),
	}
}

func envVarValueDescriptionsTree(e dbc.EnvironmentVariableValueDescriptions) Tree {
	return Tree{"env_var": e.EnvironmentVariable, "values": valueDescriptionsList(e.Values)}
}
