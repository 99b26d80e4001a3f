package dbc

import "fmt"

// Document is a whole network description. Every list keeps source order.
type Document struct {
	Version    CharString
	NewSymbols []string
	// BitTiming is nil when the file has no BS_ section at all.
	BitTiming *BitTiming
	Nodes     []string
	// ValueTables is nil when the file has no VAL_TABLE_ lines.
	ValueTables []ValueTable
	Messages    []Message

	EnvironmentVariables    []EnvironmentVariable
	EnvironmentVariableData []EnvironmentVariableData

	Comments             []Comment
	AttributeDefinitions []AttributeDefinition
	AttributeDefaults    []AttributeDefault
	AttributeValues      []AttributeValue

	SignalValueDescriptions              []SignalValueDescriptions
	EnvironmentVariableValueDescriptions []EnvironmentVariableValueDescriptions
}

// Message looks up the first message with the given id.
func (d *Document) Message(id uint32) (*Message, bool) {
	for i := range d.Messages {
		if d.Messages[i].Header.ID == id {
			return &d.Messages[i], true
		}
	}
	return nil, false
}

// BitTiming is a BS_ section. Value is nil for a bare "BS_:".
type BitTiming struct {
	Value *BitTimingValue
}

type BitTimingValue struct {
	Baudrate uint64
	BTR1     uint64
	BTR2     uint64
}

type ValueTable struct {
	Name   string
	Values []ValueDescription
}

// ValueDescription maps a raw value to a label.
type ValueDescription struct {
	Code  int64
	Label CharString
}

type Message struct {
	Header  MessageHeader
	Signals []Signal
}

type MessageHeader struct {
	ID          uint32
	Name        string
	Size        uint32
	Transmitter string
}

const extendedIDFlag = 1 << 31

// IsExtended reports whether the id carries the 29-bit frame flag.
func (h MessageHeader) IsExtended() bool {
	return h.ID&extendedIDFlag != 0
}

// RawID is the CAN identifier without the extended frame flag.
func (h MessageHeader) RawID() uint32 {
	return h.ID &^ extendedIDFlag
}

type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

type ValueType int

const (
	Unsigned ValueType = iota
	Signed
)

type Signal struct {
	Name        string
	Multiplexer *Multiplexer
	StartBit    uint32
	Size        uint32
	ByteOrder   ByteOrder
	ValueType   ValueType
	Factor      float64
	Offset      float64
	Range       *Range
	Unit        *CharString
	Receivers   []string
}

// Multiplexer is the "m<N>", "M" or "m<N>M" marker of a signal.
type Multiplexer struct {
	// SwitchValue is the switch value under which the signal is present.
	SwitchValue *uint32
	// IsSwitch marks the multiplexer switch itself.
	IsSwitch bool
}

type Range struct {
	Min float64
	Max float64
}

// ObjectRef is the object an attribute value or comment is attached to.
type ObjectRef interface {
	fmt.Stringer
	isObjectRef()
}

type (
	NetworkRef struct{}
	NodeRef    struct{ Node string }
	MessageRef struct{ MessageID uint32 }
	SignalRef  struct {
		MessageID uint32
		Signal    string
	}
	EnvVarRef struct{ EnvironmentVariable string }
)

func (NetworkRef) isObjectRef() {}
func (NodeRef) isObjectRef()    {}
func (MessageRef) isObjectRef() {}
func (SignalRef) isObjectRef()  {}
func (EnvVarRef) isObjectRef()  {}

type Comment struct {
	Object ObjectRef
	Text   CharString
}

// AttributeScope is the kind of object an attribute definition applies to.
// The relation scopes apply to pairs of objects.
type AttributeScope int

const (
	NetworkScope AttributeScope = iota
	NodeScope
	MessageScope
	SignalScope
	EnvironmentVariableScope
	NodeEnvironmentVariableScope
	NodeTxMessageScope
	NodeMappedRxSignalScope
)

// IsRelation reports whether the scope is one of the BA_DEF_REL_ scopes.
func (s AttributeScope) IsRelation() bool {
	return s >= NodeEnvironmentVariableScope
}

// AttributeValueType is the declared type of an attribute.
type AttributeValueType interface {
	fmt.Stringer
	isAttributeValueType()
}

type (
	IntType struct {
		Min, Max int32
	}
	HexType struct {
		Min, Max int32
	}
	FloatType struct {
		Min, Max float64
	}
	StringType struct{}
	EnumType   struct {
		Labels []CharString
	}
)

func (IntType) isAttributeValueType()    {}
func (HexType) isAttributeValueType()    {}
func (FloatType) isAttributeValueType()  {}
func (StringType) isAttributeValueType() {}
func (EnumType) isAttributeValueType()   {}

type AttributeDefinition struct {
	Scope AttributeScope
	Name  string
	Type  AttributeValueType
}

// Scalar is the literal value of an attribute.
type Scalar interface {
	fmt.Stringer
	isScalar()
}

type (
	DoubleValue float64
	StringValue CharString
)

func (DoubleValue) isScalar() {}
func (StringValue) isScalar() {}

type AttributeDefault struct {
	// Relation is set for BA_DEF_DEF_REL_ defaults.
	Relation bool
	Name     string
	Value    Scalar
}

type AttributeValue struct {
	Name   string
	Object ObjectRef
	Value  Scalar
}

type EnvVarKind int

const (
	IntegerEnvVar EnvVarKind = iota
	FloatEnvVar
	StringEnvVar
	DataEnvVar
)

// Access types of an environment variable. StringAccessFlag forces the
// variable's kind to string.
const (
	UnrestrictedAccess uint16 = 0x0000
	ReadAccess         uint16 = 0x0001
	WriteAccess        uint16 = 0x0002
	ReadWriteAccess    uint16 = 0x0003
	StringAccessFlag   uint16 = 0x8000
)

type EnvironmentVariable struct {
	Name         string
	Kind         EnvVarKind
	Min          float64
	Max          float64
	Unit         CharString
	InitialValue float64
	ID           uint32
	// AccessType holds the raw DUMMY_NODE_VECTOR bits.
	AccessType  uint16
	AccessNodes []string
}

type EnvironmentVariableData struct {
	Name string
	Size uint32
}

type SignalValueDescriptions struct {
	MessageID uint32
	Signal    string
	Values    []ValueDescription
}

type EnvironmentVariableValueDescriptions struct {
	EnvironmentVariable string
	Values              []ValueDescription
}
