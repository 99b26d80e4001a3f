package interchange

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arr-ai/dbc/dbc"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	cborEnc, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("creating CBOR encoder mode: %v", err))
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(Tree(nil)),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("creating CBOR decoder mode: %v", err))
	}
}

// EncodeCBOR writes d as CBOR with canonically sorted keys.
func EncodeCBOR(w io.Writer, d *dbc.Document) error {
	return cborEnc.NewEncoder(w).Encode(ToTree(d))
}

// DecodeCBOR reads a document written by EncodeCBOR.
func DecodeCBOR(r io.Reader) (*dbc.Document, error) {
	var t Tree
	if err := cborDec.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding CBOR: %w", err)
	}
	return FromTree(t)
}
