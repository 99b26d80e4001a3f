// Package textenc converts network description files between UTF-8 and the
// legacy encodings they are often saved in.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultFallbacks are tried, in order, on input that is not UTF-8.
var DefaultFallbacks = []string{"gbk", "windows-1252"}

// ErrUndecodable is returned when no encoding decodes the input cleanly.
var ErrUndecodable = errors.New("input is not valid in any of the candidate encodings")

var boms = []struct {
	prefix []byte
	name   string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, "utf-8"},
	{[]byte{0xFF, 0xFE}, "utf-16le"},
	{[]byte{0xFE, 0xFF}, "utf-16be"},
}

// Lookup finds an encoding by its WHATWG name or label, such as "gbk",
// "latin1" or "utf-16le".
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Decode converts data to UTF-8. A byte order mark selects UTF-8 or UTF-16
// and is dropped. Otherwise valid UTF-8 is returned as is, and failing that
// each fallback is tried in turn; the first that decodes without
// replacement characters wins. Decode also returns the name of the
// encoding it used.
func Decode(data []byte, fallbacks ...string) (string, string, error) {
	if out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data); err == nil && utf8.Valid(out) {
		return string(out), sniff(data), nil
	}
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbacks
	}
	for _, name := range fallbacks {
		enc, err := Lookup(name)
		if err != nil {
			return "", "", err
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
			return string(out), name, nil
		}
	}
	return "", "", ErrUndecodable
}

// BOM returns the byte order mark data starts with, or nil.
func BOM(data []byte) []byte {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom.prefix) {
			return append([]byte(nil), bom.prefix...)
		}
	}
	return nil
}

func sniff(data []byte) string {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom.prefix) {
			return bom.name
		}
	}
	return "utf-8"
}

// Encode converts text to the named encoding. It fails if text holds a
// character the encoding cannot represent.
func Encode(text, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding as %s: %w", name, err)
	}
	return out, nil
}

// Recode converts data from one encoding to another. An empty from detects
// the input encoding as Decode does with DefaultFallbacks.
func Recode(data []byte, from, to string) ([]byte, error) {
	if from == "" {
		text, _, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return Encode(text, to)
	}
	enc, err := Lookup(from)
	if err != nil {
		return nil, err
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding as %s: %w", from, err)
	}
	return Encode(string(text), to)
}
