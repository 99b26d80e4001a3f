package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func utf16(t *testing.T, e unicode.Endianness, s string) []byte {
	t.Helper()
	out, err := unicode.UTF16(e, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestDecode(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		data     []byte
		text     string
		encoding string
	}{
		{"ascii", []byte(`VERSION ""`), `VERSION ""`, "utf-8"},
		{"utf-8", []byte(`"°/s"`), `"°/s"`, "utf-8"},
		{"utf-8 bom", []byte("\xef\xbb\xbfNS_:"), "NS_:", "utf-8"},
		{"utf-16le bom", utf16(t, unicode.LittleEndian, "BU_: ABS"), "BU_: ABS", "utf-16le"},
		{"utf-16be bom", utf16(t, unicode.BigEndian, "BU_: ABS"), "BU_: ABS", "utf-16be"},
		{"gbk", []byte("CM_ \"\xd6\xd0\xce\xc4\";"), `CM_ "中文";`, "gbk"},
		{"windows-1252", []byte("caf\xe9"), "café", "windows-1252"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			text, enc, err := Decode(test.data)
			require.NoError(t, err)
			assert.Equal(t, test.text, text)
			assert.Equal(t, test.encoding, enc)
		})
	}
}

func TestDecodeExplicitFallbacks(t *testing.T) {
	t.Parallel()

	text, enc, err := Decode([]byte("caf\xe9"), "latin1")
	require.NoError(t, err)
	assert.Equal(t, "café", text)
	assert.Equal(t, "latin1", enc)

	_, _, err = Decode([]byte("caf\xe9"), "gbk")
	assert.ErrorIs(t, err, ErrUndecodable)

	_, _, err = Decode([]byte("caf\xe9"), "klingon")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := Encode(`CM_ "中文";`, "gbk")
	require.NoError(t, err)
	assert.Equal(t, []byte("CM_ \"\xd6\xd0\xce\xc4\";"), out)

	out, err = Encode("café", "utf-8")
	require.NoError(t, err)
	assert.Equal(t, []byte("café"), out)

	_, err = Encode("中文", "windows-1252")
	assert.Error(t, err)

	_, err = Encode("x", "klingon")
	assert.Error(t, err)
}

func TestRecode(t *testing.T) {
	t.Parallel()

	gbk := []byte("CM_ \"\xd6\xd0\xce\xc4\";")

	out, err := Recode(gbk, "", "utf-8")
	require.NoError(t, err)
	assert.Equal(t, `CM_ "中文";`, string(out))

	out, err = Recode(gbk, "gbk", "utf-8")
	require.NoError(t, err)
	assert.Equal(t, `CM_ "中文";`, string(out))

	back, err := Recode(out, "utf-8", "gbk")
	require.NoError(t, err)
	assert.Equal(t, gbk, back)

	_, err = Recode(gbk, "klingon", "utf-8")
	assert.Error(t, err)
}

func TestBOM(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, BOM([]byte("\xef\xbb\xbfNS_:")))
	assert.Equal(t, []byte{0xFF, 0xFE}, BOM(utf16(t, unicode.LittleEndian, "x")))
	assert.Nil(t, BOM([]byte("NS_:")))
}
