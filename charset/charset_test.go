package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIRejectsNonASCIIText(t *testing.T) {
	_, err := ASCII.Encode("Süßigkeiten")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestASCIIRoundTrip(t *testing.T) {
	data, err := ASCII.Encode("plain text")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain text"), data)

	text, err := ASCII.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "plain text", text)
}

func TestASCIIDecodeRejectsHighBytes(t *testing.T) {
	_, err := ASCII.Decode([]byte{'a', 0xe9})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestUTF8(t *testing.T) {
	data, err := UTF8.Encode("Süßigkeiten")
	require.NoError(t, err)
	assert.Equal(t, []byte("Süßigkeiten"), data)

	_, err = UTF8.Decode([]byte{0xff, 0xfe})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLatin1RoundTrip(t *testing.T) {
	data, err := Latin1.Encode("Süßigkeiten")
	require.NoError(t, err)
	assert.Len(t, data, len("Süßigkeiten")-2) // ü and ß are one byte each

	text, err := Latin1.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Süßigkeiten", text)
}

func TestUTF16LittleEndian(t *testing.T) {
	data, err := UTF16LE.Encode("hi")
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 0, 'i', 0}, data)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF8", " Utf-8 "} {
		enc, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, UTF8, enc)
	}

	enc, err := Lookup("US-ASCII")
	require.NoError(t, err)
	assert.Equal(t, ASCII, enc)

	enc, err = Lookup("iso-8859-15")
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-15", enc.Name())

	_, err = Lookup("klingon")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)

	_, err = Lookup("")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, UTF8, OrDefault(nil))
	assert.Equal(t, Latin1, OrDefault(Latin1))
}
