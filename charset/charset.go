package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnsupportedEncoding is returned by Lookup for a name it does not recognize.
	ErrUnsupportedEncoding = errors.New("unsupported character encoding")

	// ErrUnrepresentable is returned by Encode when the text contains a character that the
	// encoding has no byte sequence for.
	ErrUnrepresentable = errors.New("text cannot be represented in character encoding")

	// ErrMalformed is returned by Decode (and by UTF-8 Encode) when the input is not a valid
	// byte sequence for the encoding.
	ErrMalformed = errors.New("data is not valid for character encoding")
)

// Encoding converts between Go strings and the bytes of a request or response body.
type Encoding interface {
	Name() string
	Encode(text string) ([]byte, error)
	Decode(data []byte) (string, error)
}

var (
	UTF8        Encoding = utf8Encoding{}
	ASCII       Encoding = asciiEncoding{}
	Latin1      Encoding = textEncoding{name: "ISO-8859-1", enc: charmap.ISO8859_1}
	Windows1252 Encoding = textEncoding{name: "windows-1252", enc: charmap.Windows1252}
	UTF16LE     Encoding = textEncoding{name: "UTF-16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE     Encoding = textEncoding{name: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
)

// Lookup returns the encoding registered under an IANA charset name, such as "utf-8",
// "us-ascii" or "iso-8859-15". Names are case-insensitive.
func Lookup(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "us-ascii", "ascii":
		return ASCII, nil
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnsupportedEncoding)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return textEncoding{name: canonical, enc: enc}, nil
}

// OrDefault returns enc, or UTF8 if enc is nil.
func OrDefault(enc Encoding) Encoding {
	if enc == nil {
		return UTF8
	}
	return enc
}

type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "UTF-8" }

func (utf8Encoding) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: UTF-8", ErrMalformed)
	}
	return []byte(text), nil
}

func (utf8Encoding) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: UTF-8", ErrMalformed)
	}
	return string(data), nil
}

// x/text has no strict 7-bit encoder; its charmaps all map the upper half.
type asciiEncoding struct{}

func (asciiEncoding) Name() string { return "US-ASCII" }

func (asciiEncoding) Encode(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for i, r := range text {
		if r >= utf8.RuneSelf {
			return nil, fmt.Errorf("%w: US-ASCII has no code for %q at offset %d", ErrUnrepresentable, r, i)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func (asciiEncoding) Decode(data []byte) (string, error) {
	for i, b := range data {
		if b >= utf8.RuneSelf {
			return "", fmt.Errorf("%w: US-ASCII byte 0x%02x at offset %d", ErrMalformed, b, i)
		}
	}
	return string(data), nil
}

type textEncoding struct {
	name string
	enc  encoding.Encoding
}

func (e textEncoding) Name() string { return e.name }

func (e textEncoding) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrMalformed)
	}
	out, err := e.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnrepresentable, e.name, err)
	}
	return out, nil
}

func (e textEncoding) Decode(data []byte) (string, error) {
	out, err := e.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrMalformed, e.name, err)
	}
	return string(out), nil
}
