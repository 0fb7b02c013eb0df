package rowid

import (
	"encoding/hex"
	"fmt"
)

const (
	// RawSize is the number of bytes in a packed identifier.
	RawSize = 14

	// EncodedSize is the number of characters in a textual identifier.
	EncodedSize = 18

	// HexSize is the number of characters in the hexadecimal rendering of
	// a packed identifier.
	HexSize = 2 * RawSize

	// packedPrefix is the number of packed bytes covered by the six-bit
	// symbol groups; the remaining 2 bytes pass through literally.
	packedPrefix = 12
)

// alphabet is the 64-entry symbol table for the packed prefix.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// reverse maps a character back to its six-bit alphabet index, or -1.
var reverse = buildReverse()

func buildReverse() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		table[alphabet[i]] = int8(i)
	}
	return table
}

// Errors
var (
	ErrInvalidLength    = &CodecError{"identifier length is invalid"}
	ErrInvalidCharacter = &CodecError{"character outside identifier alphabet"}
	ErrMalformedRecord  = &CodecError{"malformed record"}
)

// CodecError represents an identifier codec error
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// Codec converts between packed and textual identifier forms
type Codec struct{}

// NewCodec creates a new identifier codec instance
func NewCodec() *Codec {
	return &Codec{}
}

// Decode converts a 14-byte packed identifier into its 18-character textual
// form: 16 alphabet characters from the first 12 bytes, then the trailing 2
// bytes as literal characters.
func (c *Codec) Decode(raw []byte) (string, error) {
	if len(raw) != RawSize {
		return "", fmt.Errorf("decode: got %d bytes, want %d: %w", len(raw), RawSize, ErrInvalidLength)
	}

	var out [EncodedSize]byte
	for g := 0; g < packedPrefix/3; g++ {
		v := uint32(raw[g*3])<<16 | uint32(raw[g*3+1])<<8 | uint32(raw[g*3+2])
		out[g*4] = alphabet[v>>18&0x3F]
		out[g*4+1] = alphabet[v>>12&0x3F]
		out[g*4+2] = alphabet[v>>6&0x3F]
		out[g*4+3] = alphabet[v&0x3F]
	}

	out[16] = raw[12]
	out[17] = raw[13]

	return string(out[:]), nil
}

// Encode converts an 18-character textual identifier back into its 14-byte
// packed form. The first 16 characters must be alphabet characters; the
// trailing 2 characters are taken as literal byte values.
func (c *Codec) Encode(id string) ([]byte, error) {
	if len(id) != EncodedSize {
		return nil, fmt.Errorf("encode: got %d characters, want %d: %w", len(id), EncodedSize, ErrInvalidLength)
	}

	raw := make([]byte, RawSize)
	for g := 0; g < packedPrefix/3; g++ {
		var v uint32
		for j := 0; j < 4; j++ {
			ch := id[g*4+j]
			idx := reverse[ch]
			if idx < 0 {
				return nil, fmt.Errorf("encode: character %q at position %d: %w", ch, g*4+j, ErrInvalidCharacter)
			}
			v = v<<6 | uint32(idx)
		}
		raw[g*3] = byte(v >> 16)
		raw[g*3+1] = byte(v >> 8)
		raw[g*3+2] = byte(v)
	}

	raw[12] = id[16]
	raw[13] = id[17]

	return raw, nil
}

// DecodeHex decodes a 28-character hexadecimal record rendering into its
// textual identifier form.
func (c *Codec) DecodeHex(rec string) (string, error) {
	if len(rec) != HexSize {
		return "", fmt.Errorf("record hex: got %d characters, want %d: %w", len(rec), HexSize, ErrMalformedRecord)
	}

	raw, err := hex.DecodeString(rec)
	if err != nil {
		return "", fmt.Errorf("record hex: %v: %w", err, ErrMalformedRecord)
	}

	return c.Decode(raw)
}

// EncodeHex converts a textual identifier into the 28-character hexadecimal
// rendering of its packed form.
func (c *Codec) EncodeHex(id string) (string, error) {
	raw, err := c.Encode(id)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}
