// Package rowid provides encoding and decoding of packed row identifiers
// for RowScan.
//
// The rowid package implements the compact fixed-width identifier format
// found inside packed identifier blobs. This is the foundation for RowScan's
// diagnostic scanner.
//
// # Identifier Format
//
// An identifier exists in two forms:
//
//	packed:  14 bytes   [P0..P11][T0][T1]
//	textual: 18 chars   [C0..C15][T0][T1]
//
// Fields:
//   - P0..P11: 12 packed bytes, expanded to 16 textual characters. Each
//     group of 3 bytes (24 bits) maps to 4 six-bit symbols drawn from the
//     64-entry alphabet A-Z, a-z, 0-9, '+', '/'.
//   - T0, T1: 2 trailing bytes, emitted as literal characters. They are not
//     alphabet-transformed; this asymmetry is part of the on-disk format and
//     is preserved exactly.
//
// The textual form is therefore always 18 characters, of which the first 16
// are guaranteed to be alphabet characters regardless of input bytes. The
// trailing two characters may be non-printable; callers that display
// identifiers are responsible for quoting.
//
// A packed identifier is also commonly handled as its 28-character
// hexadecimal rendering (two hex digits per byte), which is how records
// appear when a blob is dumped as text. DecodeHex and EncodeHex accept and
// produce that rendering directly.
//
// # Usage
//
// Basic decoding and encoding:
//
//	codec := rowid.NewCodec()
//
//	// Decode a packed identifier
//	id, err := codec.Decode(raw)
//	if err != nil {
//	    return err
//	}
//
//	// Encode a textual identifier back to packed bytes
//	raw, err := codec.Encode(id)
//	if err != nil {
//	    return err
//	}
//
// Both directions are lossless: Encode(Decode(raw)) returns the original
// bytes for every 14-byte input, and Decode(Encode(id)) returns the original
// string for every well-formed 18-character identifier.
//
// # Error Handling
//
// The codec fails fast and returns no partial output:
//   - ErrInvalidLength: input is not exactly 14 bytes (Decode) or 18
//     characters (Encode)
//   - ErrInvalidCharacter: a character in the first 16 positions is outside
//     the 64-entry alphabet (Encode)
//   - ErrMalformedRecord: hexadecimal record text is the wrong width or
//     contains non-hex digits (DecodeHex)
//
// All errors wrap the sentinel values above and can be tested with
// errors.Is.
//
// # Thread Safety
//
// Codec instances are stateless and safe for concurrent use. The alphabet
// table and its reverse lookup are built once at package initialization and
// never mutated.
package rowid
