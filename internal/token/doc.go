// Package token defines the packed token record produced by the lexer.
// Invariants:
//   - Offset+Len never exceeds the owning unit's buffer length.
//   - Offsets fit 24 bits, lengths and unit indexes 12 bits, flags 8 bits;
//     every constructor and setter checks these ceilings and returns a
//     *LimitError instead of truncating.
//   - The 8-byte value payload is interpreted per Type: integer or float
//     bits for Number, a blob index for literals, an identifier slot for
//     names, an operator id for Punct.
package token
