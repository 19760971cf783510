// Package rank implements order keys: opaque strings whose bytewise
// comparison defines the position of tasks in a list.
//
// REPRESENTATION:
//
// A key is an integer part plus an optional fraction, both written in the
// base-62 digit alphabet 0-9A-Za-z. The alphabet is in ASCII order, so
// comparing key strings byte by byte compares the values they encode.
// The head byte of the integer part encodes the part's length: heads
// 'a'..'z' are non-negative with total length head-'a'+2, heads 'A'..'Z'
// are negative with total length 'Z'-head+2. The integer zero is "a0";
// appending at the end counts upward through "a1", "az", "b00" and so on,
// growing the integer by one byte every 62-fold step.
//
// DENSITY:
//
// Between any two distinct keys another key always exists. When the digit
// gap between two bounds closes, the fraction is extended by appending
// digits, so repeated insertion at one boundary lengthens keys instead of
// running out of positions. Between picks digit midpoints, halving the
// remaining headroom per insertion rather than stepping flush against a
// bound.
//
// INVARIANTS:
//
//   - Fractions never end in the zero digit; "a1" and "a10" would
//     otherwise be distinct keys with nothing representable between them.
//   - The smallest integer ("A" plus 26 zero digits) is reserved as the
//     left edge of the key space and is not a valid key by itself.
//   - Allocation is deterministic: the same bounds always produce the
//     same key.
//
// Keys survive any storage that preserves their bytes; sorting the stored
// strings bytewise reproduces the order they were allocated in.
package rank
