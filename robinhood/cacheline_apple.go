//go:build darwin && arm64

package robinhood

// bucketPad is the trailing padding, in bytes, added to bucket so that
// sizeof(bucket) lands on the 128-byte cache line Apple Silicon uses.
// Go generics can't size an array field from a runtime-computed type
// layout, so this targets the table's documented common case — an
// 8-byte key paired with an 8-byte value (splitmix64's own target: a
// fixed-width integer key) — and over- or under-shoots the exact target
// for instantiations with larger or smaller K/V.
const bucketPad = 128 - 18
