//go:build !(darwin && arm64)

package robinhood

// bucketPad is the trailing padding, in bytes, added to bucket so that
// sizeof(bucket) lands on the 64-byte cache line used everywhere except
// Apple Silicon. See cacheline_apple.go for the same caveat: this targets
// the table's documented common case of an 8-byte key and an 8-byte value.
const bucketPad = 64 - 18
