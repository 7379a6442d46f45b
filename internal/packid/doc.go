// Package packid packs a pair of optional record identifier tokens into a
// single 32-bit integer for cross-boundary use. The payment identifier
// occupies the high 16 bits and the identity identifier the low 16 bits;
// each token is assigned a small integer on first sight and the mapping is
// memoized bidirectionally for the lifetime of the codec.
//
// The packed integer is an in-process convenience only. It is not stable
// across restarts and must never be persisted or sent on the wire.
package packid
