package packid

import "errors"

// ErrIdentifierOverflow is returned when more than MaxIdentifiers distinct
// tokens have been packed. This is a contract breach by the caller rather
// than a runtime condition: the surrounding system never presents anywhere
// near 65535 concurrent records.
var ErrIdentifierOverflow = errors.New("identifier overflow: more than 65535 distinct tokens")

const (
	// MaxIdentifiers is the number of distinct tokens each half can hold.
	// Identifiers are 16-bit with 0 reserved as the absent sentinel.
	MaxIdentifiers = 0xFFFF

	// halfBits is the width of one packed half.
	halfBits = 16
)

// Codec maps identifier tokens to small integers and packs pairs of them
// into one int32. It is an explicit object constructed once by the
// component that issues cross-boundary ids and passed by reference; there
// is no package-level state.
//
// A Codec is not safe for concurrent use. The engine is single-threaded
// per document context, which is the only place a codec lives.
type Codec struct {
	byToken map[string]uint16
	byID    map[uint16]string
	next    uint16
}

// NewCodec creates an empty codec. The counter starts at 1; id 0 means
// "absent" on both halves.
func NewCodec() *Codec {
	return &Codec{
		byToken: make(map[string]uint16),
		byID:    make(map[uint16]string),
		next:    1,
	}
}

// Pack combines a payment token and an identity token into one int32.
// Either token may be empty, meaning that half is absent. Tokens are
// interned on first sight, so insertion order never disturbs earlier
// mappings.
func (c *Codec) Pack(paymentToken, identityToken string) (int32, error) {
	paymentID, err := c.intern(paymentToken)
	if err != nil {
		return 0, err
	}
	identityID, err := c.intern(identityToken)
	if err != nil {
		return 0, err
	}
	return int32(paymentID)<<halfBits | int32(identityID), nil
}

// Unpack is the exact inverse of Pack for any pair of tokens previously
// seen by this codec. Halves that are 0 or that name an id this codec
// never issued come back as empty strings; the caller treats those as
// "no record".
func (c *Codec) Unpack(packed int32) (paymentToken, identityToken string) {
	paymentID := uint16(packed >> halfBits)
	identityID := uint16(packed & MaxIdentifiers)
	return c.byID[paymentID], c.byID[identityID]
}

// intern returns the small integer for the token, assigning the next
// counter value on first sight. The empty token is the absent sentinel 0.
func (c *Codec) intern(token string) (uint16, error) {
	if token == "" {
		return 0, nil
	}
	if id, ok := c.byToken[token]; ok {
		return id, nil
	}
	if c.next == 0 {
		// The counter wrapped: all 65535 ids are taken.
		return 0, ErrIdentifierOverflow
	}
	id := c.next
	c.byToken[token] = id
	c.byID[id] = token
	c.next++
	return id, nil
}

// Len returns the number of distinct tokens interned so far.
// Growth is bounded by tokens ever observed, not by cache size.
func (c *Codec) Len() int {
	return len(c.byToken)
}
