package record

import "strings"

// Card network identifiers reported alongside payment suggestions.
// These are stable tokens the UI maps to icons; the engine never
// interprets them beyond passing them through.
const (
	NetworkVisa       = "visa"
	NetworkMastercard = "mastercard"
	NetworkAmex       = "amex"
	NetworkDiscover   = "discover"
	NetworkGeneric    = "generic"
)

// networkPrefixes maps issuer number prefixes to network identifiers.
// Longest prefixes must come first within a group so that e.g. "65" is
// tested before "6".
var networkPrefixes = []struct {
	prefix  string
	network string
}{
	{"34", NetworkAmex},
	{"37", NetworkAmex},
	{"4", NetworkVisa},
	{"51", NetworkMastercard},
	{"52", NetworkMastercard},
	{"53", NetworkMastercard},
	{"54", NetworkMastercard},
	{"55", NetworkMastercard},
	{"6011", NetworkDiscover},
	{"65", NetworkDiscover},
}

// NetworkKind returns the payment network identifier for the card,
// detected from the leading digits of the number. Unrecognized prefixes
// report NetworkGeneric.
func (c *CreditCard) NetworkKind() string {
	for _, p := range networkPrefixes {
		if strings.HasPrefix(c.Number, p.prefix) {
			return p.network
		}
	}
	return NetworkGeneric
}
