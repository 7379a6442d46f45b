package model

// FieldType is the inferred semantic meaning of a form field, such as a
// given name or a payment card number. A field that the classifier could
// not identify keeps TypeUnknown.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and set membership. The String() method
// provides human-readable output when needed.
type FieldType int

const (
	// TypeUnknown marks a field the classifier could not identify.
	// Unknown fields never influence section boundaries.
	TypeUnknown FieldType = iota

	// TypeFirstName is a given name.
	TypeFirstName

	// TypeLastName is a family name.
	TypeLastName

	// TypeFullName is a complete name in a single field.
	TypeFullName

	// TypeEmail is an email address.
	TypeEmail

	// TypeCompany is a company or organization name.
	TypeCompany

	// TypeAddressLine1 is the first street address line.
	TypeAddressLine1

	// TypeAddressLine2 is the second street address line.
	TypeAddressLine2

	// TypeCity is a city or locality.
	TypeCity

	// TypeState is a state, province, or region.
	TypeState

	// TypeZip is a postal or ZIP code.
	TypeZip

	// TypeCountry is a country name.
	TypeCountry

	// TypePhoneNumber is a home or daytime phone number.
	TypePhoneNumber

	// TypeFaxNumber is a fax number.
	TypeFaxNumber

	// TypeCardName is the cardholder name on a payment card.
	TypeCardName

	// TypeCardNumber is a payment card number.
	TypeCardNumber

	// TypeCardExpMonth is a payment card expiration month.
	TypeCardExpMonth

	// TypeCardExpYear is a payment card 4-digit expiration year.
	TypeCardExpYear

	// TypeCardVerification is a payment card verification code.
	TypeCardVerification
)

// String returns a human-readable representation of the field type.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// fieldTypeNames maps field types to stable lowercase names.
// These names appear in reports and classifier responses.
var fieldTypeNames = map[FieldType]string{
	TypeUnknown:          "unknown",
	TypeFirstName:        "first_name",
	TypeLastName:         "last_name",
	TypeFullName:         "full_name",
	TypeEmail:            "email",
	TypeCompany:          "company",
	TypeAddressLine1:     "address_line1",
	TypeAddressLine2:     "address_line2",
	TypeCity:             "city",
	TypeState:            "state",
	TypeZip:              "zip",
	TypeCountry:          "country",
	TypePhoneNumber:      "phone_number",
	TypeFaxNumber:        "fax_number",
	TypeCardName:         "card_name",
	TypeCardNumber:       "card_number",
	TypeCardExpMonth:     "card_exp_month",
	TypeCardExpYear:      "card_exp_year",
	TypeCardVerification: "card_verification",
}

// FieldTypeFromName returns the field type for a stable name produced by
// FieldType.String(). Unrecognized names map to TypeUnknown so that a
// classifier response can never introduce a type this engine does not know.
func FieldTypeFromName(name string) FieldType {
	for t, n := range fieldTypeNames {
		if n == name {
			return t
		}
	}
	return TypeUnknown
}

// TypeGroup is a coarse category of semantic field types. Groups drive the
// section-appropriateness check: payment fields and identity fields never
// share a section, and phone/fax fields are exempt from the repeated-type
// boundary rule.
type TypeGroup int

const (
	// GroupNone marks fields with no actionable group.
	// Such fields are never filled.
	GroupNone TypeGroup = iota

	// GroupName covers name components of an identity record.
	GroupName

	// GroupAddress covers the non-name identity data: street address,
	// locality, contact email, and company.
	GroupAddress

	// GroupPhone covers home/daytime phone numbers.
	GroupPhone

	// GroupFax covers fax numbers.
	GroupFax

	// GroupPayment covers payment card data.
	GroupPayment
)

// String returns a human-readable representation of the group.
func (g TypeGroup) String() string {
	switch g {
	case GroupNone:
		return "none"
	case GroupName:
		return "name"
	case GroupAddress:
		return "address"
	case GroupPhone:
		return "phone"
	case GroupFax:
		return "fax"
	case GroupPayment:
		return "payment"
	default:
		return "none"
	}
}

// typeGroupMapping maps each field type to its group.
// This centralized mapping is the single source of truth for section
// appropriateness across the engine.
var typeGroupMapping = map[FieldType]TypeGroup{
	TypeUnknown:          GroupNone,
	TypeFirstName:        GroupName,
	TypeLastName:         GroupName,
	TypeFullName:         GroupName,
	TypeEmail:            GroupAddress,
	TypeCompany:          GroupAddress,
	TypeAddressLine1:     GroupAddress,
	TypeAddressLine2:     GroupAddress,
	TypeCity:             GroupAddress,
	TypeState:            GroupAddress,
	TypeZip:              GroupAddress,
	TypeCountry:          GroupAddress,
	TypePhoneNumber:      GroupPhone,
	TypeFaxNumber:        GroupFax,
	TypeCardName:         GroupPayment,
	TypeCardNumber:       GroupPayment,
	TypeCardExpMonth:     GroupPayment,
	TypeCardExpYear:      GroupPayment,
	TypeCardVerification: GroupPayment,
}

// Group returns the group of the field type.
// Unmapped types report GroupNone.
func (t FieldType) Group() TypeGroup {
	if g, ok := typeGroupMapping[t]; ok {
		return g
	}
	return GroupNone
}

// IsPayment reports whether the field type belongs to the payment group.
func (t FieldType) IsPayment() bool {
	return t.Group() == GroupPayment
}

// IsPhone reports whether the field type is a phone or fax number.
// Forms often ask for multiple phone numbers, and phone/fax detection
// accuracy is low, so these types are exempt from the repeated-type
// section boundary rule.
func (t FieldType) IsPhone() bool {
	g := t.Group()
	return g == GroupPhone || g == GroupFax
}
