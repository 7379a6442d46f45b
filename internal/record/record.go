package record

import (
	"strings"

	"github.com/nao1215/formfill/internal/model"
)

// Kind distinguishes the two categories of stored records.
type Kind int

const (
	// KindProfile is an identity record: name, address, contact data.
	KindProfile Kind = iota

	// KindCreditCard is a payment record.
	KindCreditCard
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindCreditCard:
		return "credit_card"
	default:
		return "profile"
	}
}

// Record is the capability the engine needs from any stored record: given
// a semantic field type, return the stored text for that type, or empty if
// the record holds nothing for it.
type Record interface {
	// GUID returns the record's opaque identifier token.
	GUID() string

	// FieldText returns the stored text for the semantic type, or "".
	FieldText(t model.FieldType) string
}

// Profile is a stored identity record.
type Profile struct {
	// ID is the record's opaque identifier token.
	ID string `json:"id" yaml:"id"`

	// FirstName is the given name.
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`

	// LastName is the family name.
	LastName string `json:"last_name,omitempty" yaml:"last_name,omitempty"`

	// Email is the contact email address.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Company is the company or organization name.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// AddressLine1 is the first street address line.
	AddressLine1 string `json:"address_line1,omitempty" yaml:"address_line1,omitempty"`

	// AddressLine2 is the second street address line.
	AddressLine2 string `json:"address_line2,omitempty" yaml:"address_line2,omitempty"`

	// City is the city or locality.
	City string `json:"city,omitempty" yaml:"city,omitempty"`

	// State is the state, province, or region.
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Zip is the postal code.
	Zip string `json:"zip,omitempty" yaml:"zip,omitempty"`

	// Country is the country name.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// Phone is the home phone number.
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`

	// Fax is the fax number.
	Fax string `json:"fax,omitempty" yaml:"fax,omitempty"`
}

// GUID returns the profile's identifier token.
func (p *Profile) GUID() string { return p.ID }

// FieldText returns the stored text for the semantic type.
// Unknown and payment types resolve to empty.
func (p *Profile) FieldText(t model.FieldType) string {
	switch t {
	case model.TypeFirstName:
		return p.FirstName
	case model.TypeLastName:
		return p.LastName
	case model.TypeFullName:
		return p.FullName()
	case model.TypeEmail:
		return p.Email
	case model.TypeCompany:
		return p.Company
	case model.TypeAddressLine1:
		return p.AddressLine1
	case model.TypeAddressLine2:
		return p.AddressLine2
	case model.TypeCity:
		return p.City
	case model.TypeState:
		return p.State
	case model.TypeZip:
		return p.Zip
	case model.TypeCountry:
		return p.Country
	case model.TypePhoneNumber:
		return p.Phone
	case model.TypeFaxNumber:
		return p.Fax
	default:
		return ""
	}
}

// FullName joins the first and last name, skipping empty components.
func (p *Profile) FullName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}

// CreditCard is a stored payment record.
type CreditCard struct {
	// ID is the record's opaque identifier token.
	ID string `json:"id" yaml:"id"`

	// NameOnCard is the cardholder name.
	NameOnCard string `json:"name_on_card,omitempty" yaml:"name_on_card,omitempty"`

	// Number is the literal card number, digits only.
	Number string `json:"number,omitempty" yaml:"number,omitempty"`

	// ExpMonth is the two-digit expiration month.
	ExpMonth string `json:"exp_month,omitempty" yaml:"exp_month,omitempty"`

	// ExpYear is the four-digit expiration year.
	ExpYear string `json:"exp_year,omitempty" yaml:"exp_year,omitempty"`

	// Verification is the card verification code.
	// Never included in suggestions or reports.
	Verification string `json:"verification,omitempty" yaml:"verification,omitempty"`
}

// GUID returns the card's identifier token.
func (c *CreditCard) GUID() string { return c.ID }

// FieldText returns the stored text for the semantic type.
// Note that TypeCardNumber resolves to the literal number; masking happens
// only when suggestions are displayed, never when filling.
func (c *CreditCard) FieldText(t model.FieldType) string {
	switch t {
	case model.TypeCardName:
		return c.NameOnCard
	case model.TypeCardNumber:
		return c.Number
	case model.TypeCardExpMonth:
		return c.ExpMonth
	case model.TypeCardExpYear:
		return c.ExpYear
	case model.TypeCardVerification:
		return c.Verification
	default:
		return ""
	}
}

// maskRune replaces hidden card number digits in the obfuscated view.
const maskRune = "*"

// lastFourDigits is the number of trailing digits left visible.
const lastFourDigits = 4

// ObfuscatedNumber returns the card number with all but the last four
// digits masked. Used for suggestion display; filling always uses the
// literal stored number.
func (c *CreditCard) ObfuscatedNumber() string {
	if len(c.Number) <= lastFourDigits {
		return c.Number
	}
	return strings.Repeat(maskRune, len(c.Number)-lastFourDigits) + c.LastFour()
}

// LastFour returns the last four digits of the card number, or the whole
// number if it is shorter than four digits.
func (c *CreditCard) LastFour() string {
	if len(c.Number) <= lastFourDigits {
		return c.Number
	}
	return c.Number[len(c.Number)-lastFourDigits:]
}
