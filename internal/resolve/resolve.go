package resolve

import (
	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/record"
)

// Fixed-width national phone number segmentation. A ten-digit number
// splits into a three-digit prefix and a seven-digit suffix; forms that
// present two input boxes size them accordingly, so the live field's
// maximum length is all the resolver needs to pick the right segment.
const (
	// PhonePrefixLength is the length of the leading phone segment.
	PhonePrefixLength = 3

	// PhoneSuffixLength is the length of the trailing phone segment.
	PhoneSuffixLength = 7
)

// SelectMatcher maps stored text to the closest matching option of a
// selection-list control. The concrete matcher lives outside this core;
// the resolver only needs the call contract.
type SelectMatcher interface {
	// MatchOption returns the option value to select for the record's
	// text under the semantic type, or ok=false for a no-op.
	MatchOption(r record.Record, t model.FieldType, field model.LiveField) (value string, ok bool)
}

// Resolve produces the string to place in the live field for the record
// and semantic type. ok=false means the field must be left unchanged.
//
// The control kind is matched exhaustively:
//   - selection lists delegate to the matcher (no-op when matcher is nil);
//   - month controls emit "year-month" for payment expiration, and only
//     when the record holds both components, never a partial date;
//   - hidden fields are never filled;
//   - free text resolves to the stored text, with the phone-number
//     subgroup subject to prefix/suffix segmentation.
func Resolve(r record.Record, t model.FieldType, field model.LiveField, matcher SelectMatcher) (string, bool) {
	switch field.Identity.Control {
	case model.ControlSelect:
		if matcher == nil {
			return "", false
		}
		return matcher.MatchOption(r, t, field)

	case model.ControlMonth:
		if t == model.TypeCardExpMonth || t == model.TypeCardExpYear {
			return resolveExpirationComposite(r)
		}
		return resolveText(r, t, field)

	case model.ControlHidden:
		return "", false

	case model.ControlText, model.ControlTextArea:
		return resolveText(r, t, field)

	default:
		return resolveText(r, t, field)
	}
}

// resolveText resolves free-text controls: phone subgroup segmentation,
// otherwise the stored text verbatim.
func resolveText(r record.Record, t model.FieldType, field model.LiveField) (string, bool) {
	if t.IsPhone() {
		return resolvePhone(r, t, field)
	}
	text := r.FieldText(t)
	if text == "" {
		return "", false
	}
	return text, true
}

// resolveExpirationComposite builds the "year-month" value for an HTML5
// month control. Both components must be present; a partial date is worse
// than no fill at all.
func resolveExpirationComposite(r record.Record) (string, bool) {
	year := r.FieldText(model.TypeCardExpYear)
	month := r.FieldText(model.TypeCardExpMonth)
	if year == "" || month == "" {
		return "", false
	}
	return year + "-" + month, true
}

// resolvePhone fills phone and fax fields. When the stored number has
// exactly prefix+suffix digits and the live field's maximum length equals
// one segment, that segment is emitted; otherwise the number goes in
// unchanged. This lets forms split a number across two inputs without the
// resolver needing any metadata beyond max length.
func resolvePhone(r record.Record, t model.FieldType, field model.LiveField) (string, bool) {
	number := r.FieldText(t)
	if number == "" {
		return "", false
	}

	hasPrefixAndSuffix := len(number) == PhonePrefixLength+PhoneSuffixLength
	switch {
	case hasPrefixAndSuffix && field.MaxLength == PhonePrefixLength:
		return number[:PhonePrefixLength], true
	case hasPrefixAndSuffix && field.MaxLength == PhoneSuffixLength:
		return number[PhonePrefixLength:], true
	default:
		return number, true
	}
}
