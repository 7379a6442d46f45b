package suggest

import (
	"golang.org/x/text/cases"

	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/packid"
	"github.com/nao1215/formfill/internal/record"
)

// WarningID is the sentinel packed identifier carried by a synthetic
// warning entry. No real record ever packs to a negative value.
const WarningID int32 = -1

// labelSeparator precedes the last four digits in payment suggestion
// labels, e.g. "; *1234".
const labelSeparator = "; *"

// Synthetic warning messages. When a query is disallowed the whole result
// is replaced by one of these instead of real values.
const (
	// WarningDisabled is shown when autofill is disabled for the form.
	WarningDisabled = "Form autofill is disabled"

	// WarningInsecure is shown when payment suggestions are requested on
	// a page without a secure scheme.
	WarningInsecure = "Payment autofill is disabled on insecure pages"
)

// Suggestions holds the four parallel sequences of a suggestion response.
// The sequences are always the same length and kept in lockstep order.
type Suggestions struct {
	// Values are the candidate field values (masked for payment numbers).
	Values []string `json:"values"`

	// Labels disambiguate otherwise-identical values.
	Labels []string `json:"labels"`

	// Icons identify the payment network, empty for identity entries.
	Icons []string `json:"icons"`

	// IDs are the packed record identifier pairs.
	IDs []int32 `json:"ids"`
}

// Len returns the number of suggestions.
func (s *Suggestions) Len() int { return len(s.Values) }

// append adds one entry keeping the four sequences aligned.
func (s *Suggestions) append(value, label, icon string, id int32) {
	s.Values = append(s.Values, value)
	s.Labels = append(s.Labels, label)
	s.Icons = append(s.Icons, icon)
	s.IDs = append(s.IDs, id)
}

// Labeler generates disambiguating labels for identity suggestions, one
// per matched profile, using the form's other field types, e.g. a
// distinguishing city when two matching names share a street. The
// concrete inference lives outside this core.
type Labeler interface {
	// InferLabels returns one label per profile, aligned with profiles.
	InferLabels(profiles []*record.Profile, formTypes []model.FieldType, queried model.FieldType) []string
}

// hasFoldedPrefix reports whether s begins with prefix under Unicode case
// folding, so prefix matching stays case-insensitive beyond ASCII. A
// fresh Caser per call because cases.Caser carries internal state and is
// not safe for reuse across goroutines.
func hasFoldedPrefix(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	folder := cases.Fold()
	fs := folder.String(s)
	fp := folder.String(prefix)
	return len(fs) >= len(fp) && fs[:len(fp)] == fp
}

// ForProfiles assembles identity suggestions: stored profiles whose text
// for the queried type is non-empty and a case-insensitive prefix match
// against the field's current text. Icons stay empty for identity
// entries. Label inference is delegated to the labeler with the form's
// field types for disambiguation.
func ForProfiles(store record.Store, form *model.CachedForm, field model.LiveField,
	queried model.FieldType, codec *packid.Codec, labeler Labeler) (*Suggestions, error) {
	var matched []*record.Profile
	var values []string
	var ids []int32
	for _, profile := range store.Profiles() {
		text := profile.FieldText(queried)
		if text == "" || !hasFoldedPrefix(text, field.Value) {
			continue
		}
		id, err := codec.Pack("", profile.GUID())
		if err != nil {
			return nil, err
		}
		matched = append(matched, profile)
		values = append(values, text)
		ids = append(ids, id)
	}

	formTypes := make([]model.FieldType, form.FieldCount())
	for i := 0; i < form.FieldCount(); i++ {
		formTypes[i] = form.Field(i).Type
	}

	labels := make([]string, len(matched))
	if labeler != nil {
		if inferred := labeler.InferLabels(matched, formTypes, queried); len(inferred) == len(matched) {
			labels = inferred
		}
	}

	s := &Suggestions{}
	for i, value := range values {
		s.append(value, labels[i], "", ids[i])
	}
	return s, nil
}

// ForCreditCards assembles payment suggestions: stored cards whose text
// for the queried type is non-empty and a case-insensitive prefix match.
// Card numbers are shown masked; filling uses the literal number, only
// the displayed value is obfuscated. Labels carry the separator glyph and
// the card's last four digits; icons carry the network identifier.
func ForCreditCards(store record.Store, field model.LiveField,
	queried model.FieldType, codec *packid.Codec) (*Suggestions, error) {
	s := &Suggestions{}
	for _, card := range store.CreditCards() {
		text := card.FieldText(queried)
		if text == "" || !hasFoldedPrefix(text, field.Value) {
			continue
		}
		if queried == model.TypeCardNumber {
			text = card.ObfuscatedNumber()
		}
		id, err := codec.Pack(card.GUID(), "")
		if err != nil {
			return nil, err
		}
		s.append(text, labelSeparator+card.LastFour(), card.NetworkKind(), id)
	}
	return s, nil
}

// Dedup collapses entries whose (value, label) pair exactly duplicates an
// earlier entry, preserving first-seen order. The later duplicate's icon
// and id are discarded with it so the four sequences stay aligned.
// Running Dedup twice yields the same result as once.
func Dedup(s *Suggestions) {
	type pair struct{ value, label string }
	seen := make(map[pair]struct{}, len(s.Values))

	out := &Suggestions{}
	for i := range s.Values {
		p := pair{s.Values[i], s.Labels[i]}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out.append(s.Values[i], s.Labels[i], s.Icons[i], s.IDs[i])
	}
	*s = *out
}

// Warning replaces the whole result with a single synthetic warning entry:
// the message as value, empty label and icon, sentinel id.
func Warning(message string) *Suggestions {
	return &Suggestions{
		Values: []string{message},
		Labels: []string{""},
		Icons:  []string{""},
		IDs:    []int32{WarningID},
	}
}

// BlankLabels clears all labels and icons in place. Used when the queried
// field sits in an already-filled section: the user is editing a single
// value and the disambiguating decorations are redundant, mirroring plain
// text autocomplete.
func BlankLabels(s *Suggestions) {
	for i := range s.Labels {
		s.Labels[i] = ""
		s.Icons[i] = ""
	}
}
