package model

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// LiveForm is a snapshot of one form as currently observed in the DOM.
type LiveForm struct {
	// Name is the form's name or id attribute.
	Name string `json:"name,omitempty"`

	// SourceURL is the URL of the document containing the form.
	SourceURL string `json:"source_url,omitempty"`

	// Fields holds the form's fields in DOM order.
	Fields []LiveField `json:"fields"`
}

// Signature returns the structural signature of the live form, computed
// from field identities alone. It is the key used to locate the cached
// counterpart of this form.
func (f *LiveForm) Signature() string {
	return signatureOf(fieldIdentities(f.Fields))
}

// fieldIdentities extracts the identity of each live field.
func fieldIdentities(fields []LiveField) []FieldIdentity {
	ids := make([]FieldIdentity, len(fields))
	for i, field := range fields {
		ids[i] = field.Identity
	}
	return ids
}

// CachedForm is a previously analyzed form structure. Its field sequence
// is fixed at parse time: a reparse replaces the whole form in the cache,
// it never mutates an existing one. Only the per-field semantic types
// change, once, when a classification is applied.
type CachedForm struct {
	// Name is the form's name or id attribute at parse time.
	Name string `json:"name,omitempty"`

	// SourceURL is the URL of the document the form was parsed from.
	// Used for scheme checks: payment suggestions are withheld on
	// non-secure pages.
	SourceURL string `json:"source_url,omitempty"`

	// Fields holds the form's fields in DOM order at parse time.
	Fields []CachedField `json:"fields"`

	// signature memoizes the structural signature; the field sequence is
	// immutable so computing it once is safe.
	signature string

	// knownTypeCount counts fields with a non-unknown semantic type.
	knownTypeCount int
}

// NewCachedForm builds a CachedForm from a live snapshot. All fields start
// with TypeUnknown; ApplyClassification assigns types later.
func NewCachedForm(live *LiveForm) *CachedForm {
	form := &CachedForm{
		Name:      live.Name,
		SourceURL: live.SourceURL,
		Fields:    make([]CachedField, len(live.Fields)),
	}
	for i, f := range live.Fields {
		form.Fields[i] = CachedField{
			Identity:     f.Identity,
			MaxLength:    f.MaxLength,
			Autocomplete: f.Autocomplete,
			Type:         TypeUnknown,
		}
	}
	return form
}

// FieldCount returns the number of fields in the form.
func (f *CachedForm) FieldCount() int {
	return len(f.Fields)
}

// Field returns the field at index i.
// The caller must keep i within [0, FieldCount()).
func (f *CachedForm) Field(i int) *CachedField {
	return &f.Fields[i]
}

// KnownTypeCount returns the number of fields whose semantic type is not
// TypeUnknown. Forms with no known types produce no suggestions or fills.
func (f *CachedForm) KnownTypeCount() int {
	return f.knownTypeCount
}

// Signature returns the structural signature of the form, derived from
// field identities only. Two forms with the same fields in the same order
// share a signature regardless of current values.
func (f *CachedForm) Signature() string {
	if f.signature == "" {
		ids := make([]FieldIdentity, len(f.Fields))
		for i, field := range f.Fields {
			ids[i] = field.Identity
		}
		f.signature = signatureOf(ids)
	}
	return f.signature
}

// IsSecure reports whether the form was served over a secure scheme.
// Payment suggestions are replaced with a warning on insecure pages.
func (f *CachedForm) IsSecure() bool {
	u, err := url.Parse(f.SourceURL)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}

// MinFillableFields is the default threshold below which a form is not
// worth caching. Single-field forms are almost always search boxes.
const MinFillableFields = 3

// ShouldBeParsed reports whether the form has enough fillable fields to be
// worth caching. Hidden fields don't count.
func (f *CachedForm) ShouldBeParsed(minFillable int) bool {
	if minFillable <= 0 {
		minFillable = MinFillableFields
	}
	fillable := 0
	for i := range f.Fields {
		if f.Fields[i].Identity.Control != ControlHidden {
			fillable++
		}
	}
	return fillable >= minFillable
}

// FindField returns the index of the cached field structurally equal to
// the given live field, or -1 if the form has no such field. Duplicate
// identities resolve to the earliest occurrence.
func (f *CachedForm) FindField(live LiveField) int {
	for i := range f.Fields {
		if f.Fields[i].Identity.Equal(live.Identity) {
			return i
		}
	}
	return -1
}

// signatureOf computes the structural signature over an identity sequence.
func signatureOf(ids []FieldIdentity) string {
	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id.Name))
		h.Write([]byte{0x1f})
		h.Write([]byte(id.Label))
		h.Write([]byte{0x1f})
		h.Write([]byte(id.Control.String()))
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
