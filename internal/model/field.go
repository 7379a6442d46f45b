package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// FieldIdentity is the structural identity of a form field: the tuple that
// decides whether a live field and a cached field are "the same" field,
// independent of the field's current value or fill state.
type FieldIdentity struct {
	// Name is the field's name attribute.
	Name string `json:"name"`

	// Label is the human-visible label associated with the field.
	Label string `json:"label,omitempty"`

	// Control is the kind of control the field is rendered as.
	Control ControlKind `json:"control"`
}

// Equal reports whether two identities denote the same field.
// Values and autofill state deliberately play no part here: a field the
// user has since edited must still correlate with its cached counterpart.
func (id FieldIdentity) Equal(other FieldIdentity) bool {
	return id.Name == other.Name &&
		id.Label == other.Label &&
		id.Control == other.Control
}

// Signature returns a stable hex digest of the identity. Classifier
// responses address fields by this signature, so it must depend only on
// structure, never on values.
func (id FieldIdentity) Signature() string {
	h := sha256.New()
	h.Write([]byte(id.Name))
	h.Write([]byte{0x1f})
	h.Write([]byte(id.Label))
	h.Write([]byte{0x1f})
	h.Write([]byte(id.Control.String()))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// CachedField is one field of a previously analyzed form. It is immutable
// once the form is classified and owned exclusively by its CachedForm.
type CachedField struct {
	// Identity is the field's structural identity at parse time.
	Identity FieldIdentity `json:"identity"`

	// MaxLength is the field's maximum input length, or 0 if unbounded.
	// Used by the value resolver for split phone number segments.
	MaxLength int `json:"max_length,omitempty"`

	// Autocomplete is the field's autocomplete attribute at parse time.
	// It is raw input for the external classifier, never consulted by the
	// matching logic itself.
	Autocomplete string `json:"autocomplete,omitempty"`

	// Type is the semantic type assigned by the classifier.
	// TypeUnknown until a classification is applied.
	Type FieldType `json:"type"`
}

// LiveField is a field as currently observed in the DOM. It is supplied
// per call and never retained by the engine.
type LiveField struct {
	// Identity is the field's current structural identity.
	Identity FieldIdentity `json:"identity"`

	// MaxLength is the field's maximum input length, or 0 if unbounded.
	MaxLength int `json:"max_length,omitempty"`

	// Autocomplete is the field's autocomplete attribute.
	Autocomplete string `json:"autocomplete,omitempty"`

	// Value is the field's current text.
	Value string `json:"value,omitempty"`

	// Autofilled reports whether the field currently holds an autofilled
	// value rather than user input.
	Autofilled bool `json:"autofilled,omitempty"`
}
