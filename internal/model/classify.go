package model

// Classification is one entry of a classifier response: the semantic type
// inferred for the field with the given structural signature.
type Classification struct {
	// FieldSignature identifies the target field, see FieldIdentity.Signature.
	FieldSignature string `json:"field_signature"`

	// Type is the inferred semantic type.
	Type FieldType `json:"type"`
}

// ApplyClassification applies an ordered classifier response to the form.
// Entries are matched against fields by signature; fields not named in the
// response keep TypeUnknown. Entries whose signature matches no field are
// skipped. When several fields share a signature, all of them receive the
// entry's type: the classifier cannot tell structurally identical fields
// apart either.
//
// This is the only mutation a CachedForm undergoes after construction.
// It recomputes the known-type count.
func (f *CachedForm) ApplyClassification(entries []Classification) {
	bySignature := make(map[string]FieldType, len(entries))
	for _, e := range entries {
		bySignature[e.FieldSignature] = e.Type
	}

	known := 0
	for i := range f.Fields {
		if t, ok := bySignature[f.Fields[i].Identity.Signature()]; ok {
			f.Fields[i].Type = t
		}
		if f.Fields[i].Type != TypeUnknown {
			known++
		}
	}
	f.knownTypeCount = known
}
