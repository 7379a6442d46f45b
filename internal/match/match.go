package match

import "github.com/nao1215/formfill/internal/model"

// Correspondence pairs one cached field index with the live field index it
// was matched to.
type Correspondence struct {
	// Cached is the index into the cached form's field sequence.
	Cached int

	// Live is the index into the live field sequence.
	Live int
}

// Align correlates the live fields against the cached fields with indices
// in [start, end), returning the correspondences in live order. Cached
// indices in the result are strictly increasing.
//
// Two cursors advance in lockstep per live field: for each live field, the
// cached range is searched forward from the current cursor for the first
// field with an equal structural identity. An unmatched live field
// advances only the live cursor, which is what tolerates fields the DOM
// added after classification; a cached field skipped by the forward search
// is never revisited, which is what tolerates fields the DOM removed.
func Align(form *model.CachedForm, live []model.LiveField, start, end int) []Correspondence {
	if start < 0 {
		start = 0
	}
	if end > form.FieldCount() {
		end = form.FieldCount()
	}

	var pairs []Correspondence
	i := start
	for j := 0; j < len(live) && i < end; j++ {
		k := i
		for k < end && !form.Field(k).Identity.Equal(live[j].Identity) {
			k++
		}
		if k >= end {
			// No cached counterpart before the section end; the live
			// field is unmatched.
			continue
		}
		pairs = append(pairs, Correspondence{Cached: k, Live: j})
		i = k + 1
	}
	return pairs
}

// SectionIsFilled reports whether the section [start, end) of the cached
// form is already autofilled, judged by the live fields that correspond to
// it. The first matched live field reporting itself autofilled decides.
func SectionIsFilled(form *model.CachedForm, live []model.LiveField, start, end int) bool {
	for _, pair := range Align(form, live, start, end) {
		if live[pair.Live].Autofilled {
			return true
		}
	}
	return false
}
