package section

import (
	"errors"

	"github.com/nao1215/formfill/internal/model"
)

// ErrFieldOutsideSection is returned when the computed section does not
// contain the initiating field. This indicates an internal invariant
// break, not a user-facing condition; callers degrade to a no-op.
var ErrFieldOutsideSection = errors.New("initiating field not inside its computed section")

// Bounds is a half-open index range [Start, End) over a cached form's
// field sequence.
type Bounds struct {
	// Start is the index of the first field in the section.
	Start int

	// End is the index one past the last field in the section.
	End int
}

// Contains reports whether the field index lies within the bounds.
func (b Bounds) Contains(i int) bool {
	return i >= b.Start && i < b.End
}

// Resolve computes the logical section of form that contains the
// initiating field at index target. fillingPayment selects which group of
// fields is appropriate: payment fields when true, identity fields when
// false.
//
// Sections are identified by two heuristics:
//  1. Every field in a section matches the kind of data being filled.
//  2. A section does not repeat a semantic type, except phone and fax
//     numbers: forms routinely ask for several phone numbers, and
//     phone/fax detection is inaccurate enough that over-splitting would
//     be worse than under-splitting.
//
// Fields of unknown type never affect boundaries. Before any boundary is
// found the section spans the whole form.
func Resolve(form *model.CachedForm, target int, fillingPayment bool) (Bounds, error) {
	bounds := Bounds{Start: 0, End: form.FieldCount()}

	seenTypes := make(map[model.FieldType]struct{})
	targetInCurrentSection := false
	for i := 0; i < form.FieldCount(); i++ {
		currentType := form.Field(i).Type
		if currentType == model.TypeUnknown {
			continue
		}

		_, alreadySeen := seenTypes[currentType]
		if currentType.IsPhone() {
			alreadySeen = false
		}

		appropriate := currentType.IsPayment() == fillingPayment

		if alreadySeen || !appropriate {
			if targetInCurrentSection {
				// End of the section containing the initiating field.
				bounds.End = i
				break
			}

			// End of some earlier section; start a new one.
			seenTypes = make(map[model.FieldType]struct{})

			if appropriate {
				bounds.Start = i
			} else {
				bounds.Start = i + 1
				continue
			}
		}

		seenTypes[currentType] = struct{}{}

		if i == target {
			targetInCurrentSection = true
		}
	}

	if !bounds.Contains(target) {
		return Bounds{}, ErrFieldOutsideSection
	}
	return bounds, nil
}
