package suggest

import (
	"testing"

	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/packid"
	"github.com/nao1215/formfill/internal/record"
)

// queriedField builds a live field holding the user's typed prefix.
func queriedField(value string) model.LiveField {
	return model.LiveField{
		Identity: model.FieldIdentity{Name: "f", Control: model.ControlText},
		Value:    value,
	}
}

// classifiedForm builds a cached form whose fields carry the given types.
func classifiedForm(types ...model.FieldType) *model.CachedForm {
	form := &model.CachedForm{}
	for i, typ := range types {
		form.Fields = append(form.Fields, model.CachedField{
			Identity: model.FieldIdentity{Name: string(rune('a' + i)), Control: model.ControlText},
			Type:     typ,
		})
	}
	return form
}

// echoLabeler labels every profile with its city.
type echoLabeler struct{}

func (echoLabeler) InferLabels(profiles []*record.Profile, _ []model.FieldType, _ model.FieldType) []string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.City
	}
	return labels
}

// TestForProfiles tests identity suggestion assembly.
func TestForProfiles(t *testing.T) {
	t.Parallel()

	store := record.NewMemoryStore([]*record.Profile{
		{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland"},
		{ID: "p2", FirstName: "Jane", LastName: "Doe", City: "Salem"},
		{ID: "p3", LastName: "Nameless"},
	}, nil)
	form := classifiedForm(model.TypeFirstName, model.TypeCity)

	t.Run("empty prefix matches all with text", func(t *testing.T) {
		t.Parallel()

		s, err := ForProfiles(store, form, queriedField(""), model.TypeFirstName, packid.NewCodec(), echoLabeler{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 2 {
			t.Fatalf("Len() = %d, want 2 (profile without first name excluded)", s.Len())
		}
		if s.Values[0] != "John" || s.Values[1] != "Jane" {
			t.Errorf("Values = %v, want store order", s.Values)
		}
		if s.Labels[0] != "Portland" || s.Labels[1] != "Salem" {
			t.Errorf("Labels = %v, want labeler output", s.Labels)
		}
		if s.Icons[0] != "" || s.Icons[1] != "" {
			t.Error("expected empty icons for identity entries")
		}
	})

	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		t.Parallel()

		s, err := ForProfiles(store, form, queriedField("jO"), model.TypeFirstName, packid.NewCodec(), echoLabeler{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 1 || s.Values[0] != "John" {
			t.Errorf("Values = %v, want [John]", s.Values)
		}
	})

	t.Run("non-prefix value matches nothing", func(t *testing.T) {
		t.Parallel()

		s, err := ForProfiles(store, form, queriedField("ohn"), model.TypeFirstName, packid.NewCodec(), echoLabeler{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})

	t.Run("ids unpack to the profile", func(t *testing.T) {
		t.Parallel()

		codec := packid.NewCodec()
		s, err := ForProfiles(store, form, queriedField("John"), model.TypeFirstName, codec, echoLabeler{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", s.Len())
		}
		payment, identity := codec.Unpack(s.IDs[0])
		if payment != "" || identity != "p1" {
			t.Errorf("Unpack() = (%q, %q), want (%q, %q)", payment, identity, "", "p1")
		}
	})

	t.Run("nil labeler leaves labels empty", func(t *testing.T) {
		t.Parallel()

		s, err := ForProfiles(store, form, queriedField(""), model.TypeFirstName, packid.NewCodec(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, label := range s.Labels {
			if label != "" {
				t.Errorf("label = %q, want empty", label)
			}
		}
	})
}

// TestForCreditCards tests payment suggestion assembly.
func TestForCreditCards(t *testing.T) {
	t.Parallel()

	store := record.NewMemoryStore(nil, []*record.CreditCard{
		{ID: "c1", NameOnCard: "John Smith", Number: "4111111111111111"},
		{ID: "c2", NameOnCard: "Jane Doe", Number: "378282246310005"},
	})

	t.Run("card numbers are masked in values", func(t *testing.T) {
		t.Parallel()

		s, err := ForCreditCards(store, queriedField(""), model.TypeCardNumber, packid.NewCodec())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", s.Len())
		}
		if s.Values[0] != "************1111" {
			t.Errorf("Values[0] = %q, want masked number", s.Values[0])
		}
	})

	t.Run("labels carry separator and last four", func(t *testing.T) {
		t.Parallel()

		s, err := ForCreditCards(store, queriedField(""), model.TypeCardNumber, packid.NewCodec())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Labels[0] != "; *1111" {
			t.Errorf("Labels[0] = %q, want %q", s.Labels[0], "; *1111")
		}
		if s.Labels[1] != "; *0005" {
			t.Errorf("Labels[1] = %q, want %q", s.Labels[1], "; *0005")
		}
	})

	t.Run("icons carry the network", func(t *testing.T) {
		t.Parallel()

		s, err := ForCreditCards(store, queriedField(""), model.TypeCardNumber, packid.NewCodec())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Icons[0] != record.NetworkVisa || s.Icons[1] != record.NetworkAmex {
			t.Errorf("Icons = %v, want [visa amex]", s.Icons)
		}
	})

	t.Run("cardholder name queries resolve unmasked", func(t *testing.T) {
		t.Parallel()

		s, err := ForCreditCards(store, queriedField("Jane"), model.TypeCardName, packid.NewCodec())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 1 || s.Values[0] != "Jane Doe" {
			t.Errorf("Values = %v, want [Jane Doe]", s.Values)
		}
	})

	t.Run("ids unpack to the card", func(t *testing.T) {
		t.Parallel()

		codec := packid.NewCodec()
		s, err := ForCreditCards(store, queriedField(""), model.TypeCardNumber, codec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payment, identity := codec.Unpack(s.IDs[0])
		if payment != "c1" || identity != "" {
			t.Errorf("Unpack() = (%q, %q), want (%q, %q)", payment, identity, "c1", "")
		}
	})
}

// TestDedup tests duplicate entry removal.
func TestDedup(t *testing.T) {
	t.Parallel()

	t.Run("collapses value-label duplicates preserving order", func(t *testing.T) {
		t.Parallel()

		s := &Suggestions{
			Values: []string{"John", "John", "Jane", "John"},
			Labels: []string{"Portland", "Portland", "Salem", "Salem"},
			Icons:  []string{"", "", "", ""},
			IDs:    []int32{1, 2, 3, 4},
		}
		Dedup(s)

		if s.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", s.Len())
		}
		if s.Values[0] != "John" || s.Labels[0] != "Portland" || s.IDs[0] != 1 {
			t.Error("expected first-seen entry to survive")
		}
		// Same value under a different label is not a duplicate.
		if s.Values[2] != "John" || s.Labels[2] != "Salem" {
			t.Errorf("entry 2 = (%q, %q), want (John, Salem)", s.Values[2], s.Labels[2])
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		s := &Suggestions{
			Values: []string{"a", "a", "b"},
			Labels: []string{"x", "x", "y"},
			Icons:  []string{"", "", ""},
			IDs:    []int32{1, 2, 3},
		}
		Dedup(s)
		once := s.Len()
		Dedup(s)
		if s.Len() != once {
			t.Errorf("second Dedup changed length: %d != %d", s.Len(), once)
		}
	})
}

// TestWarning tests the synthetic warning entry.
func TestWarning(t *testing.T) {
	t.Parallel()

	s := Warning(WarningInsecure)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Values[0] != WarningInsecure {
		t.Errorf("Values[0] = %q, want warning message", s.Values[0])
	}
	if s.Labels[0] != "" || s.Icons[0] != "" {
		t.Error("expected empty label and icon")
	}
	if s.IDs[0] != WarningID {
		t.Errorf("IDs[0] = %d, want WarningID", s.IDs[0])
	}
}

// TestBlankLabels tests label and icon clearing.
func TestBlankLabels(t *testing.T) {
	t.Parallel()

	s := &Suggestions{
		Values: []string{"John", "Jane"},
		Labels: []string{"Portland", "Salem"},
		Icons:  []string{"visa", "amex"},
		IDs:    []int32{1, 2},
	}
	BlankLabels(s)

	for i := range s.Labels {
		if s.Labels[i] != "" || s.Icons[i] != "" {
			t.Errorf("entry %d labels/icons not blanked", i)
		}
	}
	if s.Values[0] != "John" || s.IDs[0] != 1 {
		t.Error("expected values and ids untouched")
	}
}
