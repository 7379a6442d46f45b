package engine

import (
	"testing"

	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/record"
	"github.com/nao1215/formfill/internal/suggest"
)

// testStore returns a store with one profile and one card.
func testStore() record.Store {
	return record.NewMemoryStore(
		[]*record.Profile{
			{
				ID:           "home",
				FirstName:    "John",
				LastName:     "Smith",
				Email:        "john@example.com",
				AddressLine1: "123 Main St",
				City:         "Portland",
				State:        "OR",
				Zip:          "97201",
				Phone:        "5551234567",
			},
		},
		[]*record.CreditCard{
			{
				ID:         "visa",
				NameOnCard: "John Smith",
				Number:     "4111111111111111",
				ExpMonth:   "08",
				ExpYear:    "2028",
			},
		},
	)
}

func liveField(name string) model.LiveField {
	return model.LiveField{
		Identity: model.FieldIdentity{Name: name, Control: model.ControlText},
	}
}

func liveForm(name, sourceURL string, fieldNames ...string) *model.LiveForm {
	form := &model.LiveForm{Name: name, SourceURL: sourceURL}
	for _, fn := range fieldNames {
		form.Fields = append(form.Fields, liveField(fn))
	}
	return form
}

// identityForm is a four-field contact form on a secure page.
func identityForm() *model.LiveForm {
	return liveForm("contact", "https://shop.example", "first_name", "last_name", "email", "city")
}

var identityTypes = map[string]model.FieldType{
	"first_name": model.TypeFirstName,
	"last_name":  model.TypeLastName,
	"email":      model.TypeEmail,
	"city":       model.TypeCity,
}

// paymentForm is a four-field card form.
func paymentForm(sourceURL string) *model.LiveForm {
	return liveForm("payment", sourceURL, "card_name", "card_number", "exp_month", "exp_year")
}

var paymentTypes = map[string]model.FieldType{
	"card_name":   model.TypeCardName,
	"card_number": model.TypeCardNumber,
	"exp_month":   model.TypeCardExpMonth,
	"exp_year":    model.TypeCardExpYear,
}

// classifyForm applies an explicit classification keyed by field name.
func classifyForm(t *testing.T, eng *Engine, form *model.LiveForm, types map[string]model.FieldType) {
	t.Helper()

	var entries []model.Classification
	for _, f := range form.Fields {
		if typ, ok := types[f.Identity.Name]; ok {
			entries = append(entries, model.Classification{
				FieldSignature: f.Identity.Signature(),
				Type:           typ,
			})
		}
	}
	signature := model.NewCachedForm(form).Signature()
	if !eng.ApplyClassification(signature, entries) {
		t.Fatalf("classification rejected for form %q", form.Name)
	}
}

// seenAndClassified prepares an engine with the form cached and typed.
func seenAndClassified(t *testing.T, eng *Engine, form *model.LiveForm, types map[string]model.FieldType) {
	t.Helper()

	eng.OnFormsSeen([]model.LiveForm{*form})
	classifyForm(t, eng, form, types)
}

// TestOnFormsSeen tests the caching gate.
func TestOnFormsSeen(t *testing.T) {
	t.Parallel()

	t.Run("forms at the threshold are cached", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		eng.OnFormsSeen([]model.LiveForm{*liveForm("a", "", "x", "y", "z")})
		if eng.Cache().Len() != 1 {
			t.Errorf("Cache().Len() = %d, want 1", eng.Cache().Len())
		}
	})

	t.Run("forms below the threshold are skipped", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		eng.OnFormsSeen([]model.LiveForm{*liveForm("a", "", "x", "y")})
		if eng.Cache().Len() != 0 {
			t.Errorf("Cache().Len() = %d, want 0", eng.Cache().Len())
		}
	})

	t.Run("hidden fields do not count toward the threshold", func(t *testing.T) {
		t.Parallel()

		form := liveForm("a", "", "x", "y")
		form.Fields = append(form.Fields, model.LiveField{
			Identity: model.FieldIdentity{Name: "h", Control: model.ControlHidden},
		})

		eng := New(testStore())
		eng.OnFormsSeen([]model.LiveForm{*form})
		if eng.Cache().Len() != 0 {
			t.Errorf("Cache().Len() = %d, want 0", eng.Cache().Len())
		}
	})

	t.Run("threshold override", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithMinFillableFields(1))
		eng.OnFormsSeen([]model.LiveForm{*liveForm("a", "", "x")})
		if eng.Cache().Len() != 1 {
			t.Errorf("Cache().Len() = %d, want 1", eng.Cache().Len())
		}
	})

	t.Run("disabled engine caches nothing", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithDisabled())
		eng.OnFormsSeen([]model.LiveForm{*identityForm()})
		if eng.Cache().Len() != 0 {
			t.Errorf("Cache().Len() = %d, want 0", eng.Cache().Len())
		}
	})
}

// TestApplyClassification tests the classifier response path.
func TestApplyClassification(t *testing.T) {
	t.Parallel()

	t.Run("response for an unknown form is dropped", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		if eng.ApplyClassification("no-such-signature", nil) {
			t.Error("ApplyClassification() = true, want false")
		}
	})

	t.Run("response types the cached counterpart", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		cached := eng.Cache().Find(form)
		if cached == nil {
			t.Fatal("cached counterpart not found")
		}
		if got := cached.KnownTypeCount(); got != 4 {
			t.Errorf("KnownTypeCount() = %d, want 4", got)
		}
	})
}

// TestReset tests navigation-commit behavior.
func TestReset(t *testing.T) {
	t.Parallel()

	eng := New(testStore())
	eng.OnFormsSeen([]model.LiveForm{*identityForm()})
	if eng.Cache().Len() != 1 {
		t.Fatalf("Cache().Len() = %d, want 1", eng.Cache().Len())
	}

	before, err := eng.Codec().Pack("", "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	eng.Reset()

	if eng.Cache().Len() != 0 {
		t.Errorf("Cache().Len() = %d after Reset, want 0", eng.Cache().Len())
	}
	after, err := eng.Codec().Pack("", "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != after {
		t.Errorf("packed id changed across Reset: %d != %d", before, after)
	}
}

// TestOnQuery tests the suggestion pipeline.
func TestOnQuery(t *testing.T) {
	t.Parallel()

	t.Run("disabled engine returns nil", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithDisabled())
		form := identityForm()
		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil || s != nil {
			t.Errorf("OnQuery() = (%v, %v), want (nil, nil)", s, err)
		}
	})

	t.Run("empty store returns nil", func(t *testing.T) {
		t.Parallel()

		eng := New(record.NewMemoryStore(nil, nil))
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil || s != nil {
			t.Errorf("OnQuery() = (%v, %v), want (nil, nil)", s, err)
		}
	})

	t.Run("uncached form returns nil", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil || s != nil {
			t.Errorf("OnQuery() = (%v, %v), want (nil, nil)", s, err)
		}
	})

	t.Run("unclassified form returns nil", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		eng.OnFormsSeen([]model.LiveForm{*form})

		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil || s != nil {
			t.Errorf("OnQuery() = (%v, %v), want (nil, nil)", s, err)
		}
	})

	t.Run("identity query yields stored values", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		s, err := eng.OnQuery(form, form.Fields[2])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 1 {
			t.Fatalf("suggestions = %v, want one entry", s)
		}
		if s.Values[0] != "john@example.com" {
			t.Errorf("Values[0] = %q, want stored email", s.Values[0])
		}
	})

	t.Run("typed prefix narrows matches", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		field := form.Fields[0]
		field.Value = "Jane"
		s, err := eng.OnQuery(form, field)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 0 {
			t.Errorf("suggestions = %v, want empty", s)
		}
	})

	t.Run("disabled identity group yields warning", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithIdentityDisabled())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 1 || s.IDs[0] != suggest.WarningID {
			t.Fatalf("suggestions = %v, want a single warning entry", s)
		}
		if s.Values[0] != suggest.WarningDisabled {
			t.Errorf("Values[0] = %q, want %q", s.Values[0], suggest.WarningDisabled)
		}
	})

	t.Run("disabled group with no matches stays empty", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithIdentityDisabled())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		field := form.Fields[0]
		field.Value = "no-such-prefix"
		s, err := eng.OnQuery(form, field)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 0 {
			t.Errorf("suggestions = %v, want empty without warning", s)
		}
	})

	t.Run("payment query on insecure page yields warning", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := paymentForm("http://shop.example")
		seenAndClassified(t, eng, form, paymentTypes)

		s, err := eng.OnQuery(form, form.Fields[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 1 || s.Values[0] != suggest.WarningInsecure {
			t.Fatalf("suggestions = %v, want the insecure warning", s)
		}
	})

	t.Run("payment query on secure page yields masked number", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := paymentForm("https://shop.example")
		seenAndClassified(t, eng, form, paymentTypes)

		s, err := eng.OnQuery(form, form.Fields[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s == nil || s.Len() != 1 {
			t.Fatalf("suggestions = %v, want one entry", s)
		}
		if s.Values[0] != "************1111" {
			t.Errorf("Values[0] = %q, want masked number", s.Values[0])
		}
		if s.Icons[0] != record.NetworkVisa {
			t.Errorf("Icons[0] = %q, want %q", s.Icons[0], record.NetworkVisa)
		}
	})

	t.Run("filled section blanks labels", func(t *testing.T) {
		t.Parallel()

		store := record.NewMemoryStore([]*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland", Email: "a@example.com"},
			{ID: "p2", FirstName: "John", LastName: "Smith", City: "Salem", Email: "b@example.com"},
		}, nil)
		eng := New(store)
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		// Name collision: labels normally carry a city discriminant.
		s, err := eng.OnQuery(form, form.Fields[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 2 || s.Labels[0] == "" || s.Labels[0] == s.Labels[1] {
			t.Fatalf("labels = %v, want two distinct discriminated labels", s.Labels)
		}

		// With a sibling already autofilled, labels are blanked before
		// deduplication, so the two identical values collapse.
		filled := *form
		filled.Fields = append([]model.LiveField(nil), form.Fields...)
		filled.Fields[2].Autofilled = true
		s, err = eng.OnQuery(&filled, filled.Fields[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 1 || s.Labels[0] != "" {
			t.Errorf("suggestions = %v, want one unlabeled entry", s)
		}
	})
}

// TestOnFill tests fill resolution.
func TestOnFill(t *testing.T) {
	t.Parallel()

	t.Run("identity fill populates the section", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		id, err := eng.Codec().Pack("", "home")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, filled := eng.OnFill(form, form.Fields[0], id)
		if !filled {
			t.Fatal("OnFill() filled = false, want true")
		}

		want := []string{"John", "Smith", "john@example.com", "Portland"}
		for i, value := range want {
			if result.Fields[i].Value != value {
				t.Errorf("Fields[%d].Value = %q, want %q", i, result.Fields[i].Value, value)
			}
			if !result.Fields[i].Autofilled {
				t.Errorf("Fields[%d].Autofilled = false, want true", i)
			}
		}
		// The input snapshot is never mutated.
		for i := range form.Fields {
			if form.Fields[i].Value != "" || form.Fields[i].Autofilled {
				t.Errorf("input form field %d mutated", i)
			}
		}
	})

	t.Run("payment fill uses literal card number", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := paymentForm("https://shop.example")
		seenAndClassified(t, eng, form, paymentTypes)

		id, err := eng.Codec().Pack("visa", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, filled := eng.OnFill(form, form.Fields[1], id)
		if !filled {
			t.Fatal("OnFill() filled = false, want true")
		}
		if result.Fields[1].Value != "4111111111111111" {
			t.Errorf("card number = %q, want the literal number", result.Fields[1].Value)
		}
		if result.Fields[2].Value != "08" || result.Fields[3].Value != "2028" {
			t.Errorf("expiration = %q/%q, want 08/2028", result.Fields[2].Value, result.Fields[3].Value)
		}
	})

	t.Run("unknown record is a no-op", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		result, filled := eng.OnFill(form, form.Fields[0], 0)
		if filled {
			t.Error("OnFill() filled = true, want false")
		}
		for i := range result.Fields {
			if result.Fields[i].Value != "" {
				t.Errorf("Fields[%d].Value = %q, want empty", i, result.Fields[i].Value)
			}
		}
	})

	t.Run("stale cache is a no-op", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)
		eng.Reset()

		id, err := eng.Codec().Pack("", "home")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, filled := eng.OnFill(form, form.Fields[0], id); filled {
			t.Error("OnFill() filled = true after Reset, want false")
		}
	})

	t.Run("disabled engine is a no-op", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore(), WithDisabled())
		form := identityForm()
		if _, filled := eng.OnFill(form, form.Fields[0], 1); filled {
			t.Error("OnFill() filled = true, want false")
		}
	})

	t.Run("unclassified fields keep their values", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := liveForm("contact", "https://shop.example", "first_name", "comment", "email")
		form.Fields[1].Value = "keep me"
		seenAndClassified(t, eng, form, identityTypes)

		id, err := eng.Codec().Pack("", "home")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, filled := eng.OnFill(form, form.Fields[0], id)
		if !filled {
			t.Fatal("OnFill() filled = false, want true")
		}
		if result.Fields[1].Value != "keep me" {
			t.Errorf("untyped field value = %q, want preserved", result.Fields[1].Value)
		}
	})

	t.Run("filled section refills only the initiating field", func(t *testing.T) {
		t.Parallel()

		store := record.NewMemoryStore([]*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", Email: "a@example.com", City: "Portland"},
			{ID: "p2", FirstName: "Jane", LastName: "Doe", Email: "b@example.com", City: "Salem"},
		}, nil)
		eng := New(store)
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		first, err := eng.Codec().Pack("", "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		once, filled := eng.OnFill(form, form.Fields[0], first)
		if !filled {
			t.Fatal("first fill did not fill")
		}

		second, err := eng.Codec().Pack("", "p2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, filled := eng.OnFill(&once, once.Fields[2], second)
		if !filled {
			t.Fatal("refill did not fill")
		}
		if twice.Fields[2].Value != "b@example.com" {
			t.Errorf("refilled email = %q, want the second profile's", twice.Fields[2].Value)
		}
		// Siblings keep the first profile's values.
		if twice.Fields[0].Value != "John" || twice.Fields[3].Value != "Portland" {
			t.Errorf("sibling values = %q/%q, want untouched", twice.Fields[0].Value, twice.Fields[3].Value)
		}
	})
}

// TestRecentFillWindow tests the recently-filled signature window.
func TestRecentFillWindow(t *testing.T) {
	t.Parallel()

	eng := New(testStore())
	for _, sig := range []string{"a", "b", "c"} {
		eng.recordFilled(sig)
	}
	for _, sig := range []string{"a", "b", "c"} {
		if !eng.WasRecentlyFilled(sig) {
			t.Errorf("WasRecentlyFilled(%q) = false, want true", sig)
		}
	}

	eng.recordFilled("d")
	if eng.WasRecentlyFilled("a") {
		t.Error("oldest signature survived past the window")
	}
	for _, sig := range []string{"b", "c", "d"} {
		if !eng.WasRecentlyFilled(sig) {
			t.Errorf("WasRecentlyFilled(%q) = false, want true", sig)
		}
	}
}

// TestOnFormSubmitted tests the upload-labeling summary.
func TestOnFormSubmitted(t *testing.T) {
	t.Parallel()

	t.Run("uncached form yields nothing", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		if _, ok := eng.OnFormSubmitted(identityForm()); ok {
			t.Error("OnFormSubmitted() ok = true, want false")
		}
	})

	t.Run("possible types from submitted values", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		form.Fields[2].Value = "john@example.com"
		form.Fields[0].Value = "unrelated text"

		summary, ok := eng.OnFormSubmitted(form)
		if !ok {
			t.Fatal("OnFormSubmitted() ok = false, want true")
		}
		if len(summary.PossibleTypes) != 4 {
			t.Fatalf("len(PossibleTypes) = %d, want 4", len(summary.PossibleTypes))
		}
		if len(summary.PossibleTypes[2]) != 1 || summary.PossibleTypes[2][0] != model.TypeEmail {
			t.Errorf("PossibleTypes[2] = %v, want [email]", summary.PossibleTypes[2])
		}
		if len(summary.PossibleTypes[0]) != 1 || summary.PossibleTypes[0][0] != model.TypeUnknown {
			t.Errorf("PossibleTypes[0] = %v, want [unknown]", summary.PossibleTypes[0])
		}
		if summary.WasAutofilled {
			t.Error("WasAutofilled = true before any fill")
		}
	})

	t.Run("autofilled form is flagged", func(t *testing.T) {
		t.Parallel()

		eng := New(testStore())
		form := identityForm()
		seenAndClassified(t, eng, form, identityTypes)

		id, err := eng.Codec().Pack("", "home")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, filled := eng.OnFill(form, form.Fields[0], id)
		if !filled {
			t.Fatal("fill did not fill")
		}

		summary, ok := eng.OnFormSubmitted(&result)
		if !ok {
			t.Fatal("OnFormSubmitted() ok = false, want true")
		}
		if !summary.WasAutofilled {
			t.Error("WasAutofilled = false after filling this form")
		}
	})
}
