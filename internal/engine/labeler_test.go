package engine

import (
	"testing"

	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/record"
)

// TestInferLabels tests disambiguating label inference.
func TestInferLabels(t *testing.T) {
	t.Parallel()

	formTypes := []model.FieldType{
		model.TypeFirstName,
		model.TypeLastName,
		model.TypeEmail,
		model.TypeCity,
	}

	t.Run("unique names need no decoration", func(t *testing.T) {
		t.Parallel()

		profiles := []*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland"},
			{ID: "p2", FirstName: "Jane", LastName: "Doe", City: "Salem"},
		}
		labels := NewInferredLabeler().InferLabels(profiles, formTypes, model.TypeFirstName)
		want := []string{"John Smith", "Jane Doe"}
		for i := range want {
			if labels[i] != want[i] {
				t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
			}
		}
	})

	t.Run("colliding names get a discriminant", func(t *testing.T) {
		t.Parallel()

		profiles := []*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland"},
			{ID: "p2", FirstName: "John", LastName: "Smith", City: "Salem"},
		}
		labels := NewInferredLabeler().InferLabels(profiles, formTypes, model.TypeFirstName)
		want := []string{"John Smith, Portland", "John Smith, Salem"}
		for i := range want {
			if labels[i] != want[i] {
				t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
			}
		}
	})

	t.Run("discriminant must appear in the form", func(t *testing.T) {
		t.Parallel()

		// The form has no city field, so city cannot discriminate even
		// though it is the preferred choice; email is next.
		profiles := []*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland", Email: "a@example.com"},
			{ID: "p2", FirstName: "John", LastName: "Smith", City: "Salem", Email: "b@example.com"},
		}
		noCity := []model.FieldType{model.TypeFirstName, model.TypeLastName, model.TypeEmail}
		labels := NewInferredLabeler().InferLabels(profiles, noCity, model.TypeFirstName)
		if labels[0] != "John Smith, a@example.com" {
			t.Errorf("labels[0] = %q, want email discriminant", labels[0])
		}
	})

	t.Run("queried type never discriminates itself", func(t *testing.T) {
		t.Parallel()

		profiles := []*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", City: "Portland"},
			{ID: "p2", FirstName: "John", LastName: "Smith", City: "Salem"},
		}
		labels := NewInferredLabeler().InferLabels(profiles, formTypes, model.TypeCity)
		// City is excluded as the queried type; no other discriminant has
		// stored values here, so the collision stands.
		if labels[0] != "John Smith" || labels[1] != "John Smith" {
			t.Errorf("labels = %v, want bare names", labels)
		}
	})

	t.Run("empty discriminant values are skipped", func(t *testing.T) {
		t.Parallel()

		profiles := []*record.Profile{
			{ID: "p1", FirstName: "John", LastName: "Smith", Email: "a@example.com"},
			{ID: "p2", FirstName: "John", LastName: "Smith", City: "Salem"},
		}
		labels := NewInferredLabeler().InferLabels(profiles, formTypes, model.TypeFirstName)
		// The first profile has no city, so it falls through to email;
		// the second uses its city.
		if labels[0] != "John Smith, a@example.com" {
			t.Errorf("labels[0] = %q, want email fallback", labels[0])
		}
		if labels[1] != "John Smith, Salem" {
			t.Errorf("labels[1] = %q, want city discriminant", labels[1])
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		labels := NewInferredLabeler().InferLabels(nil, formTypes, model.TypeFirstName)
		if len(labels) != 0 {
			t.Errorf("len(labels) = %d, want 0", len(labels))
		}
	})
}
