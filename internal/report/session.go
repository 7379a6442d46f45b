package report

import "time"

// Session aggregates everything that happened while processing one HTML
// document: the forms found, the classification outcome, and any fill or
// suggestion results.
type Session struct {
	// Document is the path or URL of the processed HTML document.
	Document string `json:"document"`

	// GeneratedAt is when the session report was created.
	GeneratedAt time.Time `json:"generated_at"`

	// Forms holds one result per form that was cached from the document.
	Forms []FormResult `json:"forms"`

	// SkippedForms counts forms that did not meet the minimum fillable
	// field threshold and were never cached.
	SkippedForms int `json:"skipped_forms,omitempty"`
}

// NewSession creates a session report for the given document.
func NewSession(document string) *Session {
	return &Session{
		Document:    document,
		GeneratedAt: time.Now(),
	}
}

// AddForm appends a form result to the session.
func (s *Session) AddForm(form FormResult) {
	s.Forms = append(s.Forms, form)
}

// FilledFieldCount returns the total number of fields filled across all
// forms in the session.
func (s *Session) FilledFieldCount() int {
	var total int
	for _, f := range s.Forms {
		if f.Fill != nil {
			total += len(f.Fill.Fields)
		}
	}
	return total
}

// HasWarnings reports whether any form produced a warning entry.
func (s *Session) HasWarnings() bool {
	for _, f := range s.Forms {
		if f.Suggestion != nil && f.Suggestion.Warning != "" {
			return true
		}
	}
	return false
}

// FormResult describes the outcome for a single cached form.
type FormResult struct {
	// Name is the form's name attribute, possibly empty.
	Name string `json:"name,omitempty"`

	// SourceURL is the URL of the document the form came from.
	SourceURL string `json:"source_url,omitempty"`

	// Signature is the form's structural signature.
	Signature string `json:"signature"`

	// FieldCount is the number of fields in the form.
	FieldCount int `json:"field_count"`

	// KnownTypeCount is the number of fields with a known semantic type
	// after classification.
	KnownTypeCount int `json:"known_type_count"`

	// Fill holds the fill result, if a fill was requested.
	Fill *FillResult `json:"fill,omitempty"`

	// Suggestion holds the suggestion result, if suggestions were queried.
	Suggestion *SuggestionResult `json:"suggestion,omitempty"`
}

// FillResult describes the fields that were filled in one form.
type FillResult struct {
	// RecordID is the identifier token of the record used for filling.
	RecordID string `json:"record_id"`

	// Fields lists the fields that received values, in form order.
	Fields []FilledField `json:"fields"`
}

// FilledField is one field that received a value during filling.
type FilledField struct {
	// Name is the field's name attribute.
	Name string `json:"name"`

	// Label is the field's inferred label, possibly empty.
	Label string `json:"label,omitempty"`

	// Type is the semantic type name assigned to the field.
	Type string `json:"type"`

	// Value is the text placed into the field.
	// Sensitive values are masked before the session is written.
	Value string `json:"value"`
}

// SuggestionResult describes the suggestion sequences for one queried field.
type SuggestionResult struct {
	// FieldName is the name of the queried field.
	FieldName string `json:"field_name"`

	// Entries lists the suggestion entries in rank order.
	Entries []SuggestionEntry `json:"entries"`

	// Warning is the synthetic warning message replacing the entries,
	// or empty when real suggestions were produced.
	Warning string `json:"warning,omitempty"`
}

// SuggestionEntry is one entry in the suggestion sequences.
type SuggestionEntry struct {
	// Value is the display value.
	Value string `json:"value"`

	// Label is the disambiguating label, possibly empty.
	Label string `json:"label,omitempty"`

	// Icon is the icon hint, such as a card network name.
	Icon string `json:"icon,omitempty"`

	// ID is the packed record identifier for the entry.
	ID int32 `json:"id"`
}
