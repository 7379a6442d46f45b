package engine

import (
	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/record"
	"github.com/nao1215/formfill/internal/suggest"
)

// InferredLabeler is the default inferred-label step for identity
// suggestions. It labels every matched profile with its full name and,
// when that alone would be ambiguous, appends the first stored value that
// distinguishes the colliding profiles, chosen from the semantic types the
// form actually contains.
type InferredLabeler struct{}

// NewInferredLabeler creates the default labeler.
func NewInferredLabeler() *InferredLabeler {
	return &InferredLabeler{}
}

// discriminantOrder is the preference order for disambiguating values.
// Address data distinguishes people sharing a name more often than
// contact data does.
var discriminantOrder = []model.FieldType{
	model.TypeAddressLine1,
	model.TypeCity,
	model.TypeState,
	model.TypeEmail,
	model.TypeCompany,
	model.TypePhoneNumber,
}

// InferLabels returns one label per profile, aligned with profiles.
func (l *InferredLabeler) InferLabels(profiles []*record.Profile, formTypes []model.FieldType, queried model.FieldType) []string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.FullName()
	}

	// Count label collisions; unique labels need no decoration.
	counts := make(map[string]int, len(labels))
	for _, label := range labels {
		counts[label]++
	}

	inForm := make(map[model.FieldType]bool, len(formTypes))
	for _, t := range formTypes {
		inForm[t] = true
	}

	for i, p := range profiles {
		if counts[labels[i]] < 2 {
			continue
		}
		for _, t := range discriminantOrder {
			if t == queried || !inForm[t] {
				continue
			}
			if value := p.FieldText(t); value != "" {
				labels[i] = labels[i] + ", " + value
				break
			}
		}
	}
	return labels
}

// The default labeler satisfies the suggestion engine's contract.
var _ suggest.Labeler = (*InferredLabeler)(nil)
