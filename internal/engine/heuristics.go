package engine

import (
	"regexp"
	"strings"

	"github.com/nao1215/formfill/internal/model"
)

// This file is a thin stand-in for the external field-type classifier,
// used by the CLI so that parsed forms get types without a server round
// trip. It produces the same (field signature, type) entries the real
// classifier contract delivers, so ApplyClassification cannot tell the
// difference.

// autocompleteTypes maps HTML autocomplete tokens to semantic types.
// The autocomplete attribute is the author's own declaration, so it wins
// over name/label pattern matching.
var autocompleteTypes = map[string]model.FieldType{
	"given-name":         model.TypeFirstName,
	"family-name":        model.TypeLastName,
	"name":               model.TypeFullName,
	"email":              model.TypeEmail,
	"organization":       model.TypeCompany,
	"address-line1":      model.TypeAddressLine1,
	"street-address":     model.TypeAddressLine1,
	"address-line2":      model.TypeAddressLine2,
	"address-level2":     model.TypeCity,
	"address-level1":     model.TypeState,
	"postal-code":        model.TypeZip,
	"country":            model.TypeCountry,
	"country-name":       model.TypeCountry,
	"tel":                model.TypePhoneNumber,
	"cc-name":            model.TypeCardName,
	"cc-number":          model.TypeCardNumber,
	"cc-exp-month":       model.TypeCardExpMonth,
	"cc-exp-year":        model.TypeCardExpYear,
	"cc-csc":             model.TypeCardVerification,
}

// namePatterns matches field names and labels against common naming
// conventions. Order matters: the first matching pattern wins, so more
// specific patterns come first (card number before generic "number").
var namePatterns = []struct {
	re *regexp.Regexp
	t  model.FieldType
}{
	{regexp.MustCompile(`(?i)(card.?holder|name.?on.?card|cc.?name)`), model.TypeCardName},
	{regexp.MustCompile(`(?i)(card.?num|cc.?num|cc.?number|card.?number|pan\b)`), model.TypeCardNumber},
	{regexp.MustCompile(`(?i)(exp.*month|month.*exp|ccmonth|exp.?mm)`), model.TypeCardExpMonth},
	{regexp.MustCompile(`(?i)(exp.*year|year.*exp|ccyear|exp.?yy)`), model.TypeCardExpYear},
	{regexp.MustCompile(`(?i)(cvv|cvc|csc|security.?code|card.?verif)`), model.TypeCardVerification},
	{regexp.MustCompile(`(?i)(first.?name|given.?name|fname)`), model.TypeFirstName},
	{regexp.MustCompile(`(?i)(last.?name|family.?name|surname|lname)`), model.TypeLastName},
	{regexp.MustCompile(`(?i)(full.?name|your.?name|^name$)`), model.TypeFullName},
	{regexp.MustCompile(`(?i)(e.?mail)`), model.TypeEmail},
	{regexp.MustCompile(`(?i)(company|organi[sz]ation)`), model.TypeCompany},
	{regexp.MustCompile(`(?i)(address.?2|address.?line.?2|apt|suite|unit)`), model.TypeAddressLine2},
	{regexp.MustCompile(`(?i)(address|street)`), model.TypeAddressLine1},
	{regexp.MustCompile(`(?i)(city|town|locality)`), model.TypeCity},
	{regexp.MustCompile(`(?i)(state|province|region)`), model.TypeState},
	{regexp.MustCompile(`(?i)(zip|postal)`), model.TypeZip},
	{regexp.MustCompile(`(?i)(country)`), model.TypeCountry},
	{regexp.MustCompile(`(?i)(fax)`), model.TypeFaxNumber},
	{regexp.MustCompile(`(?i)(phone|tel\b|mobile)`), model.TypePhoneNumber},
}

// HeuristicClassification infers a classifier response for the form from
// autocomplete attributes and name/label conventions. Fields matching
// nothing are omitted and stay unknown.
func HeuristicClassification(form *model.CachedForm) []model.Classification {
	var entries []model.Classification
	for i := 0; i < form.FieldCount(); i++ {
		field := form.Field(i)
		if t, ok := classifyField(field); ok {
			entries = append(entries, model.Classification{
				FieldSignature: field.Identity.Signature(),
				Type:           t,
			})
		}
	}
	return entries
}

// classifyField infers the semantic type of one field.
func classifyField(field *model.CachedField) (model.FieldType, bool) {
	// The autocomplete attribute may carry section tokens
	// ("section-blue shipping tel"); the field type is the last token.
	if field.Autocomplete != "" {
		tokens := strings.Fields(field.Autocomplete)
		if len(tokens) > 0 {
			if t, ok := autocompleteTypes[tokens[len(tokens)-1]]; ok {
				return t, true
			}
		}
	}

	haystack := strings.TrimSpace(field.Identity.Name + " " + field.Identity.Label)
	for _, p := range namePatterns {
		if p.re.MatchString(haystack) {
			return p.t, true
		}
	}
	return model.TypeUnknown, false
}
