package record

import (
	"strings"

	"github.com/nao1215/formfill/internal/model"
)

// Store is the record store contract the engine reads through. The
// sequences it returns are ordered; suggestion order follows store order.
type Store interface {
	// Profiles returns all stored identity records.
	Profiles() []*Profile

	// CreditCards returns all stored payment records.
	CreditCards() []*CreditCard
}

// MemoryStore is an in-memory Store. It is the working set the engine
// operates on; persistence (the database package, the YAML records file)
// loads into and saves from it.
type MemoryStore struct {
	profiles []*Profile
	cards    []*CreditCard
}

// NewMemoryStore creates a MemoryStore holding the given records.
func NewMemoryStore(profiles []*Profile, cards []*CreditCard) *MemoryStore {
	return &MemoryStore{profiles: profiles, cards: cards}
}

// Profiles returns the stored identity records in insertion order.
func (s *MemoryStore) Profiles() []*Profile { return s.profiles }

// CreditCards returns the stored payment records in insertion order.
func (s *MemoryStore) CreditCards() []*CreditCard { return s.cards }

// ProfileByGUID returns the profile with the given identifier token, or
// nil if the store holds no such profile.
func ProfileByGUID(store Store, guid string) *Profile {
	if guid == "" {
		return nil
	}
	for _, p := range store.Profiles() {
		if p.ID == guid {
			return p
		}
	}
	return nil
}

// CreditCardByGUID returns the card with the given identifier token, or
// nil if the store holds no such card.
func CreditCardByGUID(store Store, guid string) *CreditCard {
	if guid == "" {
		return nil
	}
	for _, c := range store.CreditCards() {
		if c.ID == guid {
			return c
		}
	}
	return nil
}

// fillableTypes enumerates the semantic types a submitted value is tested
// against by PossibleFieldTypes.
var fillableTypes = []model.FieldType{
	model.TypeFirstName,
	model.TypeLastName,
	model.TypeFullName,
	model.TypeEmail,
	model.TypeCompany,
	model.TypeAddressLine1,
	model.TypeAddressLine2,
	model.TypeCity,
	model.TypeState,
	model.TypeZip,
	model.TypeCountry,
	model.TypePhoneNumber,
	model.TypeFaxNumber,
	model.TypeCardName,
	model.TypeCardNumber,
	model.TypeCardExpMonth,
	model.TypeCardExpYear,
}

// PossibleFieldTypes returns the semantic types under which any stored
// record's text equals the submitted value, ignoring case and surrounding
// whitespace. An empty or unmatched value reports a single TypeUnknown
// entry so the result is never empty. The external upload collaborator
// consumes this when labeling submitted forms.
func PossibleFieldTypes(store Store, value string) []model.FieldType {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []model.FieldType{model.TypeUnknown}
	}

	var types []model.FieldType
	for _, t := range fillableTypes {
		if storeMatchesType(store, trimmed, t) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return []model.FieldType{model.TypeUnknown}
	}
	return types
}

// storeMatchesType reports whether any record's text for the type equals
// the value, case-insensitively.
func storeMatchesType(store Store, value string, t model.FieldType) bool {
	if t.IsPayment() {
		for _, c := range store.CreditCards() {
			if text := c.FieldText(t); text != "" && strings.EqualFold(text, value) {
				return true
			}
		}
		return false
	}
	for _, p := range store.Profiles() {
		if text := p.FieldText(t); text != "" && strings.EqualFold(text, value) {
			return true
		}
	}
	return false
}
