package engine

import (
	"log/slog"

	"github.com/nao1215/formfill/internal/formcache"
	"github.com/nao1215/formfill/internal/match"
	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/packid"
	"github.com/nao1215/formfill/internal/record"
	"github.com/nao1215/formfill/internal/resolve"
	"github.com/nao1215/formfill/internal/section"
	"github.com/nao1215/formfill/internal/suggest"
)

// filledSignatureWindow is how many recently autofilled form signatures
// the engine remembers for the upload collaborator's labeling decision.
const filledSignatureWindow = 3

// Engine resolves which stored records populate which fields of the forms
// in one document context. It owns the document's form cache and the
// identifier codec; both live until the engine is discarded.
//
// An Engine is single-threaded: every operation executes to completion on
// the calling goroutine, and no form object is shared for concurrent
// mutation. Use one Engine per document.
type Engine struct {
	store  record.Store
	cache  *formcache.Cache
	codec  *packid.Codec
	logger *slog.Logger

	selectMatcher resolve.SelectMatcher
	labeler       suggest.Labeler

	// enabled is the global autofill preference. When false, queries
	// return empty and fills are no-ops.
	enabled bool

	// disablePayment and disableIdentity turn off one group while leaving
	// the other active. A disabled group produces the synthetic warning
	// entry instead of real suggestions.
	disablePayment  bool
	disableIdentity bool

	// minFillable is the fillable-field threshold below which a seen form
	// is not cached.
	minFillable int

	// filledSignatures holds the structural signatures of the most
	// recently autofilled forms, newest first, capped at
	// filledSignatureWindow. Duplicates are kept deliberately.
	filledSignatures []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSelectMatcher sets the option matcher used for selection-list
// controls. Without one, select controls are left untouched.
func WithSelectMatcher(m resolve.SelectMatcher) Option {
	return func(e *Engine) { e.selectMatcher = m }
}

// WithLabeler sets the inferred-label step for identity suggestions.
func WithLabeler(l suggest.Labeler) Option {
	return func(e *Engine) { e.labeler = l }
}

// WithDisabled turns the whole feature off. Queries return empty results
// and fill requests are no-ops.
func WithDisabled() Option {
	return func(e *Engine) { e.enabled = false }
}

// WithPaymentDisabled turns off the payment group only.
func WithPaymentDisabled() Option {
	return func(e *Engine) { e.disablePayment = true }
}

// WithIdentityDisabled turns off the identity groups only.
func WithIdentityDisabled() Option {
	return func(e *Engine) { e.disableIdentity = true }
}

// WithMinFillableFields overrides the caching threshold.
func WithMinFillableFields(n int) Option {
	return func(e *Engine) { e.minFillable = n }
}

// New creates an engine for one document context reading records from the
// given store.
func New(store record.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		cache:   formcache.New(),
		codec:   packid.NewCodec(),
		enabled: true,
		labeler: NewInferredLabeler(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Codec exposes the engine's identifier codec so callers can pack
// explicit record identifier pairs for fill requests.
func (e *Engine) Codec() *packid.Codec {
	return e.codec
}

// Cache exposes the engine's form cache, mainly for reporting.
func (e *Engine) Cache() *formcache.Cache {
	return e.cache
}

// OnFormsSeen parses the live forms of a freshly loaded page into the
// form cache. Forms below the fillable-field threshold are skipped.
// Classification arrives separately via ApplyClassification.
func (e *Engine) OnFormsSeen(forms []model.LiveForm) {
	if !e.enabled {
		return
	}
	for i := range forms {
		cached := model.NewCachedForm(&forms[i])
		if !cached.ShouldBeParsed(e.minFillable) {
			e.logger.Debug("skipping form with too few fillable fields",
				"form", cached.Name, "fields", cached.FieldCount())
			continue
		}
		e.cache.Put(cached)
		e.logger.Debug("cached form",
			"form", cached.Name, "signature", cached.Signature(), "fields", cached.FieldCount())
	}
}

// ApplyClassification applies a classifier response to the cached form
// with the given structural signature. Responses for forms the cache no
// longer holds are dropped; the classifier round-trip may outlive a
// navigation.
func (e *Engine) ApplyClassification(formSignature string, entries []model.Classification) bool {
	form := e.cache.FindBySignature(formSignature)
	if form == nil {
		e.logger.Debug("classification for unknown form dropped", "signature", formSignature)
		return false
	}
	form.ApplyClassification(entries)
	e.logger.Debug("classified form",
		"signature", formSignature, "known_types", form.KnownTypeCount())
	return true
}

// Reset discards the document's form cache. Invoked on navigation commit.
// The identifier codec survives: packed ids are process-lifetime state.
func (e *Engine) Reset() {
	e.cache.Clear()
}

// OnQuery produces suggestions for the queried live field. A nil result
// means no suggestions: autofill disabled, no cached counterpart of the
// form (stale cache), unclassified form, or no record qualifying.
func (e *Engine) OnQuery(form *model.LiveForm, field model.LiveField) (*suggest.Suggestions, error) {
	if !e.enabled {
		return nil, nil
	}
	if len(e.store.Profiles()) == 0 && len(e.store.CreditCards()) == 0 {
		return nil, nil
	}

	cached, fieldIndex := e.findCached(form, field)
	if cached == nil || cached.KnownTypeCount() == 0 {
		return nil, nil
	}

	queried := cached.Field(fieldIndex).Type
	fillingPayment := queried.IsPayment()

	var s *suggest.Suggestions
	var err error
	if fillingPayment {
		s, err = suggest.ForCreditCards(e.store, field, queried, e.codec)
	} else {
		s, err = suggest.ForProfiles(e.store, cached, field, queried, e.codec, e.labeler)
	}
	if err != nil {
		e.logger.Error("suggestion assembly failed", "error", err)
		return nil, err
	}
	if s.Len() == 0 {
		return s, nil
	}

	// A non-empty result for a disallowed query is replaced wholesale
	// with a synthetic warning entry.
	if fillingPayment && e.disablePayment || !fillingPayment && e.disableIdentity {
		return suggest.Warning(suggest.WarningDisabled), nil
	}
	if fillingPayment && !cached.IsSecure() {
		return suggest.Warning(suggest.WarningInsecure), nil
	}

	bounds, err := section.Resolve(cached, fieldIndex, fillingPayment)
	if err != nil {
		e.logger.Error("section resolution failed", "error", err,
			"signature", cached.Signature(), "field", fieldIndex)
		return nil, nil
	}
	if match.SectionIsFilled(cached, form.Fields, bounds.Start, bounds.End) {
		// The user is editing one value of an already-filled section;
		// labels and icons would be redundant decoration.
		suggest.BlankLabels(s)
	}

	suggest.Dedup(s)
	return s, nil
}

// OnFill resolves the record pair named by packedID into the live form.
// It returns the form snapshot with zero or more field values replaced,
// and whether anything was filled. A stale cache, an unknown record, or a
// section invariant break all degrade to a no-op.
func (e *Engine) OnFill(form *model.LiveForm, field model.LiveField, packedID int32) (model.LiveForm, bool) {
	if !e.enabled {
		return *form, false
	}

	cached, fieldIndex := e.findCached(form, field)
	if cached == nil {
		return *form, false
	}

	cardGUID, profileGUID := e.codec.Unpack(packedID)
	card := record.CreditCardByGUID(e.store, cardGUID)
	profile := record.ProfileByGUID(e.store, profileGUID)
	if card == nil && profile == nil {
		// The identifier names records that no longer exist.
		e.logger.Debug("fill request for unknown record", "packed_id", packedID)
		return *form, false
	}

	fillingPayment := card != nil
	var rec record.Record
	if fillingPayment {
		rec = card
	} else {
		rec = profile
	}

	bounds, err := section.Resolve(cached, fieldIndex, fillingPayment)
	if err != nil {
		e.logger.Error("section resolution failed", "error", err,
			"signature", cached.Signature(), "field", fieldIndex)
		return *form, false
	}

	result := *form
	result.Fields = make([]model.LiveField, len(form.Fields))
	copy(result.Fields, form.Fields)

	// An already-filled section means the user is editing one field;
	// refill just that field and leave the siblings' values alone.
	if match.SectionIsFilled(cached, form.Fields, bounds.Start, bounds.End) {
		for j := range result.Fields {
			if !result.Fields[j].Identity.Equal(field.Identity) {
				continue
			}
			if value, ok := resolve.Resolve(rec, cached.Field(fieldIndex).Type, result.Fields[j], e.selectMatcher); ok {
				result.Fields[j].Value = value
				result.Fields[j].Autofilled = true
			}
			break
		}
		return result, true
	}

	filled := false
	for _, pair := range match.Align(cached, form.Fields, bounds.Start, bounds.End) {
		t := cached.Field(pair.Cached).Type
		if t.Group() == model.GroupNone {
			continue
		}
		if value, ok := resolve.Resolve(rec, t, result.Fields[pair.Live], e.selectMatcher); ok {
			result.Fields[pair.Live].Value = value
			result.Fields[pair.Live].Autofilled = true
			filled = true
		}
	}

	if filled {
		e.recordFilled(cached.Signature())
	}
	return result, filled
}

// SubmissionSummary is what OnFormSubmitted computes for the external
// upload collaborator: per-field possible semantic types inferred from
// the stored records, and whether the form was among the recently
// autofilled ones.
type SubmissionSummary struct {
	// FormSignature is the structural signature of the submitted form.
	FormSignature string

	// WasAutofilled reports whether the form is in the recent-fill window.
	WasAutofilled bool

	// PossibleTypes holds, per live field, the semantic types any stored
	// record matches the submitted value under. Never empty per field.
	PossibleTypes [][]model.FieldType
}

// OnFormSubmitted determines the upload-labeling inputs for a submitted
// form. It returns false when the cache holds no counterpart of the form,
// which callers treat as "nothing to upload".
func (e *Engine) OnFormSubmitted(form *model.LiveForm) (*SubmissionSummary, bool) {
	if !e.enabled {
		return nil, false
	}
	cached := e.cache.Find(form)
	if cached == nil {
		return nil, false
	}

	possible := make([][]model.FieldType, len(form.Fields))
	for i, f := range form.Fields {
		possible[i] = record.PossibleFieldTypes(e.store, f.Value)
	}

	return &SubmissionSummary{
		FormSignature: cached.Signature(),
		WasAutofilled: e.WasRecentlyFilled(cached.Signature()),
		PossibleTypes: possible,
	}, true
}

// WasRecentlyFilled reports whether the signature is among the most
// recently autofilled forms.
func (e *Engine) WasRecentlyFilled(signature string) bool {
	for _, sig := range e.filledSignatures {
		if sig == signature {
			return true
		}
	}
	return false
}

// recordFilled prepends the signature to the recent-fill window, keeping
// the newest filledSignatureWindow entries. Duplicates are kept; the
// window is strictly most-recent-N.
func (e *Engine) recordFilled(signature string) {
	e.filledSignatures = append([]string{signature}, e.filledSignatures...)
	if len(e.filledSignatures) > filledSignatureWindow {
		e.filledSignatures = e.filledSignatures[:filledSignatureWindow]
	}
}

// findCached locates the cached counterpart of the live form and the
// cached index of the given field. Returns (nil, 0) when either lookup
// fails. Callers treat both as "no suggestions, no fill".
func (e *Engine) findCached(form *model.LiveForm, field model.LiveField) (*model.CachedForm, int) {
	cached := e.cache.Find(form)
	if cached == nil {
		return nil, 0
	}
	idx := cached.FindField(field)
	if idx < 0 {
		return nil, 0
	}
	return cached, idx
}
