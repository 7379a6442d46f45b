package formcache

import "github.com/nao1215/formfill/internal/model"

// Cache is an arena of cached forms owned by a single document context.
// It is not safe for concurrent use; the engine is single-threaded per
// document, which is the only place a cache lives.
//
// Design decision: We use a plain map keyed by structural signature
// rather than an eviction cache. The lifecycle is one generation per
// document (entries are replaced on reparse and dropped wholesale on
// navigation), so there is no per-entry lifetime to manage and nothing to
// evict. Lookup is O(1) on the signature, and form counts per page are
// single digits to low tens anyway.
type Cache struct {
	forms map[string]*model.CachedForm

	// order preserves insertion order for deterministic iteration.
	order []string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{forms: make(map[string]*model.CachedForm)}
}

// Put stores the form under its structural signature, replacing any prior
// entry with the same signature.
func (c *Cache) Put(form *model.CachedForm) {
	sig := form.Signature()
	if _, exists := c.forms[sig]; !exists {
		c.order = append(c.order, sig)
	}
	c.forms[sig] = form
}

// Find returns the cached form whose structural signature equals the live
// form's, or nil if the cache holds no such form. Equality is structural:
// field name, label, and control kind, never field values.
func (c *Cache) Find(live *model.LiveForm) *model.CachedForm {
	return c.forms[live.Signature()]
}

// FindBySignature returns the cached form with the given signature, or nil.
func (c *Cache) FindBySignature(sig string) *model.CachedForm {
	return c.forms[sig]
}

// Forms returns all cached forms in insertion order.
func (c *Cache) Forms() []*model.CachedForm {
	forms := make([]*model.CachedForm, 0, len(c.forms))
	for _, sig := range c.order {
		forms = append(forms, c.forms[sig])
	}
	return forms
}

// Len returns the number of cached forms.
func (c *Cache) Len() int {
	return len(c.forms)
}

// Clear discards all entries. Invoked on navigation commit; in-flight
// operations referencing a since-cleared cache see Find return nil and
// report "not found" rather than operating on stale data.
func (c *Cache) Clear() {
	c.forms = make(map[string]*model.CachedForm)
	c.order = nil
}
