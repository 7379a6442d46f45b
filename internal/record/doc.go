// Package record holds the stored personal and payment records that
// populate form fields: identity profiles and payment cards, the text each
// exposes per semantic field type, and the store interface the engine
// reads them through.
package record
