// Package section partitions a cached form into logical sections so that
// unrelated groups of same-typed fields, such as separate billing and
// shipping address blocks, are not cross-filled. A section is a derived
// half-open index range over the form's field sequence; it is recomputed
// on demand and never cached, because it depends on which field initiated
// the interaction and whether identity or payment data is being targeted.
package section
