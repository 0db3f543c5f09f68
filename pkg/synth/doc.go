// Package synth turns an ordered batch of field descriptors into the ordered
// batch of widgets shown in the optional-field section of a create form.
//
// The transform is pure: it validates the whole batch, classifies each
// descriptor against the tables in package fields, and infers a widget for
// every included descriptor. Output order is the input order with excluded
// descriptors omitted. A malformed batch fails as a whole; there are no
// partial results.
package synth
