// Package model defines the descriptor records consumed by the synthesis
// engine and the widget specifications it produces. Descriptors mirror the
// tracking system's create-metadata entries (fieldId, name, required,
// allowedValues). Widgets form a closed set: SelectionWidget and TextWidget
// are the only implementations of Widget, and they serialise with a "kind"
// discriminator so presentation layers can bind them without reflection.
package model
