// Package fields holds the classification tables that decide which create
// form fields belong to the optional-field section. Identifiers listed in the
// skip table are rendered by the mandatory section of the form and never
// reach the widget pipeline. Identifiers in the force-include table always
// produce a widget, whatever their required flag says.
//
// Both tables are fixed for the process lifetime and exposed only through
// read-only accessors.
package fields
