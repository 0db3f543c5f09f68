package fields

// Decision is the outcome of classifying a single field.
type Decision int

const (
	// DecisionSkip excludes the field; the mandatory section renders it.
	DecisionSkip Decision = iota
	// DecisionInclude surfaces an optional field.
	DecisionInclude
	// DecisionForceInclude surfaces a field listed in the force-include table.
	DecisionForceInclude
	// DecisionRequiredElsewhere excludes a required field that is not
	// force-included.
	DecisionRequiredElsewhere
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionSkip:
		return "skip"
	case DecisionInclude:
		return "include"
	case DecisionForceInclude:
		return "force-include"
	case DecisionRequiredElsewhere:
		return "required-elsewhere"
	default:
		return "unknown"
	}
}

// Included reports whether the decision produces a widget.
func (d Decision) Included() bool {
	return d == DecisionInclude || d == DecisionForceInclude
}

// Classify decides whether a field belongs to the optional-field section.
//
// The skip table is consulted first, so an id listed in both tables is
// skipped. Optional fields are included; required fields are included only
// when force-included.
func Classify(id ID, required bool) Decision {
	return classify(skipFields, forceIncludeFields, id, required)
}

func classify(skip, force set, id ID, required bool) Decision {
	if skip.has(id) {
		return DecisionSkip
	}
	if force.has(id) {
		return DecisionForceInclude
	}
	if !required {
		return DecisionInclude
	}
	return DecisionRequiredElsewhere
}
