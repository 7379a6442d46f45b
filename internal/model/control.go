package model

// ControlKind identifies the kind of form control a field is rendered as.
// The value resolver matches on this exhaustively: selection lists delegate
// to an option matcher, month controls receive a composite year-month
// value, and everything else is treated as free text.
//
// Design decision: A closed enumeration replaces the HTML control-type
// strings ("select-one", "month", ...) observed in the DOM. Parsing the
// string once at the boundary keeps the resolver free of string
// comparisons and makes missing cases a compile-time concern.
type ControlKind int

const (
	// ControlText is a single-line free text input.
	ControlText ControlKind = iota

	// ControlTextArea is a multi-line free text input.
	ControlTextArea

	// ControlSelect is a selection list with a fixed option set.
	ControlSelect

	// ControlMonth is an HTML5 month input holding a year-month composite.
	ControlMonth

	// ControlHidden is an input not visible to the user.
	// Hidden fields are parsed but never filled.
	ControlHidden
)

// String returns the HTML-facing name of the control kind.
func (c ControlKind) String() string {
	switch c {
	case ControlText:
		return "text"
	case ControlTextArea:
		return "textarea"
	case ControlSelect:
		return "select-one"
	case ControlMonth:
		return "month"
	case ControlHidden:
		return "hidden"
	default:
		return "text"
	}
}

// ControlKindFromType maps an HTML element name and its type attribute to
// a ControlKind. Unrecognized input types degrade to ControlText, which
// matches how browsers render them.
func ControlKindFromType(element, typeAttr string) ControlKind {
	switch element {
	case "select":
		return ControlSelect
	case "textarea":
		return ControlTextArea
	case "input":
		switch typeAttr {
		case "month":
			return ControlMonth
		case "hidden":
			return ControlHidden
		default:
			return ControlText
		}
	default:
		return ControlText
	}
}
