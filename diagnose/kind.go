package diagnose

// Kind is the taxonomy bucket for a thrown script failure.
type Kind string

const (
	// SyntaxFailure is a malformed script, detected before any statement runs.
	SyntaxFailure Kind = "SyntaxFailure"
	// ReferenceFailure is the use of an unbound name.
	ReferenceFailure Kind = "ReferenceFailure"
	// TypeFailure is an operation invalid for its operand's runtime type.
	TypeFailure Kind = "TypeFailure"
	// GenericFailure is anything else.
	GenericFailure Kind = "GenericFailure"
)

// UnknownCategory is reported when the engine exposes no category name.
const UnknownCategory = "Unknown"

// KindOf maps a native failure category onto the taxonomy.
func KindOf(category string) Kind {
	switch category {
	case "SyntaxError":
		return SyntaxFailure
	case "ReferenceError":
		return ReferenceFailure
	case "TypeError":
		return TypeFailure
	}
	return GenericFailure
}

// Title returns the banner title for k. Generic failures are titled with
// their native category.
func (k Kind) Title(category string) string {
	switch k {
	case SyntaxFailure:
		return "Syntax Error"
	case ReferenceFailure:
		return "Reference Error"
	case TypeFailure:
		return "Type Error"
	}
	if category == "" || category == UnknownCategory {
		return "Unknown Error"
	}
	return category
}
