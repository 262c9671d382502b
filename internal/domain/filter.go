package domain

// Filter is a caller-supplied conference filter triple. Field and Operator are
// raw tokens; they are resolved against closed enumerations by the query compiler.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// FilterField is a conference attribute that can be filtered or sorted on.
type FilterField int

const (
	FieldCity FilterField = iota + 1
	FieldTopic
	FieldMonth
	FieldMaxAttendees
	// FieldName is the fixed secondary sort key; it cannot be filtered on.
	FieldName
)

func (f FilterField) String() string {
	switch f {
	case FieldCity:
		return "city"
	case FieldTopic:
		return "topics"
	case FieldMonth:
		return "month"
	case FieldMaxAttendees:
		return "maxAttendees"
	case FieldName:
		return "name"
	default:
		return "unknown"
	}
}

// IsInteger reports whether values for the field are integers.
func (f FilterField) IsInteger() bool {
	return f == FieldMonth || f == FieldMaxAttendees
}

// FilterOperator is a comparison kind.
type FilterOperator int

const (
	OpEqual FilterOperator = iota + 1
	OpGreater
	OpGreaterOrEqual
	OpLess
	OpLessOrEqual
	OpNotEqual
)

// Symbol returns the comparison symbol for the operator.
func (o FilterOperator) Symbol() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreater:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpNotEqual:
		return "!="
	default:
		return "?"
	}
}

// IsInequality reports whether the operator needs a range scan. Everything but equality is.
func (o FilterOperator) IsInequality() bool {
	return o != OpEqual
}

// Predicate is a compiled filter. Value is an int for integer fields and a string otherwise.
type Predicate struct {
	Field    FilterField
	Operator FilterOperator
	Value    any
}

// ConferenceQuery is an executable conference query: the conjunction of
// Predicates, sorted ascending by OrderBy.
type ConferenceQuery struct {
	Predicates []Predicate
	OrderBy    []FilterField
	// InequalityField is the single field carrying range predicates, zero if none.
	InequalityField FilterField
}
