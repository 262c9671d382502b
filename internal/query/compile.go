// Package query compiles caller-supplied conference filters into an
// executable query plan.
//
// The compiler performs no I/O. A plan is accepted only as a whole: the first
// invalid triple rejects the entire filter set with domain.ErrInvalidInput.
//
// Ordered indexes can range-scan a single dimension while using equality on
// the rest, so at most one field may carry inequality operators. When such a
// field exists the result is sorted by it first, then by conference name.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"conferencecentral/internal/domain"
)

var fieldTokens = map[string]domain.FilterField{
	"CITY":          domain.FieldCity,
	"TOPIC":         domain.FieldTopic,
	"TOPICS":        domain.FieldTopic,
	"MONTH":         domain.FieldMonth,
	"MAX_ATTENDEES": domain.FieldMaxAttendees,
	"MAXATTENDEES":  domain.FieldMaxAttendees,
}

var operatorTokens = map[string]domain.FilterOperator{
	"EQ":   domain.OpEqual,
	"=":    domain.OpEqual,
	"GT":   domain.OpGreater,
	">":    domain.OpGreater,
	"GTEQ": domain.OpGreaterOrEqual,
	">=":   domain.OpGreaterOrEqual,
	"LT":   domain.OpLess,
	"<":    domain.OpLess,
	"LTEQ": domain.OpLessOrEqual,
	"<=":   domain.OpLessOrEqual,
	"NE":   domain.OpNotEqual,
	"!=":   domain.OpNotEqual,
}

// ParseField resolves a field token. Tokens are case-insensitive and accept
// both the enumeration names (MAX_ATTENDEES) and storage names (maxAttendees).
func ParseField(token string) (domain.FilterField, bool) {
	f, ok := fieldTokens[strings.ToUpper(strings.TrimSpace(token))]
	return f, ok
}

// ParseOperator resolves an operator token (EQ, GT, ... or =, >, ...).
func ParseOperator(token string) (domain.FilterOperator, bool) {
	op, ok := operatorTokens[strings.ToUpper(strings.TrimSpace(token))]
	return op, ok
}

// Compile validates filters and returns the query plan.
func Compile(filters []domain.Filter) (*domain.ConferenceQuery, error) {
	q := &domain.ConferenceQuery{
		Predicates: make([]domain.Predicate, 0, len(filters)),
	}
	for i, f := range filters {
		field, ok := ParseField(f.Field)
		if !ok {
			return nil, fmt.Errorf("%w: filter %d: unknown field %q", domain.ErrInvalidInput, i, f.Field)
		}
		op, ok := ParseOperator(f.Operator)
		if !ok {
			return nil, fmt.Errorf("%w: filter %d: unknown operator %q", domain.ErrInvalidInput, i, f.Operator)
		}
		if op.IsInequality() {
			if q.InequalityField != 0 && q.InequalityField != field {
				return nil, fmt.Errorf("%w: inequality filter is allowed on only one field (have %s, got %s)",
					domain.ErrInvalidInput, q.InequalityField, field)
			}
			q.InequalityField = field
		}
		value, err := coerce(field, f.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d: %v", domain.ErrInvalidInput, i, err)
		}
		q.Predicates = append(q.Predicates, domain.Predicate{Field: field, Operator: op, Value: value})
	}

	if q.InequalityField != 0 {
		q.OrderBy = []domain.FilterField{q.InequalityField, domain.FieldName}
	} else {
		q.OrderBy = []domain.FilterField{domain.FieldName}
	}
	return q, nil
}

func coerce(field domain.FilterField, raw string) (any, error) {
	if !field.IsInteger() {
		return raw, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%s value %q is out of range", field, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%s expects an integer, got %q", field, raw)
	}
	return int(n), nil
}
