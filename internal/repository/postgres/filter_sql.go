package postgres

import (
	"fmt"
	"strings"

	"conferencecentral/internal/domain"
)

var conferenceFieldColumns = map[domain.FilterField]string{
	domain.FieldCity:         "city",
	domain.FieldTopic:        "topics",
	domain.FieldMonth:        "month",
	domain.FieldMaxAttendees: "max_attendees",
	domain.FieldName:         "name",
}

var sqlOperators = map[domain.FilterOperator]string{
	domain.OpEqual:          "=",
	domain.OpGreater:        ">",
	domain.OpGreaterOrEqual: ">=",
	domain.OpLess:           "<",
	domain.OpLessOrEqual:    "<=",
	domain.OpNotEqual:       "<>",
}

// buildConferenceQuery renders a compiled query as a WHERE clause joined by
// AND, one placeholder per value, and an ORDER BY ending in id so the order
// is total. Column and operator text only ever comes from the maps above.
func buildConferenceQuery(q *domain.ConferenceQuery) (where, orderBy string, args []any, err error) {
	if q == nil {
		q = &domain.ConferenceQuery{OrderBy: []domain.FilterField{domain.FieldName}}
	}

	conds := make([]string, 0, len(q.Predicates))
	for _, p := range q.Predicates {
		col, ok := conferenceFieldColumns[p.Field]
		if !ok {
			return "", "", nil, fmt.Errorf("field %s: %w", p.Field, domain.ErrInvalidInput)
		}
		op, ok := sqlOperators[p.Operator]
		if !ok {
			return "", "", nil, fmt.Errorf("operator %d: %w", p.Operator, domain.ErrInvalidInput)
		}
		args = append(args, p.Value)
		ph := fmt.Sprintf("$%d", len(args))

		switch {
		case p.Field == domain.FieldTopic && p.Operator == domain.OpEqual:
			conds = append(conds, fmt.Sprintf("%s = ANY(topics)", ph))
		case p.Field == domain.FieldTopic:
			conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(topics) AS t(topic) WHERE t.topic %s %s)", op, ph))
		default:
			conds = append(conds, fmt.Sprintf("%s %s %s", col, op, ph))
		}
	}
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	cols := make([]string, 0, len(q.OrderBy)+1)
	for _, f := range q.OrderBy {
		col, ok := conferenceFieldColumns[f]
		if !ok {
			return "", "", nil, fmt.Errorf("order field %s: %w", f, domain.ErrInvalidInput)
		}
		cols = append(cols, col)
	}
	cols = append(cols, "id")
	orderBy = " ORDER BY " + strings.Join(cols, ", ")
	return where, orderBy, args, nil
}
