package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func TestBuildConferenceQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     *domain.ConferenceQuery
		wantWhere string
		wantOrder string
		wantArgs  []any
		errIs     error
	}{
		{
			name:      "nil query orders by name",
			query:     nil,
			wantWhere: "",
			wantOrder: " ORDER BY name, id",
		},
		{
			name: "equality and range",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{
					{Field: domain.FieldCity, Operator: domain.OpEqual, Value: "London"},
					{Field: domain.FieldMaxAttendees, Operator: domain.OpGreater, Value: 5},
					{Field: domain.FieldMaxAttendees, Operator: domain.OpLessOrEqual, Value: 50},
				},
				OrderBy: []domain.FilterField{domain.FieldMaxAttendees, domain.FieldName},
			},
			wantWhere: " WHERE city = $1 AND max_attendees > $2 AND max_attendees <= $3",
			wantOrder: " ORDER BY max_attendees, name, id",
			wantArgs:  []any{"London", 5, 50},
		},
		{
			name: "topic equality matches any element",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{{Field: domain.FieldTopic, Operator: domain.OpEqual, Value: "Go"}},
				OrderBy:    []domain.FilterField{domain.FieldName},
			},
			wantWhere: " WHERE $1 = ANY(topics)",
			wantOrder: " ORDER BY name, id",
			wantArgs:  []any{"Go"},
		},
		{
			name: "topic inequality uses unnest",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{{Field: domain.FieldTopic, Operator: domain.OpNotEqual, Value: "Go"}},
				OrderBy:    []domain.FilterField{domain.FieldTopic, domain.FieldName},
			},
			wantWhere: " WHERE EXISTS (SELECT 1 FROM unnest(topics) AS t(topic) WHERE t.topic <> $1)",
			wantOrder: " ORDER BY topics, name, id",
			wantArgs:  []any{"Go"},
		},
		{
			name: "month",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{{Field: domain.FieldMonth, Operator: domain.OpEqual, Value: 6}},
				OrderBy:    []domain.FilterField{domain.FieldName},
			},
			wantWhere: " WHERE month = $1",
			wantOrder: " ORDER BY name, id",
			wantArgs:  []any{6},
		},
		{
			name: "unknown field",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{{Field: domain.FilterField(99), Operator: domain.OpEqual, Value: "x"}},
			},
			errIs: domain.ErrInvalidInput,
		},
		{
			name: "unknown operator",
			query: &domain.ConferenceQuery{
				Predicates: []domain.Predicate{{Field: domain.FieldCity, Operator: domain.FilterOperator(42), Value: "x"}},
			},
			errIs: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, order, args, err := buildConferenceQuery(tt.query)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.errIs))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantOrder, order)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
