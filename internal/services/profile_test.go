package services

import (
	"context"
	"testing"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfileCreatesOnFirstUse(t *testing.T) {
	f := newFixture()
	svc := NewProfileService(f.txm, f.profiles)

	p, err := svc.GetProfile(context.Background(), identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "User u1", p.DisplayName)
	assert.Equal(t, "u1@example.com", p.MainEmail)
	assert.Equal(t, domain.TeeShirtNotSpecified, p.TeeShirtSize)
	assert.Empty(t, p.RegisteredConferenceIDs)

	_, err = svc.GetProfile(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestProfileService_SaveProfile(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		size        string
		wantName    string
		wantSize    string
		errIs       error
	}{
		{name: "both fields", displayName: "Alice", size: "m_w", wantName: "Alice", wantSize: "M_W"},
		{name: "empty fields keep current values", wantName: "User u1", wantSize: domain.TeeShirtNotSpecified},
		{name: "only size", size: "XL_M", wantName: "User u1", wantSize: "XL_M"},
		{name: "unknown size", size: "HUGE", errIs: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := NewProfileService(f.txm, f.profiles)

			p, err := svc.SaveProfile(context.Background(), identity("u1"), tt.displayName, tt.size)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.DisplayName)
			assert.Equal(t, tt.wantSize, p.TeeShirtSize)

			stored, ok := f.store.profile("u1")
			require.True(t, ok)
			assert.Equal(t, tt.wantName, stored.DisplayName)
		})
	}
}
